// sessions.go
//
// A scalable, high performance drop-in replacement for the animgen nextjs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of animgen.
// animgen is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// animgen is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with animgen.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/animgen/internal/services"
	"github.com/localnerve/animgen/internal/types"
	"github.com/localnerve/animgen/internal/utils"
	"gorm.io/gorm"
)

// SessionHandler handles session routes
type SessionHandler struct {
	DB *gorm.DB
}

// CreateSession handles POST /api/session
// @Summary Create a session
// @Description Create a conversation session for the authenticated user
// @Tags Session
// @Accept json
// @Produce json
// @Param body body object true "Session prompt and optional title"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /session [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "session.authorization.user")
	}

	var body struct {
		Prompt string `json:"prompt"`
		Title  string `json:"title"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "session.validation.input")
	}

	if body.Prompt == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "session.validation.input")
	}

	session, err := services.CreateSession(h.DB, userID, body.Prompt, body.Title)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createSession")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"sessionId":  session.ID,
		"sessionKey": session.SessionKey,
	})
}

// GetSessions handles GET /api/session?sessionKey=...
// @Summary Get sessions
// @Description Get one session by key, or all sessions for the authenticated user
// @Tags Session
// @Accept json
// @Produce json
// @Param sessionKey query string false "Session key"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /session [get]
func (h *SessionHandler) GetSessions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "session.authorization.user")
	}

	sessionKey := c.Query("sessionKey", "")

	if sessionKey != "" {
		session, err := services.GetSessionByKey(h.DB, userID, sessionKey)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getSession")
		}
		if session == nil {
			return utils.NotFoundResponse(c, fmt.Sprintf("Session '%s' not found", sessionKey))
		}
		return utils.SuccessResponse(c, fiber.Map{"session": session}, fiber.StatusOK)
	}

	sessions, err := services.GetSessionsByOwner(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getSessions")
	}

	return utils.SuccessResponse(c, fiber.Map{"sessions": sessions}, fiber.StatusOK)
}

// DeleteSessions handles DELETE /api/session
// @Summary Delete sessions
// @Description Delete one or more sessions and their messages
// @Tags Session
// @Accept json
// @Produce json
// @Param body body object true "Session key, single or array"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /session [delete]
func (h *SessionHandler) DeleteSessions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "session.authorization.user")
	}

	var body struct {
		SessionKey types.FlexList[string] `json:"sessionKey"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "session.validation.input")
	}

	sessionKeys := body.SessionKey.Slice()
	if len(sessionKeys) == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "session.validation.input")
	}

	for _, sessionKey := range sessionKeys {
		if err := services.DeleteSession(h.DB, userID, sessionKey); err != nil {
			if errors.Is(err, services.ErrNotAuthorized) {
				return utils.ErrorResponse(c, "Not authorized", fiber.StatusForbidden, "session.authorization.owner")
			}
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteSession")
		}
	}

	return utils.MutationSuccessResponse(c, fiber.StatusOK, fiber.Map{
		"deleted": len(sessionKeys),
	})
}

// LinkSessionVideo handles PATCH /api/session
// @Summary Link a video to a session
// @Description Attach a generated video to a session by key
// @Tags Session
// @Accept json
// @Produce json
// @Param body body object true "Session key and video id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /session [patch]
func (h *SessionHandler) LinkSessionVideo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "session.authorization.user")
	}

	var body struct {
		SessionKey string           `json:"sessionKey"`
		VideoID    types.FlexUint64 `json:"videoId"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "session.validation.input")
	}

	if body.SessionKey == "" || body.VideoID == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "session.validation.input")
	}

	if err := services.LinkSessionVideo(h.DB, userID, body.SessionKey, uint64(body.VideoID)); err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return utils.ErrorResponse(c, "Not authorized", fiber.StatusForbidden, "session.authorization.owner")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "linkSessionVideo")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sessionKey": body.SessionKey,
		"videoId":    body.VideoID,
	})
}
