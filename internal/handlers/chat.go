// chat.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/animgen/internal/clients"
	"github.com/localnerve/animgen/internal/models"
	"github.com/localnerve/animgen/internal/services"
	"github.com/localnerve/animgen/internal/utils"
	"gorm.io/gorm"
)

// ChatHandler handles chat completion routes
type ChatHandler struct {
	DB          *gorm.DB
	Completions *clients.CompletionClient
}

// Chat handles POST /api/chat
// @Summary Chat completion
// @Description Send a prompt with session history to the completion service and persist both turns
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body object true "Session key and prompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "chat.authorization.user")
	}

	var body struct {
		SessionKey string `json:"sessionKey"`
		Prompt     string `json:"prompt"`
		Model      string `json:"model"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "chat.validation.input")
	}

	if body.SessionKey == "" || body.Prompt == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "chat.validation.input")
	}

	history, err := services.GetMessagesBySession(h.DB, userID, body.SessionKey)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "chat.history")
	}

	turns := clients.BuildCompletionTurns(history)
	turns = append(turns, clients.Turn{Role: "user", Content: body.Prompt})

	completion, err := h.Completions.Complete(c.UserContext(), turns, body.Model)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "chat.completion")
	}

	// Two independent inserts; a failed ai insert leaves the user turn behind.
	if _, err := services.CreateMessage(h.DB, userID, body.SessionKey, models.RoleUser, body.Prompt, nil); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "chat.persist.user")
	}

	aiMessage, err := services.CreateMessage(h.DB, userID, body.SessionKey, models.RoleAI, completion, nil)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "chat.persist.ai")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"messageId": aiMessage.ID,
		"content":   completion,
	})
}

// GetChatHistory handles GET /api/chat?sessionKey=...
// @Summary Get chat history
// @Description Get session history mapped to completion roles for the chat UI
// @Tags Chat
// @Accept json
// @Produce json
// @Param sessionKey query string true "Session key"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /chat [get]
func (h *ChatHandler) GetChatHistory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "chat.authorization.user")
	}

	sessionKey := c.Query("sessionKey", "")
	if sessionKey == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "chat.validation.input")
	}

	history, err := services.GetMessagesBySession(h.DB, userID, sessionKey)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "chat.history")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"history": clients.BuildCompletionTurns(history),
	})
}
