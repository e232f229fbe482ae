// animation.go
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
	"math/rand"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/animgen/internal/clients"
	"github.com/localnerve/animgen/internal/services"
	"github.com/localnerve/animgen/internal/utils"
	"gorm.io/gorm"
)

// AnimationHandler handles the animation generation pipeline
type AnimationHandler struct {
	DB        *gorm.DB
	Generator *clients.GenerationClient
	Renderer  *clients.RenderClient
}

// GenerateAnimation handles POST /api/animation
// @Summary Generate an animation
// @Description Generate scene code from a prompt, render it, and record the video
// @Tags Animation
// @Accept json
// @Produce json
// @Param body body object true "Prompt, optional session key and model"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /animation [post]
func (h *AnimationHandler) GenerateAnimation(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "animation.authorization.user")
	}

	var body struct {
		Prompt      string `json:"prompt"`
		SessionKey  string `json:"sessionKey"`
		Model       string `json:"model"`
		AspectRatio string `json:"aspectRatio"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "animation.validation.input")
	}

	if body.Prompt == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "animation.validation.input")
	}

	code, err := h.Generator.GenerateCode(c.UserContext(), body.Prompt, body.Model)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "animation.generation")
	}

	iteration := uint64(rand.Intn(1000000))
	videoURL, err := h.Renderer.RenderVideo(c.UserContext(), clients.RenderRequest{
		Code:        code,
		FileName:    clients.RenderFileName,
		FileClass:   clients.RenderFileClass,
		Iteration:   iteration,
		ProjectName: clients.RenderProjectName,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "animation.render")
	}

	video, err := services.CreateVideo(h.DB, userID, videoURL, code, &services.VideoOptions{
		ProjectName: clients.RenderProjectName,
		Iteration:   iteration,
		FileName:    clients.RenderFileName,
		FileClass:   clients.RenderFileClass,
		AspectRatio: body.AspectRatio,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "animation.persist")
	}

	if body.SessionKey != "" {
		if err := services.LinkSessionVideo(h.DB, userID, body.SessionKey, video.ID); err != nil {
			if errors.Is(err, services.ErrNotAuthorized) {
				return utils.ErrorResponse(c, "Not authorized", fiber.StatusForbidden, "animation.authorization.owner")
			}
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "animation.link")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":     code,
		"videoUrl": videoURL,
		"videoId":  video.ID,
	})
}

// GetAnimationStatus handles GET /api/animation/:videoId
// @Summary Get animation status
// @Description Get the render status for a video
// @Tags Animation
// @Accept json
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /animation/{videoId} [get]
func (h *AnimationHandler) GetAnimationStatus(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "animation.authorization.user")
	}

	videoID, err := strconv.ParseUint(c.Params("videoId"), 10, 64)
	if err != nil || videoID == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "animation.validation.input")
	}

	// Rendering is synchronous; anything recorded is done.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"videoId": videoID,
		"status":  "completed",
	})
}
