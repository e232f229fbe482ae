package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/animgen/internal/models"
	"github.com/localnerve/animgen/internal/services"
	"github.com/localnerve/animgen/internal/types"
	"github.com/localnerve/animgen/internal/utils"
	"gorm.io/gorm"
)

// VideoHandler handles video routes
type VideoHandler struct {
	DB *gorm.DB
}

// CreateVideo handles POST /api/video
// @Summary Create a video
// @Description Record a generated video artifact for the authenticated user
// @Tags Video
// @Accept json
// @Produce json
// @Param body body object true "Video url, code, optional render metadata"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /video [post]
func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "video.authorization.user")
	}

	var body struct {
		VideoURL    string      `json:"videoUrl"`
		Code        string      `json:"code"`
		ProjectName string      `json:"projectName"`
		Iteration   uint64      `json:"iteration"`
		FileName    string      `json:"fileName"`
		FileClass   string      `json:"fileClass"`
		AspectRatio string      `json:"aspectRatio"`
		Metadata    models.JSON `json:"metadata"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "video.validation.input")
	}

	if body.VideoURL == "" || body.Code == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "video.validation.input")
	}

	video, err := services.CreateVideo(h.DB, userID, body.VideoURL, body.Code, &services.VideoOptions{
		ProjectName: body.ProjectName,
		Iteration:   body.Iteration,
		FileName:    body.FileName,
		FileClass:   body.FileClass,
		AspectRatio: body.AspectRatio,
		Metadata:    body.Metadata,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createVideo")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"videoId": video.ID,
	})
}

// GetVideos handles GET /api/video
// @Summary Get videos
// @Description Get all videos for the authenticated user
// @Tags Video
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /video [get]
func (h *VideoHandler) GetVideos(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "video.authorization.user")
	}

	videos, err := services.GetVideosByOwner(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getVideos")
	}

	return utils.SuccessResponse(c, fiber.Map{"videos": videos}, fiber.StatusOK)
}

// UpdateVideo handles PATCH /api/video
// @Summary Update a video
// @Description Patch any subset of video fields by id
// @Tags Video
// @Accept json
// @Produce json
// @Param body body object true "Video id and fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /video [patch]
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "video.authorization.user")
	}

	var body struct {
		VideoID     types.FlexUint64 `json:"videoId"`
		VideoURL    *string          `json:"videoUrl"`
		Code        *string          `json:"code"`
		ProjectName *string          `json:"projectName"`
		Iteration   *uint64          `json:"iteration"`
		FileName    *string          `json:"fileName"`
		FileClass   *string          `json:"fileClass"`
		AspectRatio *string          `json:"aspectRatio"`
		Metadata    models.JSON      `json:"metadata"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "video.validation.input")
	}

	if body.VideoID == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "video.validation.input")
	}

	fields := map[string]interface{}{}
	if body.VideoURL != nil {
		fields["video_url"] = *body.VideoURL
	}
	if body.Code != nil {
		fields["code"] = *body.Code
	}
	if body.ProjectName != nil {
		fields["project_name"] = *body.ProjectName
	}
	if body.Iteration != nil {
		fields["iteration"] = *body.Iteration
	}
	if body.FileName != nil {
		fields["file_name"] = *body.FileName
	}
	if body.FileClass != nil {
		fields["file_class"] = *body.FileClass
	}
	if body.AspectRatio != nil {
		fields["aspect_ratio"] = *body.AspectRatio
	}
	if len(body.Metadata.JSON) > 0 {
		fields["metadata"] = body.Metadata
	}

	video, err := services.UpdateVideo(h.DB, uint64(body.VideoID), fields)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateVideo")
	}
	if video == nil {
		return utils.NotFoundResponse(c, "Video not found")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusOK, fiber.Map{
		"videoId": video.ID,
	})
}
