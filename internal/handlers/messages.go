package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/animgen/internal/models"
	"github.com/localnerve/animgen/internal/services"
	"github.com/localnerve/animgen/internal/types"
	"github.com/localnerve/animgen/internal/utils"
	"gorm.io/gorm"
)

// MessageHandler handles message routes
type MessageHandler struct {
	DB *gorm.DB
}

// CreateMessage handles POST /api/message
// @Summary Create a message
// @Description Append a conversation turn to a session
// @Tags Message
// @Accept json
// @Produce json
// @Param body body object true "Session key, role, content, optional video id"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /message [post]
func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "message.authorization.user")
	}

	var body struct {
		SessionKey string            `json:"sessionKey"`
		Role       models.Role       `json:"role"`
		Content    string            `json:"content"`
		VideoID    *types.FlexUint64 `json:"videoId"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "message.validation.input")
	}

	if body.SessionKey == "" || body.Content == "" || !body.Role.Valid() {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "message.validation.input")
	}

	var videoID *uint64
	if body.VideoID != nil {
		id := uint64(*body.VideoID)
		videoID = &id
	}

	message, err := services.CreateMessage(h.DB, userID, body.SessionKey, body.Role, body.Content, videoID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createMessage")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"messageId": message.ID,
	})
}

// GetMessages handles GET /api/message?sessionKey=...&latest=...
// @Summary Get messages
// @Description Get session history in chronological order, or just the latest message
// @Tags Message
// @Accept json
// @Produce json
// @Param sessionKey query string true "Session key"
// @Param latest query bool false "Return only the latest message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /message [get]
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "message.authorization.user")
	}

	sessionKey := c.Query("sessionKey", "")
	if sessionKey == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "message.validation.input")
	}

	if c.QueryBool("latest", false) {
		message, err := services.GetLatestMessageBySession(h.DB, userID, sessionKey)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getLatestMessage")
		}
		return utils.SuccessResponse(c, fiber.Map{"message": message}, fiber.StatusOK)
	}

	messages, err := services.GetMessagesBySession(h.DB, userID, sessionKey)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getMessages")
	}

	return utils.SuccessResponse(c, fiber.Map{"messages": messages}, fiber.StatusOK)
}
