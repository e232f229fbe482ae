package services

import (
	"time"

	"github.com/localnerve/animgen/internal/models"
	"gorm.io/gorm"
)

// CreateMessage appends one conversation turn and refreshes the activity
// timestamp of any session carrying that key. The session touch is keyed on
// the session key alone; the write path is deliberately looser than the
// owner-scoped read path.
func CreateMessage(db *gorm.DB, userID, sessionKey string, role models.Role, content string, videoID *uint64) (*models.Message, error) {
	message := models.Message{
		UserID:     userID,
		SessionKey: sessionKey,
		Role:       role,
		Content:    content,
		VideoID:    videoID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		return tx.Model(&models.Session{}).
			Where("session_key = ?", sessionKey).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// GetMessagesBySession returns the owner's messages for a session in
// nondecreasing timestamp order. The id is the tiebreak for turns created
// within the same millisecond.
func GetMessagesBySession(db *gorm.DB, userID, sessionKey string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("user_id = ? AND session_key = ?", userID, sessionKey).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetLatestMessageBySession returns the owner's newest message for a
// session, or nil when the session has none.
func GetLatestMessageBySession(db *gorm.DB, userID, sessionKey string) (*models.Message, error) {
	var message models.Message
	err := db.Where("user_id = ? AND session_key = ?", userID, sessionKey).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}
