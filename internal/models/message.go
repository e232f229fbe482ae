package models

import (
	"time"
)

// Message is one turn in a conversation. Messages are append-only; they
// are never mutated and are only removed in bulk when their session is
// deleted.
type Message struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"userId" gorm:"type:char(36);not null;index;index:idx_messages_owner_session,priority:1"`
	SessionKey string    `json:"sessionKey" gorm:"size:64;not null;index;index:idx_messages_owner_session,priority:2"`
	Role       Role      `json:"role" gorm:"size:16;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	VideoID    *uint64   `json:"videoId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}
