package models

import (
	"time"
)

// Session represents one conversation thread. The SessionKey is the
// externally visible identifier (distinct from the storage id) and has
// the shape session_<epochMillis>_<5 base36 chars>.
type Session struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"userId" gorm:"type:char(36);not null;index;index:idx_sessions_owner_key,priority:1"`
	SessionKey string    `json:"sessionKey" gorm:"size:64;not null;uniqueIndex;index:idx_sessions_owner_key,priority:2"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Prompt     string    `json:"prompt" gorm:"type:text"`
	VideoID    *uint64   `json:"videoId,omitempty"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Session
func (Session) TableName() string {
	return "sessions"
}
