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

package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/localnerve/animgen/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const sessionKeyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// titleLimit is the maximum stored title length, ellipsis included.
const titleLimit = 30

// NewSessionKey generates a session key of the form
// session_<epochMillis>_<5 base36 chars>. The key embeds its creation
// instant; uniqueness is enforced by the column index on insert.
func NewSessionKey() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(sessionKeyAlphabet))))
		if err != nil {
			panic(fmt.Sprintf("session key entropy unavailable: %v", err))
		}
		suffix[i] = sessionKeyAlphabet[n.Int64()]
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}

// DeriveTitle returns the explicit title when supplied, otherwise the
// prompt capped at titleLimit characters with a trailing ellipsis.
func DeriveTitle(prompt, title string) string {
	if title != "" {
		return title
	}
	runes := []rune(prompt)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit-3]) + "..."
	}
	return prompt
}

// CreateSession creates a conversation thread for the owner and returns the
// stored record, including both the storage id and the generated key.
func CreateSession(db *gorm.DB, userID, prompt, title string) (*models.Session, error) {
	session := models.Session{
		UserID:     userID,
		SessionKey: NewSessionKey(),
		Title:      DeriveTitle(prompt, title),
		Prompt:     prompt,
		IsActive:   true,
	}

	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// sessionByKey scopes a query to the owner and session key pair, using the
// compound index directly on MySQL.
func sessionByKey(db *gorm.DB, userID, sessionKey string) *gorm.DB {
	query := db
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_sessions_owner_key"))
	}
	return query.Where("user_id = ? AND session_key = ?", userID, sessionKey)
}

// GetSessionByKey returns the session only if it exists and is owned by
// userID; otherwise nil. The ownership check is part of the query, not a
// post-filter.
func GetSessionByKey(db *gorm.DB, userID, sessionKey string) (*models.Session, error) {
	var session models.Session
	err := sessionByKey(db, userID, sessionKey).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetSessionsByOwner returns all of the owner's sessions, newest activity
// first.
func GetSessionsByOwner(db *gorm.DB, userID string) ([]models.Session, error) {
	var sessions []models.Session
	err := db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// LinkSessionVideo attaches a video artifact to the session and refreshes
// its activity timestamp. Fails with ErrNotAuthorized when no session with
// that key exists for the owner.
func LinkSessionVideo(db *gorm.DB, userID, sessionKey string, videoID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := sessionByKey(tx, userID, sessionKey).First(&session).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotAuthorized
			}
			return err
		}

		return tx.Model(&session).Update("video_id", videoID).Error
	})
}

// DeleteSession removes the session and every message carrying its key, in
// one transaction. Fails with ErrNotAuthorized when no session with that
// key exists for the owner, leaving session and messages untouched.
func DeleteSession(db *gorm.DB, userID, sessionKey string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := sessionByKey(tx, userID, sessionKey).First(&session).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotAuthorized
			}
			return err
		}

		if err := tx.Where("session_key = ?", sessionKey).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}

		return tx.Delete(&session).Error
	})
}
