// data.go
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

package helpers

import (
	"testing"

	"github.com/localnerve/animgen/internal/models"
	"github.com/localnerve/animgen/internal/services"
	"gorm.io/gorm"
)

// CreateTestUser creates a user profile row
func CreateTestUser(t *testing.T, db *gorm.DB, userID, email, name string) *models.User {
	user, err := services.CreateUser(db, userID, email, name, "")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// CreateTestSession creates a session for the owner
func CreateTestSession(t *testing.T, db *gorm.DB, userID, prompt string) *models.Session {
	session, err := services.CreateSession(db, userID, prompt, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session
}

// CreateTestMessage appends a conversation turn
func CreateTestMessage(t *testing.T, db *gorm.DB, userID, sessionKey string, role models.Role, content string) *models.Message {
	message, err := services.CreateMessage(db, userID, sessionKey, role, content, nil)
	if err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}
	return message
}

// CreateTestVideo records a video artifact
func CreateTestVideo(t *testing.T, db *gorm.DB, userID, videoURL, code string) *models.Video {
	video, err := services.CreateVideo(db, userID, videoURL, code, nil)
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}
	return video
}
