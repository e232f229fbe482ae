package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/localnerve/animgen/internal/models"
	"github.com/localnerve/animgen/internal/services"
)

// TestCreateMessageTouchesSession tests the session activity refresh
func TestCreateMessageTouchesSession(t *testing.T) {
	db := setupTestDB(t)

	session, err := services.CreateSession(db, "user-1", "prompt", "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	before := session.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	message, err := services.CreateMessage(db, "user-1", session.SessionKey, models.RoleUser, "hello", nil)
	if err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}
	if message.ID == 0 {
		t.Error("Expected a storage id")
	}

	found, _ := services.GetSessionByKey(db, "user-1", session.SessionKey)
	if !found.UpdatedAt.After(before) {
		t.Errorf("Expected updated_at to advance, before=%v after=%v", before, found.UpdatedAt)
	}
}

// TestGetMessagesBySession tests ordering and owner scoping
func TestGetMessagesBySession(t *testing.T) {
	db := setupTestDB(t)

	session, err := services.CreateSession(db, "user-1", "prompt", "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	for i := 0; i < 5; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAI
		}
		if _, err := services.CreateMessage(db, "user-1", session.SessionKey, role, fmt.Sprintf("turn %d", i), nil); err != nil {
			t.Fatalf("Failed to create message: %v", err)
		}
	}
	// Another owner writes under the same key
	if _, err := services.CreateMessage(db, "user-2", session.SessionKey, models.RoleUser, "other", nil); err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}

	messages, err := services.GetMessagesBySession(db, "user-1", session.SessionKey)
	if err != nil {
		t.Fatalf("Failed to get messages: %v", err)
	}
	if len(messages) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(messages))
	}
	for i, m := range messages {
		if m.Content != fmt.Sprintf("turn %d", i) {
			t.Errorf("Message %d out of order: %q", i, m.Content)
		}
	}
}

// TestGetLatestMessageBySession tests the latest lookup and empty sessions
func TestGetLatestMessageBySession(t *testing.T) {
	db := setupTestDB(t)

	session, err := services.CreateSession(db, "user-1", "prompt", "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Empty session yields nil, no error
	latest, err := services.GetLatestMessageBySession(db, "user-1", session.SessionKey)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if latest != nil {
		t.Errorf("Expected nil for empty session, got %+v", latest)
	}

	for i := 0; i < 3; i++ {
		if _, err := services.CreateMessage(db, "user-1", session.SessionKey, models.RoleUser, fmt.Sprintf("turn %d", i), nil); err != nil {
			t.Fatalf("Failed to create message: %v", err)
		}
	}

	latest, err = services.GetLatestMessageBySession(db, "user-1", session.SessionKey)
	if err != nil {
		t.Fatalf("Failed to get latest message: %v", err)
	}
	if latest == nil || latest.Content != "turn 2" {
		t.Errorf("Expected latest message 'turn 2', got %+v", latest)
	}
}
