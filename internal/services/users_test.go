package services_test

import (
	"testing"

	"github.com/localnerve/animgen/internal/services"
)

// TestCreateUserIdempotent tests repeated profile creation for one identity
func TestCreateUserIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := services.CreateUser(db, "user-1", "a@example.com", "Ada", "")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	second, err := services.CreateUser(db, "user-1", "changed@example.com", "Changed", "")
	if err != nil {
		t.Fatalf("Failed on repeated create: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("Expected same row, got ids %d and %d", first.ID, second.ID)
	}
	if second.Email != "a@example.com" {
		t.Errorf("Expected original email preserved, got %q", second.Email)
	}
}

// TestGetUserByID tests lookup and the nil miss
func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateUser(db, "user-1", "a@example.com", "Ada", ""); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	user, err := services.GetUserByID(db, "user-1")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user == nil || user.Name != "Ada" {
		t.Errorf("Expected Ada, got %+v", user)
	}

	missing, err := services.GetUserByID(db, "nobody")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown identity")
	}
}

// TestUpdateUser tests field patching and the nil miss
func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateUser(db, "user-1", "a@example.com", "Ada", ""); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	updated, err := services.UpdateUser(db, "user-1", map[string]interface{}{"name": "Grace"})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated == nil || updated.Name != "Grace" {
		t.Errorf("Expected Grace, got %+v", updated)
	}

	missing, err := services.UpdateUser(db, "nobody", map[string]interface{}{"name": "X"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown identity")
	}
}

// TestIncrementVideoCount tests the counter and the missing-user case
func TestIncrementVideoCount(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateUser(db, "user-1", "a@example.com", "Ada", ""); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for i := 1; i <= 3; i++ {
		user, err := services.IncrementVideoCount(db, "user-1")
		if err != nil {
			t.Fatalf("Failed to increment: %v", err)
		}
		if user.VideoCount != uint64(i) {
			t.Errorf("Expected count %d, got %d", i, user.VideoCount)
		}
	}

	missing, err := services.IncrementVideoCount(db, "nobody")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown identity")
	}
}
