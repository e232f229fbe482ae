package services_test

import (
	"testing"

	"github.com/localnerve/animgen/internal/services"
)

// TestCreateVideoIncrementsCount tests artifact creation and the owner counter
func TestCreateVideoIncrementsCount(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateUser(db, "user-1", "a@example.com", "Ada", ""); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for i := 1; i <= 2; i++ {
		video, err := services.CreateVideo(db, "user-1", "https://cdn.example.com/v.mp4", "class GenScene: pass", nil)
		if err != nil {
			t.Fatalf("Failed to create video: %v", err)
		}
		if video.ID == 0 {
			t.Error("Expected a storage id")
		}

		user, _ := services.GetUserByID(db, "user-1")
		if user.VideoCount != uint64(i) {
			t.Errorf("Expected video count %d, got %d", i, user.VideoCount)
		}
	}
}

// TestCreateVideoWithOptions tests the richer creation path
func TestCreateVideoWithOptions(t *testing.T) {
	db := setupTestDB(t)

	video, err := services.CreateVideo(db, "user-1", "https://cdn.example.com/v.mp4", "code", &services.VideoOptions{
		ProjectName: "GenScene",
		Iteration:   7,
		FileName:    "GenScene.py",
		FileClass:   "GenScene",
		AspectRatio: "16:9",
	})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}
	if video.ProjectName != "GenScene" || video.Iteration != 7 || video.AspectRatio != "16:9" {
		t.Errorf("Options not persisted: %+v", video)
	}
}

// TestUpdateVideo tests field patching and the nil miss
func TestUpdateVideo(t *testing.T) {
	db := setupTestDB(t)

	video, err := services.CreateVideo(db, "user-1", "https://cdn.example.com/v.mp4", "code", nil)
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	updated, err := services.UpdateVideo(db, video.ID, map[string]interface{}{
		"video_url": "https://cdn.example.com/v2.mp4",
	})
	if err != nil {
		t.Fatalf("Failed to update video: %v", err)
	}
	if updated == nil || updated.VideoURL != "https://cdn.example.com/v2.mp4" {
		t.Errorf("Expected updated url, got %+v", updated)
	}

	missing, err := services.UpdateVideo(db, 9999, map[string]interface{}{"code": "x"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown video")
	}
}

// TestGetVideosByOwner tests owner scoping
func TestGetVideosByOwner(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 2; i++ {
		if _, err := services.CreateVideo(db, "user-1", "https://cdn.example.com/v.mp4", "code", nil); err != nil {
			t.Fatalf("Failed to create video: %v", err)
		}
	}
	if _, err := services.CreateVideo(db, "user-2", "https://cdn.example.com/o.mp4", "code", nil); err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	videos, err := services.GetVideosByOwner(db, "user-1")
	if err != nil {
		t.Fatalf("Failed to list videos: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("Expected 2 videos, got %d", len(videos))
	}
}
