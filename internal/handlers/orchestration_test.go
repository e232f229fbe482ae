package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/localnerve/animgen/internal/clients"
	"github.com/localnerve/animgen/internal/handlers"
	"github.com/localnerve/animgen/internal/models"
	"github.com/localnerve/animgen/internal/services"
)

// TestChatEndpoint tests POST /api/chat with history forwarding and persistence
func TestChatEndpoint(t *testing.T) {
	db := setupTestDB(t)

	session, _ := services.CreateSession(db, testUserID, "prompt", "")
	_, _ = services.CreateMessage(db, testUserID, session.SessionKey, models.RoleUser, "draw a circle", nil)
	_, _ = services.CreateMessage(db, testUserID, session.SessionKey, models.RoleAI, "done, a circle", nil)

	var gotReq struct {
		Messages []clients.Turn `json:"messages"`
	}
	completionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "now a square"}},
			},
		})
	}))
	defer completionServer.Close()

	app := newTestApp()
	handler := &handlers.ChatHandler{
		DB:          db,
		Completions: clients.NewCompletionClient(completionServer.URL, "m", "", 5*time.Second),
	}
	app.Post("/api/chat", handler.Chat)

	rec, result := doJSON(t, app, "POST", "/api/chat", map[string]interface{}{
		"sessionKey": session.SessionKey,
		"prompt":     "make it a square",
	})
	if rec.Code != 200 {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if result["content"] != "now a square" {
		t.Errorf("Expected completion content, got %+v", result["content"])
	}
	if result["messageId"] == nil {
		t.Error("Expected messageId in response")
	}

	// system turn, mapped history, then the new prompt
	if len(gotReq.Messages) != 4 {
		t.Fatalf("Expected 4 turns sent, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("Expected system turn first, got %q", gotReq.Messages[0].Role)
	}
	if gotReq.Messages[2].Role != "assistant" {
		t.Errorf("Expected stored ai turn mapped to assistant, got %q", gotReq.Messages[2].Role)
	}
	if gotReq.Messages[3].Content != "make it a square" {
		t.Errorf("Expected new prompt last, got %q", gotReq.Messages[3].Content)
	}

	// Both turns persisted, user then ai
	messages, _ := services.GetMessagesBySession(db, testUserID, session.SessionKey)
	if len(messages) != 4 {
		t.Fatalf("Expected 4 stored messages, got %d", len(messages))
	}
	if messages[2].Role != models.RoleUser || messages[2].Content != "make it a square" {
		t.Errorf("Expected persisted user turn, got %+v", messages[2])
	}
	if messages[3].Role != models.RoleAI || messages[3].Content != "now a square" {
		t.Errorf("Expected persisted ai turn, got %+v", messages[3])
	}
}

// TestChatEndpointUpstreamFailure tests that nothing persists when the service fails
func TestChatEndpointUpstreamFailure(t *testing.T) {
	db := setupTestDB(t)

	session, _ := services.CreateSession(db, testUserID, "prompt", "")

	completionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer completionServer.Close()

	app := newTestApp()
	handler := &handlers.ChatHandler{
		DB:          db,
		Completions: clients.NewCompletionClient(completionServer.URL, "m", "", 5*time.Second),
	}
	app.Post("/api/chat", handler.Chat)

	rec, _ := doJSON(t, app, "POST", "/api/chat", map[string]interface{}{
		"sessionKey": session.SessionKey,
		"prompt":     "hello",
	})
	if rec.Code != 502 {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}

	messages, _ := services.GetMessagesBySession(db, testUserID, session.SessionKey)
	if len(messages) != 0 {
		t.Errorf("Expected no messages persisted, got %d", len(messages))
	}
}

// TestGetChatHistoryEndpoint tests GET /api/chat role mapping
func TestGetChatHistoryEndpoint(t *testing.T) {
	db := setupTestDB(t)

	session, _ := services.CreateSession(db, testUserID, "prompt", "")
	_, _ = services.CreateMessage(db, testUserID, session.SessionKey, models.RoleUser, "hi", nil)
	_, _ = services.CreateMessage(db, testUserID, session.SessionKey, models.RoleAI, "hello", nil)

	app := newTestApp()
	handler := &handlers.ChatHandler{DB: db}
	app.Get("/api/chat", handler.GetChatHistory)

	rec, result := doJSON(t, app, "GET", "/api/chat?sessionKey="+session.SessionKey, nil)
	if rec.Code != 200 {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	history, ok := result["history"].([]interface{})
	if !ok || len(history) != 2 {
		t.Fatalf("Expected 2 history turns, got %+v", result["history"])
	}
	second := history[1].(map[string]interface{})
	if second["role"] != "assistant" {
		t.Errorf("Expected assistant role in history, got %v", second["role"])
	}
}

// TestGenerateAnimationEndpoint tests the full generation pipeline
func TestGenerateAnimationEndpoint(t *testing.T) {
	db := setupTestDB(t)

	_, _ = services.CreateUser(db, testUserID, "a@example.com", "Ada", "")
	session, _ := services.CreateSession(db, testUserID, "prompt", "")

	genServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code": "```python\nclass GenScene:\n    pass\n```",
		})
	}))
	defer genServer.Close()

	var gotRender clients.RenderRequest
	renderServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotRender)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"video_url": "https://cdn.example.com/out.mp4",
		})
	}))
	defer renderServer.Close()

	app := newTestApp()
	handler := &handlers.AnimationHandler{
		DB:        db,
		Generator: clients.NewGenerationClient(genServer.URL, "m", 5*time.Second),
		Renderer:  clients.NewRenderClient(renderServer.URL, 5*time.Second),
	}
	app.Post("/api/animation", handler.GenerateAnimation)

	rec, result := doJSON(t, app, "POST", "/api/animation", map[string]interface{}{
		"prompt":     "bouncing ball",
		"sessionKey": session.SessionKey,
	})
	if rec.Code != 200 {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if result["code"] != "class GenScene:\n    pass" {
		t.Errorf("Expected fence-stripped code, got %q", result["code"])
	}
	if result["videoUrl"] != "https://cdn.example.com/out.mp4" {
		t.Errorf("Expected video url, got %v", result["videoUrl"])
	}
	if result["videoId"] == nil {
		t.Fatal("Expected videoId in response")
	}

	// Render received the fixed scene naming
	if gotRender.FileName != "GenScene.py" || gotRender.FileClass != "GenScene" || gotRender.ProjectName != "GenScene" {
		t.Errorf("Render arguments garbled: %+v", gotRender)
	}

	// Video persisted, counter bumped, session linked
	videos, _ := services.GetVideosByOwner(db, testUserID)
	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got %d", len(videos))
	}
	user, _ := services.GetUserByID(db, testUserID)
	if user.VideoCount != 1 {
		t.Errorf("Expected video count 1, got %d", user.VideoCount)
	}
	found, _ := services.GetSessionByKey(db, testUserID, session.SessionKey)
	if found.VideoID == nil || *found.VideoID != videos[0].ID {
		t.Errorf("Expected session linked to video %d, got %+v", videos[0].ID, found.VideoID)
	}
}

// TestGenerateAnimationRenderFailure tests that a failed render persists nothing
func TestGenerateAnimationRenderFailure(t *testing.T) {
	db := setupTestDB(t)

	genServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "class GenScene: pass"})
	}))
	defer genServer.Close()

	renderServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render crashed", http.StatusInternalServerError)
	}))
	defer renderServer.Close()

	app := newTestApp()
	handler := &handlers.AnimationHandler{
		DB:        db,
		Generator: clients.NewGenerationClient(genServer.URL, "m", 5*time.Second),
		Renderer:  clients.NewRenderClient(renderServer.URL, 5*time.Second),
	}
	app.Post("/api/animation", handler.GenerateAnimation)

	rec, _ := doJSON(t, app, "POST", "/api/animation", map[string]interface{}{
		"prompt": "bouncing ball",
	})
	if rec.Code != 502 {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}

	videos, _ := services.GetVideosByOwner(db, testUserID)
	if len(videos) != 0 {
		t.Errorf("Expected no videos persisted, got %d", len(videos))
	}
}

// TestGetAnimationStatusEndpoint tests the status stub
func TestGetAnimationStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)

	app := newTestApp()
	handler := &handlers.AnimationHandler{DB: db}
	app.Get("/api/animation/:videoId", handler.GetAnimationStatus)

	rec, result := doJSON(t, app, "GET", "/api/animation/42", nil)
	if rec.Code != 200 {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if result["status"] != "completed" {
		t.Errorf("Expected completed status, got %v", result["status"])
	}

	rec, _ = doJSON(t, app, "GET", "/api/animation/notanumber", nil)
	if rec.Code != 400 {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
