package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/localnerve/animgen/internal/clients"
	"github.com/localnerve/animgen/internal/models"
)

// TestStripCodeFences tests markdown fence removal
func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", "from manim import *", "from manim import *"},
		{"python fence", "```python\nfrom manim import *\n```", "from manim import *"},
		{"bare fence", "```\nx = 1\n```", "x = 1"},
		{"leading whitespace", "  ```python\ncode\n```  ", "code"},
		{"fence only", "```", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := clients.StripCodeFences(c.in); got != c.want {
				t.Errorf("Got %q, want %q", got, c.want)
			}
		})
	}
}

// TestBuildCompletionTurns tests the stored-role to completion-role mapping
func TestBuildCompletionTurns(t *testing.T) {
	messages := []models.Message{
		{Role: models.RoleUser, Content: "draw a circle"},
		{Role: models.RoleAI, Content: "here is a circle"},
		{Role: models.Role("weird"), Content: "unknown role"},
	}

	turns := clients.BuildCompletionTurns(messages)
	if len(turns) != 3 {
		t.Fatalf("Expected 3 turns, got %d", len(turns))
	}
	if turns[0].Role != "user" {
		t.Errorf("Expected user, got %q", turns[0].Role)
	}
	if turns[1].Role != "assistant" {
		t.Errorf("Expected assistant, got %q", turns[1].Role)
	}
	if turns[2].Role != "user" {
		t.Errorf("Expected unknown roles to fall back to user, got %q", turns[2].Role)
	}
}

// TestGenerateCode tests the generation round trip and fence stripping
func TestGenerateCode(t *testing.T) {
	var gotReq map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code": "```python\nclass GenScene:\n    pass\n```",
		})
	}))
	defer server.Close()

	client := clients.NewGenerationClient(server.URL, "default-model", 5*time.Second)

	code, err := client.GenerateCode(context.Background(), "bouncing ball", "")
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	if code != "class GenScene:\n    pass" {
		t.Errorf("Expected fence-stripped code, got %q", code)
	}
	if gotReq["prompt"] != "bouncing ball" {
		t.Errorf("Expected prompt forwarded, got %q", gotReq["prompt"])
	}
	if gotReq["model"] != "default-model" {
		t.Errorf("Expected default model, got %q", gotReq["model"])
	}
}

// TestGenerateCodeErrors tests upstream failures
func TestGenerateCodeErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := clients.NewGenerationClient(server.URL, "m", 5*time.Second)
	if _, err := client.GenerateCode(context.Background(), "p", ""); err == nil {
		t.Error("Expected error on 500 response")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"code": ""})
	}))
	defer empty.Close()

	client = clients.NewGenerationClient(empty.URL, "m", 5*time.Second)
	if _, err := client.GenerateCode(context.Background(), "p", ""); err == nil {
		t.Error("Expected error on empty code")
	}
}

// TestRenderVideo tests the render round trip
func TestRenderVideo(t *testing.T) {
	var gotReq clients.RenderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"video_url": "https://cdn.example.com/out.mp4",
		})
	}))
	defer server.Close()

	client := clients.NewRenderClient(server.URL, 5*time.Second)

	url, err := client.RenderVideo(context.Background(), clients.RenderRequest{
		Code:        "class GenScene: pass",
		FileName:    clients.RenderFileName,
		FileClass:   clients.RenderFileClass,
		Iteration:   12,
		ProjectName: clients.RenderProjectName,
	})
	if err != nil {
		t.Fatalf("RenderVideo failed: %v", err)
	}
	if url != "https://cdn.example.com/out.mp4" {
		t.Errorf("Expected video url, got %q", url)
	}
	if gotReq.FileName != "GenScene.py" || gotReq.FileClass != "GenScene" || gotReq.ProjectName != "GenScene" {
		t.Errorf("Render arguments garbled: %+v", gotReq)
	}
	if gotReq.Iteration != 12 {
		t.Errorf("Expected iteration 12, got %d", gotReq.Iteration)
	}
}

// TestRenderVideoNoURL tests the missing-url failure
func TestRenderVideoNoURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"video_url": ""})
	}))
	defer server.Close()

	client := clients.NewRenderClient(server.URL, 5*time.Second)
	if _, err := client.RenderVideo(context.Background(), clients.RenderRequest{Code: "x"}); err == nil {
		t.Error("Expected error on empty video url")
	}
}

// TestComplete tests the completion round trip and system turn
func TestComplete(t *testing.T) {
	var gotAuth string
	var gotReq struct {
		Model    string         `json:"model"`
		Messages []clients.Turn `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "a parabola"}},
			},
		})
	}))
	defer server.Close()

	client := clients.NewCompletionClient(server.URL, "default-model", "secret", 5*time.Second)

	turns := []clients.Turn{
		{Role: "user", Content: "what did you draw?"},
	}
	content, err := client.Complete(context.Background(), turns, "")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "a parabola" {
		t.Errorf("Expected completion text, got %q", content)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "default-model" {
		t.Errorf("Expected default model, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("Expected system turn first, got %+v", gotReq.Messages)
	}
	if gotReq.Messages[0].Content != clients.SystemInstruction {
		t.Error("Expected the fixed system instruction")
	}
}

// TestCompleteNoChoices tests the empty-choices failure
func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := clients.NewCompletionClient(server.URL, "m", "", 5*time.Second)
	if _, err := client.Complete(context.Background(), nil, ""); err == nil {
		t.Error("Expected error on empty choices")
	}
}
