// Package clients holds the HTTP clients for the external code-generation,
// render, and chat-completion services. The service implementations are
// opaque; only their request/response shapes are pinned here.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GenerationClient calls the external code-generation service.
type GenerationClient struct {
	BaseURL string
	Model   string // default model when the caller supplies none
	HTTP    *http.Client
}

// NewGenerationClient creates a generation client with the given endpoint,
// default model, and request timeout.
func NewGenerationClient(baseURL, model string, timeout time.Duration) *GenerationClient {
	return &GenerationClient{
		BaseURL: baseURL,
		Model:   model,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type generationRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type generationResponse struct {
	Code string `json:"code"`
}

// GenerateCode asks the generation service for animation source code. The
// returned text is fence-stripped and ready for the render service.
func (g *GenerationClient) GenerateCode(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = g.Model
	}

	body, err := json.Marshal(generationRequest{Prompt: prompt, Model: model})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result generationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if result.Code == "" {
		return "", fmt.Errorf("generation service returned no code")
	}

	return StripCodeFences(result.Code), nil
}

// StripCodeFences removes a leading ```language line and a trailing ```
// from text returned by the generation service. Text without fences passes
// through unchanged.
func StripCodeFences(code string) string {
	out := strings.TrimSpace(code)

	if strings.HasPrefix(out, "```") {
		if idx := strings.Index(out, "\n"); idx >= 0 {
			out = out[idx+1:]
		} else {
			return ""
		}
	}

	out = strings.TrimRight(out, " \t\n")
	if strings.HasSuffix(out, "```") {
		out = strings.TrimRight(strings.TrimSuffix(out, "```"), " \t\n")
	}

	return out
}
