package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fixed render arguments for the generation pipeline. The render service
// compiles whatever class the generated module declares under this name.
const (
	RenderFileName    = "GenScene.py"
	RenderFileClass   = "GenScene"
	RenderProjectName = "GenScene"
)

// RenderClient calls the external render service that turns animation code
// into a hosted video.
type RenderClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewRenderClient creates a render client with the given endpoint and
// request timeout.
func NewRenderClient(baseURL string, timeout time.Duration) *RenderClient {
	return &RenderClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// RenderRequest is the render service wire format.
type RenderRequest struct {
	Code        string `json:"code"`
	FileName    string `json:"file_name"`
	FileClass   string `json:"file_class"`
	Iteration   uint64 `json:"iteration"`
	ProjectName string `json:"project_name"`
}

type renderResponse struct {
	VideoURL string `json:"video_url"`
}

// RenderVideo submits code for rendering and returns the hosted video URL.
func (r *RenderClient) RenderVideo(ctx context.Context, request RenderRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("render service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result renderResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode render response: %w", err)
	}
	if result.VideoURL == "" {
		return "", fmt.Errorf("render service returned no video URL")
	}

	return result.VideoURL, nil
}
