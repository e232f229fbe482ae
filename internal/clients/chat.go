package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/localnerve/animgen/internal/models"
)

// SystemInstruction is the fixed system turn for every chat completion.
const SystemInstruction = "You are an assistant for a mathematical animation " +
	"generator. Help the user refine animation prompts and explain the " +
	"animations that were generated for them. Keep answers short and concrete."

// Completion service role labels. Stored roles map onto these at this
// boundary only.
const (
	turnRoleSystem    = "system"
	turnRoleUser      = "user"
	turnRoleAssistant = "assistant"
)

// Turn is one role-tagged entry in a completion request.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildCompletionTurns maps stored messages into completion turns. The
// stored "ai" role becomes "assistant"; everything else is sent as "user".
func BuildCompletionTurns(messages []models.Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		role := turnRoleUser
		if m.Role == models.RoleAI {
			role = turnRoleAssistant
		}
		turns = append(turns, Turn{Role: role, Content: m.Content})
	}
	return turns
}

// CompletionClient calls the external chat-completion service.
type CompletionClient struct {
	BaseURL string
	Model   string // default model when the caller supplies none
	APIKey  string // optional bearer token
	HTTP    *http.Client
}

// NewCompletionClient creates a completion client with the given endpoint,
// default model, optional API key, and request timeout.
func NewCompletionClient(baseURL, model, apiKey string, timeout time.Duration) *CompletionClient {
	return &CompletionClient{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type completionRequest struct {
	Model    string `json:"model"`
	Messages []Turn `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system instruction plus the supplied turns and returns
// the completion text.
func (cc *CompletionClient) Complete(ctx context.Context, turns []Turn, model string) (string, error) {
	if model == "" {
		model = cc.Model
	}

	messages := make([]Turn, 0, len(turns)+1)
	messages = append(messages, Turn{Role: turnRoleSystem, Content: SystemInstruction})
	messages = append(messages, turns...)

	body, err := json.Marshal(completionRequest{Model: model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if cc.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cc.APIKey)
	}

	resp, err := cc.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result completionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion service returned no content")
	}

	return result.Choices[0].Message.Content, nil
}
