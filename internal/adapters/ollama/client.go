// Package ollama dispatches prompts over the Ollama chat protocol, also used
// by other local inference servers exposing the same API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/llm"
)

// Local models can be slow to load on first use.
const httpTimeout = 120 * time.Second

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type response struct {
	Message message `json:"message"`
}

// Client implements llm.Dispatcher over the Ollama wire format. No auth
// header is sent.
type Client struct {
	httpClient *http.Client
	url        string
	model      string
	logger     *zap.Logger
}

// NewClient creates a dispatcher for an Ollama-format provider.
func NewClient(p llm.Provider, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		url:        p.BaseAddress + p.RequestPath,
		model:      p.Model,
		logger:     logger,
	}
}

// Dispatch sends the prompt as a single user message with streaming disabled
// and returns the response message content.
func (c *Client) Dispatch(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(request{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Message.Content == "" {
		return "", fmt.Errorf("response has no message content")
	}

	return parsed.Message.Content, nil
}
