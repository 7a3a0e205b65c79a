// Package anthropic dispatches prompts over the Anthropic messages protocol.
package anthropic

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

const (
	apiVersion  = "2023-06-01"
	maxTokens   = 1000
	httpTimeout = 60 * time.Second
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Client implements llm.Dispatcher over the Anthropic wire format.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// NewClient creates a dispatcher for an Anthropic-format provider.
func NewClient(p llm.Provider, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		url:        p.BaseAddress + p.RequestPath,
		apiKey:     p.Credential,
		model:      p.Model,
		logger:     logger,
	}
}

// Dispatch sends the prompt as a single user message and returns the first
// content block's text.
func (c *Client) Dispatch(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(request{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

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
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "", fmt.Errorf("response has no content")
	}

	return parsed.Content[0].Text, nil
}
