// Package openaicompat dispatches prompts to any backend speaking the OpenAI
// chat completions protocol: OpenAI itself, Groq, OpenRouter and Gemini's
// compatibility endpoint.
package openaicompat

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/llm"
)

const (
	maxTokens   = 1000
	temperature = 0.7
)

// Client implements llm.Dispatcher over the OpenAI-compatible wire format.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a dispatcher for one OpenAI-compatible provider. The SDK
// appends /chat/completions to its base URL, so that suffix is stripped from
// the provider's request path when deriving it.
func NewClient(p llm.Provider, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig(p.Credential)
	cfg.BaseURL = strings.TrimSuffix(p.BaseAddress+p.RequestPath, "/chat/completions")

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  p.Model,
		logger: logger,
	}
}

// Dispatch sends the prompt as a single user message and returns the first
// choice's content.
func (c *Client) Dispatch(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
