package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/metrics"
)

// Dispatcher sends one categorization prompt to a backend and returns the raw
// model text. Implementations do not retry.
type Dispatcher interface {
	Dispatch(ctx context.Context, prompt string) (string, error)
}

// ProviderError reports a failed exchange with one backend: network failure,
// non-success status or a response missing its expected fields. Sub-causes
// are not distinguished beyond the wrapped error.
type ProviderError struct {
	Provider ProviderID
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Client runs the prompt, dispatch and parse pipeline for a single provider.
// It implements core.LLMCategorizer.
type Client struct {
	provider   Provider
	dispatcher Dispatcher
	prompts    *PromptBuilder
	logger     *zap.Logger
}

// NewClient creates a categorizer client bound to one provider and its
// wire-format dispatcher.
func NewClient(provider Provider, dispatcher Dispatcher, prompts *PromptBuilder, logger *zap.Logger) *Client {
	return &Client{
		provider:   provider,
		dispatcher: dispatcher,
		prompts:    prompts,
		logger:     logger,
	}
}

// CategorizeEmail sends the email to the provider and parses the response.
// Transport failures surface as *ProviderError; response parsing never fails.
func (c *Client) CategorizeEmail(ctx context.Context, email *core.Email) (*core.CategorizationResult, error) {
	prompt := c.prompts.Build(email)

	raw, err := c.dispatcher.Dispatch(ctx, prompt)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(string(c.provider.ID)).Inc()
		return nil, &ProviderError{Provider: c.provider.ID, Err: err}
	}

	result := Parse(raw)
	result.Provider = string(c.provider.ID)
	result.Model = c.provider.Model
	result.ProcessingID = uuid.NewString()
	result.CategorizedAt = time.Now()

	c.logger.Debug("AI categorization complete",
		zap.String("provider", string(c.provider.ID)),
		zap.String("category", string(result.Category)),
		zap.Int("replies", len(result.Replies)))

	return result, nil
}
