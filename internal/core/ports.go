package core

import (
	"context"
)

// LLMCategorizer defines the interface for categorizing an email with an AI
// backend. Implementations return an error when the backend could not be
// reached or did not deliver a usable response.
type LLMCategorizer interface {
	CategorizeEmail(ctx context.Context, email *Email) (*CategorizationResult, error)
}
