package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/anthropic"
	"github.com/mikey/mail-triage/internal/adapters/ollama"
	"github.com/mikey/mail-triage/internal/adapters/openaicompat"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/llm"
)

// NewDispatcher builds the wire-format client for a provider. The switch is
// exhaustive over the closed WireFormat set; a new variant must be handled
// here.
func NewDispatcher(p llm.Provider, logger *zap.Logger) (llm.Dispatcher, error) {
	switch p.WireFormat {
	case llm.WireFormatOpenAICompatible:
		return openaicompat.NewClient(p, logger), nil
	case llm.WireFormatAnthropic:
		return anthropic.NewClient(p, logger), nil
	case llm.WireFormatOllamaStyle:
		return ollama.NewClient(p, logger), nil
	default:
		return nil, fmt.Errorf("unsupported wire format: %s", p.WireFormat)
	}
}

// LLMFactory creates the AI categorizer for the active provider.
type LLMFactory struct {
	registry *llm.Registry
	prompts  *llm.PromptBuilder
	logger   *zap.Logger
}

// NewLLMFactory creates a new LLM factory.
func NewLLMFactory(registry *llm.Registry, prompts *llm.PromptBuilder, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		registry: registry,
		prompts:  prompts,
		logger:   logger,
	}
}

// CreateCategorizer builds a categorizer bound to the active provider. It
// returns nil when no provider is enabled; that is a valid state, not an
// error, and routes every email to the rule classifier.
func (f *LLMFactory) CreateCategorizer() (core.LLMCategorizer, error) {
	p, ok := f.registry.SelectActive()
	if !ok {
		f.logger.Info("No AI provider enabled, categorization will use rules only")
		return nil, nil
	}

	dispatcher, err := NewDispatcher(p, f.logger)
	if err != nil {
		return nil, err
	}

	f.logger.Info("Using AI provider",
		zap.String("provider", string(p.ID)),
		zap.String("wire_format", p.WireFormat.String()),
		zap.String("model", p.Model))

	return llm.NewClient(p, dispatcher, f.prompts, f.logger), nil
}
