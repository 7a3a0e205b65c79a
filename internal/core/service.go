package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/metrics"
)

// CategorizationService composes the AI attempt and the rule-based fallback
// into a single operation that always produces a result. One AI attempt, one
// deterministic fallback; no retries, no cascading to a second provider.
type CategorizationService struct {
	llm    LLMCategorizer // nil when no provider is enabled
	rules  *RuleClassifier
	logger *zap.Logger
}

// NewCategorizationService creates a new categorization service. llm may be
// nil, in which case every email goes straight to the rule classifier.
func NewCategorizationService(llm LLMCategorizer, rules *RuleClassifier, logger *zap.Logger) *CategorizationService {
	return &CategorizationService{
		llm:    llm,
		rules:  rules,
		logger: logger,
	}
}

// CategorizeEmail triages one email. It never fails: any error from the AI
// path is logged and absorbed by falling back to the rule classifier.
func (s *CategorizationService) CategorizeEmail(ctx context.Context, email *Email) *CategorizationResult {
	start := time.Now()

	var result *CategorizationResult
	if s.llm == nil {
		s.logger.Debug("No AI provider enabled, using rule-based classifier",
			zap.String("from", email.From))
		result = s.rules.Classify(email)
	} else {
		var err error
		result, err = s.llm.CategorizeEmail(ctx, email)
		if err != nil {
			s.logger.Warn("AI categorization failed, falling back to rules",
				zap.String("from", email.From),
				zap.Error(err))
			result = s.rules.Classify(email)
		}
	}

	metrics.Categorizations.WithLabelValues(string(result.Category), string(result.Source)).Inc()
	metrics.CategorizationLatency.Observe(time.Since(start).Seconds())

	return result
}
