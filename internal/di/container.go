package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/httpapi"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/factory"
	"github.com/mikey/mail-triage/internal/llm"
	"github.com/mikey/mail-triage/internal/logging"
	"github.com/mikey/mail-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register provider registry, built once from configuration; business
	// logic only ever sees this immutable value
	if err := container.Provide(func(cfg *config.Config) *llm.Registry {
		return llm.NewRegistry(cfg.Providers())
	}); err != nil {
		return nil, err
	}

	// Register prompt builder
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *llm.PromptBuilder {
		return llm.NewPromptBuilder(utils.NewTextProcessor(logger), cfg.MaxBodySize())
	}); err != nil {
		return nil, err
	}

	// Register AI categorizer (nil when no provider is enabled)
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMCategorizer, error) {
		return f.CreateCategorizer()
	}); err != nil {
		return nil, err
	}

	// Register rule classifier and orchestrating service
	if err := container.Provide(core.NewRuleClassifier); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewCategorizationService); err != nil {
		return nil, err
	}

	// Register HTTP API
	if err := container.Provide(func(
		cfg *config.Config,
		service *core.CategorizationService,
		registry *llm.Registry,
		logger *zap.Logger,
	) *httpapi.Server {
		return httpapi.NewServer(cfg.ListenAddress(), service, registry, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
