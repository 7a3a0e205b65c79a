package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/factory"
	"github.com/mikey/mail-triage/internal/llm"
	"github.com/mikey/mail-triage/internal/logging"
	"github.com/mikey/mail-triage/internal/mailtext"
	"github.com/mikey/mail-triage/internal/utils"
)

var (
	inputFile     = flag.String("file", "", "Input email file in RFC822 format (use stdin if not specified)")
	rulesOnly     = flag.Bool("rules-only", false, "Skip AI providers and use the rule-based classifier")
	showProviders = flag.Bool("providers", false, "Print provider status and exit")
	timeout       = flag.Duration("timeout", 60*time.Second, "Timeout for the AI request")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog       = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	registry := llm.NewRegistry(cfg.Providers())

	if *showProviders {
		printJSON(logger, registry.Status())
		return
	}

	var categorizer core.LLMCategorizer
	if !*rulesOnly {
		prompts := llm.NewPromptBuilder(utils.NewTextProcessor(logger), cfg.MaxBodySize())
		categorizer, err = factory.NewLLMFactory(registry, prompts, logger).CreateCategorizer()
		if err != nil {
			logger.Fatal("Failed to create AI categorizer", zap.Error(err))
		}
	}

	email, err := readEmail(*inputFile)
	if err != nil {
		logger.Fatal("Failed to read email", zap.Error(err))
	}

	service := core.NewCategorizationService(categorizer, core.NewRuleClassifier(logger), logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	printJSON(logger, service.CategorizeEmail(ctx, email))
}

// readEmail parses an RFC822 message from the given file, or stdin when path
// is empty.
func readEmail(path string) (*core.Email, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return mailtext.Parse(r)
}

func printJSON(logger *zap.Logger, v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("Failed to marshal output", zap.Error(err))
	}
	fmt.Println(string(out))
}
