package llm

import (
	"fmt"
	"strings"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

// promptFormat is the single instruction block sent to every backend. The
// three response key names (category, reasoning, replies) are a wire contract
// shared with the response parser; changing them requires updating both.
const promptFormat = `You are an email triage assistant. Categorize the following email into exactly one of these categories: %s.

Email:
From: %s
Subject: %s
Body:
%s

Respond with a single JSON object and nothing else, containing exactly these keys:
- "category": one of the category names listed above
- "reasoning": string (brief explanation of why the email fits the category)
- "replies": array of at least one suggested reply, each a string`

// PromptBuilder renders emails into categorization prompts.
type PromptBuilder struct {
	textProcessor *utils.TextProcessor
	maxBodySize   int
}

// NewPromptBuilder creates a prompt builder. Bodies longer than maxBodySize
// bytes are truncated before rendering; maxBodySize <= 0 disables truncation.
func NewPromptBuilder(textProcessor *utils.TextProcessor, maxBodySize int) *PromptBuilder {
	return &PromptBuilder{
		textProcessor: textProcessor,
		maxBodySize:   maxBodySize,
	}
}

// Build renders the email into the instruction block. Empty fields render as
// empty strings.
func (b *PromptBuilder) Build(email *core.Email) string {
	from := email.From
	if email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", email.FromName, email.From)
	}

	body := b.textProcessor.ProcessText(email.Body, b.maxBodySize)

	return fmt.Sprintf(promptFormat, categoryList(), from, email.Subject, body)
}

// categoryList joins the taxonomy comma-separated in taxonomy order.
func categoryList() string {
	names := make([]string, 0, len(core.Categories))
	for _, c := range core.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
