package llm

import (
	"encoding/json"

	"github.com/mikey/mail-triage/internal/core"
)

const (
	defaultReasoning      = "AI categorization"
	parseFailureReasoning = "Failed to parse AI response, using default"
)

// modelResponse mirrors the JSON object the prompt instructs backends to
// return. Replies is kept raw so a malformed replies value degrades alone
// instead of failing the whole decode.
type modelResponse struct {
	Category  string          `json:"category"`
	Reasoning string          `json:"reasoning"`
	Replies   json.RawMessage `json:"replies"`
}

// Parse extracts a CategorizationResult from raw model output. It never
// fails: unusable input degrades field by field to defaults. A missing or
// invalid category is silently corrected to the taxonomy's first entry.
func Parse(raw string) *core.CategorizationResult {
	result := &core.CategorizationResult{
		Category:  core.DefaultCategory(),
		Reasoning: defaultReasoning,
		Replies:   []core.ReplySuggestion{{Body: core.DefaultReplyBody}},
		Source:    core.SourceLLM,
	}

	obj, ok := extractObject(raw)
	if !ok {
		result.Reasoning = parseFailureReasoning
		return result
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(obj), &resp); err != nil {
		result.Reasoning = parseFailureReasoning
		return result
	}

	if category, ok := core.ParseCategory(resp.Category); ok {
		result.Category = category
	}
	if resp.Reasoning != "" {
		result.Reasoning = resp.Reasoning
	}
	if replies := parseReplies(resp.Replies); len(replies) > 0 {
		result.Replies = replies
	}

	return result
}

// parseReplies decodes the replies value leniently, dropping entries with
// empty bodies. A missing, non-array or empty value yields nil so the caller
// keeps the default reply.
func parseReplies(raw json.RawMessage) []core.ReplySuggestion {
	if len(raw) == 0 {
		return nil
	}
	var bodies []string
	if err := json.Unmarshal(raw, &bodies); err != nil {
		return nil
	}
	replies := make([]core.ReplySuggestion, 0, len(bodies))
	for _, body := range bodies {
		if body == "" {
			continue
		}
		replies = append(replies, core.ReplySuggestion{Body: body})
	}
	return replies
}

// extractObject returns the first balanced {...} span in s. It tracks brace
// depth character by character and skips braces inside JSON string values,
// so nested objects in reasoning text do not truncate the span.
func extractObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
