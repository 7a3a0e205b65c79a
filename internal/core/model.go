package core

import (
	"time"
)

// Category is one of the fixed triage outcomes for an inbound email.
type Category string

const (
	CategoryInterested    Category = "Interested"
	CategoryMeetingBooked Category = "MeetingBooked"
	CategoryNotInterested Category = "NotInterested"
	CategorySpam          Category = "Spam"
	CategoryOutOfOffice   Category = "OutOfOffice"
)

// Categories lists every valid category in taxonomy order. The order is part
// of the contract: it drives prompt rendering, rule-based tie-breaking and
// the default category (the first entry).
var Categories = []Category{
	CategoryInterested,
	CategoryMeetingBooked,
	CategoryNotInterested,
	CategorySpam,
	CategoryOutOfOffice,
}

// ParseCategory maps a string onto the taxonomy. The second return value is
// false when the string is not a valid category name.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// DefaultCategory is the taxonomy's first entry, used whenever a category has
// to be substituted.
func DefaultCategory() Category {
	return Categories[0]
}

// ResultSource records which path produced a categorization.
type ResultSource string

const (
	SourceLLM   ResultSource = "llm"
	SourceRules ResultSource = "rules"
)

// Email represents the inbound message fields the categorizer looks at.
// Instances are owned by the caller and never mutated here.
type Email struct {
	From     string
	FromName string
	Subject  string
	Body     string
}

// ReplySuggestion is one draft reply for an email. Body is always non-empty;
// Subject is optional and left for the caller to derive when empty.
type ReplySuggestion struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// CategorizationResult is the outcome of triaging one email. It is always
// fully populated: Category is a taxonomy member, Reasoning is non-empty and
// Replies has at least one entry.
type CategorizationResult struct {
	Category      Category          `json:"category"`
	Reasoning     string            `json:"reasoning"`
	Replies       []ReplySuggestion `json:"replies"`
	Source        ResultSource      `json:"source"`
	Provider      string            `json:"provider,omitempty"`
	Model         string            `json:"model,omitempty"`
	ProcessingID  string            `json:"processing_id"`
	CategorizedAt time.Time         `json:"categorized_at"`
}
