package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReplyBody is the canned reply used whenever no better suggestion
// exists for a category.
const DefaultReplyBody = "Thank you for your email. I will get back to you shortly."

// categoryKeywords holds the keyword phrases matched (case-insensitively, as
// substrings) against subject+body. The lists are fixed; tests depend on
// their exact contents.
var categoryKeywords = map[Category][]string{
	CategoryInterested: {
		"interested", "tell me more", "sounds good", "learn more",
		"would like to", "interested in", "send me", "demo",
		"want to know", "pricing", "quote", "proposal",
	},
	CategoryMeetingBooked: {
		"calendar", "schedule", "meeting", "appointment", "book a",
		"booked", "meet", "let's meet", "calendar invite", "scheduled",
		"time to talk", "confirmed", "accepted invitation",
	},
	CategoryNotInterested: {
		"not interested", "no thanks", "unsubscribe", "opt out",
		"remove me", "stop contacting", "don't contact", "no longer",
		"not a fit", "not at this time", "decline", "pass",
	},
	CategorySpam: {
		"viagra", "pharmacy", "lottery", "winner", "prince",
		"inheritance", "bank transfer", "prize", "click here",
		"cryptocurrency", "investment opportunity", "bitcoin",
	},
	CategoryOutOfOffice: {
		"out of office", "vacation", "holiday", "away from my desk",
		"annual leave", "maternity leave", "paternity leave", "sabbatical",
		"will return", "automatic reply", "auto-reply", "autoreply",
	},
}

// replyTemplates provides canned reply variants per category. Spam gets
// no-reply variants since answering spam is never useful.
var replyTemplates = map[Category][]string{
	CategoryInterested: {
		"Thank you for your interest! I'd be happy to share more details. Would you be available for a quick call this week?",
		"Great to hear from you! I'll send over more information shortly. Let me know if you have any specific questions in the meantime.",
		"Thanks for reaching out! I'd love to walk you through what we offer. What time works best for you?",
	},
	CategoryMeetingBooked: {
		"Perfect, I've noted the meeting in my calendar. Looking forward to speaking with you!",
		"Great, the meeting is confirmed on my side. Talk soon!",
		"Thanks for scheduling! I'll send over an agenda before we meet.",
	},
	CategoryNotInterested: {
		"Thank you for letting me know. I'll make sure you don't receive further messages from us.",
		"Understood, thanks for the response. If anything changes down the line, feel free to reach out.",
		"No problem at all, I appreciate you taking the time to reply. All the best!",
	},
	CategorySpam: {
		"This message appears to be unsolicited. No reply is recommended.",
		"Flagged as spam. Do not engage with the sender.",
		"This looks like a scam or bulk mail. Best left unanswered.",
	},
	CategoryOutOfOffice: {
		"Thanks for the heads-up! I'll follow up once you're back.",
		"Noted, enjoy your time away. I'll reach out again after your return date.",
		"Understood. I'll circle back when you're back in the office.",
	},
}

// RuleClassifier is the deterministic keyword-matching fallback. Unlike the
// AI path it cannot fail.
type RuleClassifier struct {
	logger *zap.Logger
}

// NewRuleClassifier creates a new rule-based classifier.
func NewRuleClassifier(logger *zap.Logger) *RuleClassifier {
	return &RuleClassifier{logger: logger}
}

// Classify categorizes an email by counting keyword matches per category.
// The category with the strictly greatest count wins; ties go to the earlier
// category in taxonomy order. Zero matches everywhere yields the default
// category.
func (c *RuleClassifier) Classify(email *Email) *CategorizationResult {
	text := strings.ToLower(email.Subject + " " + email.Body)

	best := DefaultCategory()
	bestCount := -1
	for _, category := range Categories {
		count := 0
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				count++
			}
		}
		if count > bestCount {
			best = category
			bestCount = count
		}
	}

	if c.logger != nil {
		c.logger.Debug("Rule-based classification complete",
			zap.String("category", string(best)),
			zap.Int("matched_keywords", bestCount))
	}

	return &CategorizationResult{
		Category:      best,
		Reasoning:     fmt.Sprintf("Rule-based categorization (matched %d keywords)", bestCount),
		Replies:       repliesFor(best),
		Source:        SourceRules,
		ProcessingID:  uuid.NewString(),
		CategorizedAt: time.Now(),
	}
}

// repliesFor returns the canned template variants for a category, or the
// single generic default when no templates exist.
func repliesFor(category Category) []ReplySuggestion {
	bodies, ok := replyTemplates[category]
	if !ok || len(bodies) == 0 {
		return []ReplySuggestion{{Body: DefaultReplyBody}}
	}
	replies := make([]ReplySuggestion, 0, len(bodies))
	for _, body := range bodies {
		replies = append(replies, ReplySuggestion{Body: body})
	}
	return replies
}
