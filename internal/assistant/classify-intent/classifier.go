package classifyintent

import (
	"context"
	"regexp"
	"strings"

	"autostream-assistant/internal/models"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Normalize lowercases, trims and strips punctuation. All keyword rules and
// the similarity index operate on normalized text only.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return nonWordPattern.ReplaceAllString(text, "")
}

// Keyword vocabularies, matched by substring containment on normalized text.
// Order matters for none of these slices individually, but the rule layers
// are checked strictly in priority order: high intent, inquiry, greeting.
var (
	buyWords = []string{
		"want", "buy", "purchase", "subscribe",
		"sign up", "signup", "register",
		"upgrade", "go for", "choose", "take",
	}

	planKeywords = []string{
		"basic", "basic plan",
		"pro", "pro plan",
		"premium", "premium plan",
	}

	inquiryPhrases = []string{
		"plan", "plans", "pricing", "price",
		"features", "details", "compare",
		"refund", "support", "information",
		"tell me about",
	}

	greetingPhrases = []string{
		"hi", "hii", "hello", "hey", "hey there",
		"yo", "whats up", "how are you",
		"good morning", "good evening",
	}
)

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// Classifier resolves a user turn to an intent. Cheap deterministic keyword
// rules run first; the embedding fallback only engages for phrasings the
// rules miss. High intent is checked before the broader inquiry and greeting
// rules so a buying signal is never shadowed by them.
type Classifier struct {
	config *Config
	index  *Index
	logger Logger
}

func NewClassifier(config *Config, index *Index, log Logger) *Classifier {
	return &Classifier{
		config: config,
		index:  index,
		logger: log,
	}
}

func (c *Classifier) Classify(ctx context.Context, userMessage string) Result {
	message := Normalize(userMessage)

	if containsAny(message, buyWords) && containsAny(message, planKeywords) {
		return Result{Intent: models.IntentHighIntent, Confidence: c.config.HighIntentConfidence, Source: SourceRule}
	}

	if containsAny(message, inquiryPhrases) {
		return Result{Intent: models.IntentInquiry, Confidence: c.config.InquiryConfidence, Source: SourceRule}
	}

	if containsAny(message, greetingPhrases) {
		return Result{Intent: models.IntentGreeting, Confidence: c.config.GreetingConfidence, Source: SourceRule}
	}

	if c.index != nil {
		intent, score, err := c.index.NearestIntent(ctx, message)
		if err != nil {
			c.logger.Warn("semantic lookup failed, using fallback intent", map[string]interface{}{
				"error": err.Error(),
			})
		} else if intent != models.IntentNone {
			return Result{Intent: intent, Confidence: score, Source: SourceSemantic}
		}
	}

	return Result{Intent: models.IntentInquiry, Confidence: c.config.FallbackConfidence, Source: SourceFallback}
}

// DetectPlan scans normalized text for a plan mention. The check order is
// fixed, "basic" before "pro", so mixed mentions resolve deterministically.
// Returns "" when no plan is mentioned.
func DetectPlan(userMessage string) string {
	message := Normalize(userMessage)

	switch {
	case strings.Contains(message, "basic"):
		return "Basic Plan"
	case strings.Contains(message, "pro"):
		return "Pro Plan"
	}
	return ""
}
