package classifyintent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Hello There  ", "hello there"},
		{"strips punctuation", "I want the Pro plan!", "i want the pro plan"},
		{"keeps digits", "plan 2 details?", "plan 2 details"},
		{"empty input", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestClassify_KeywordRules(t *testing.T) {
	classifier := NewClassifier(LoadConfig(), nil, logger.NewTestLogger(t))

	tests := []struct {
		name           string
		input          string
		wantIntent     models.Intent
		wantConfidence float64
	}{
		{"buy word plus plan token", "I want to buy the Pro plan!", models.IntentHighIntent, 0.93},
		{"reversed order", "the premium plan is what I choose", models.IntentHighIntent, 0.93},
		{"mixed case with punctuation", "SIGN UP for BASIC, please!!!", models.IntentHighIntent, 0.93},
		{"subscribe without a plan token is not high intent", "i want to subscribe", models.IntentInquiry, 0.40},
		{"pricing inquiry", "what pricing do you have", models.IntentInquiry, 0.85},
		{"plan word without buy word", "explain the pro plan", models.IntentInquiry, 0.85},
		{"refund inquiry", "refund policy?", models.IntentInquiry, 0.85},
		{"tell me about", "tell me about your service", models.IntentInquiry, 0.85},
		{"greeting", "good morning", models.IntentGreeting, 0.90},
		{"casual greeting", "hey there!", models.IntentGreeting, 0.90},
		{"double i greeting", "hii", models.IntentGreeting, 0.90},
		{"no rule matches falls back", "the weather is lovely today", models.IntentInquiry, 0.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(context.Background(), tt.input)
			assert.Equal(t, tt.wantIntent, result.Intent)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
		})
	}
}

func TestClassify_HighIntentBeatsInquiry(t *testing.T) {
	classifier := NewClassifier(LoadConfig(), nil, logger.NewTestLogger(t))

	// "plan" is an inquiry keyword but the buy+plan conjunction wins.
	result := classifier.Classify(context.Background(), "i want the pro plan")
	assert.Equal(t, models.IntentHighIntent, result.Intent)
	assert.InDelta(t, 0.93, result.Confidence, 1e-9)
	assert.Equal(t, SourceRule, result.Source)
}

func TestClassify_InquiryBeatsGreeting(t *testing.T) {
	classifier := NewClassifier(LoadConfig(), nil, logger.NewTestLogger(t))

	result := classifier.Classify(context.Background(), "hello, what are your prices")
	assert.Equal(t, models.IntentInquiry, result.Intent)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestClassify_FallbackWithoutIndex(t *testing.T) {
	classifier := NewClassifier(LoadConfig(), nil, logger.NewTestLogger(t))

	result := classifier.Classify(context.Background(), "xyzzy")
	assert.Equal(t, models.IntentInquiry, result.Intent)
	assert.InDelta(t, 0.40, result.Confidence, 1e-9)
	assert.Equal(t, SourceFallback, result.Source)
}

func TestDetectPlan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"basic", "i'll take basic", "Basic Plan"},
		{"pro", "I want the Pro plan", "Pro Plan"},
		{"basic wins over pro", "basic or pro?", "Basic Plan"},
		{"premium maps to no plan", "premium sounds good", ""},
		{"no plan mentioned", "hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlan(tt.input))
		})
	}
}
