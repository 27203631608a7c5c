package classifyintent

import "autostream-assistant/internal/models"

// Source records which classification layer produced the result.
type Source string

const (
	SourceRule     Source = "rule"
	SourceSemantic Source = "semantic"
	SourceFallback Source = "fallback"
)

type Result struct {
	Intent     models.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
	Source     Source        `json:"source"`
}
