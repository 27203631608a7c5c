// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_processed_total",
			Help: "Total number of conversation turns processed, by resolved intent",
		},
		[]string{"intent"},
	)

	SemanticFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_semantic_fallbacks_total",
			Help: "Turns where rule matching missed and the embedding fallback ran",
		},
		[]string{"outcome"},
	)

	LeadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_leads_captured_total",
			Help: "Total number of completed lead captures",
		},
		[]string{"result"},
	)

	InvalidEmails = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_invalid_emails_total",
			Help: "Email answers rejected during lead capture",
		},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_turn_duration_seconds",
			Help: "Duration of turn processing in seconds",
		},
		[]string{"intent"},
	)

	CaptureActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_capture_sessions_active",
			Help: "Number of lead capture flows currently in progress",
		},
	)
)
