// internal/assistant/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"time"

	classifyintent "autostream-assistant/internal/assistant/classify-intent"
	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/common/metrics"
	"autostream-assistant/internal/models"
)

const GreetingResponse = "Hello! 😊 How can I help you with AutoStream today?"

type IntentClassifier interface {
	Classify(ctx context.Context, userMessage string) classifyintent.Result
}

type AnswerProvider interface {
	Answer(ctx context.Context, query string) (string, error)
}

type CaptureHandler interface {
	HandleTurn(ctx context.Context, state *models.ConversationState) error
}

// Dispatcher routes one user turn: while a lead capture is in progress the
// turn goes straight into the capture flow and the classifier never runs,
// otherwise the turn is classified and routed by intent.
type Dispatcher struct {
	classifier IntentClassifier
	answers    AnswerProvider
	capture    CaptureHandler
	logger     logger.Logger
}

func NewDispatcher(classifier IntentClassifier, answers AnswerProvider, capture CaptureHandler, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		classifier: classifier,
		answers:    answers,
		capture:    capture,
		logger:     log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

// HandleTurn fully processes one turn, mutating state and setting
// state.Response before returning.
func (d *Dispatcher) HandleTurn(ctx context.Context, state *models.ConversationState, input string) error {
	start := time.Now()
	state.UserInput = input

	// Gating rule: an in-progress capture consumes every turn as a literal
	// answer to the current form question, even text that looks like a new
	// inquiry or greeting.
	if state.CaptureInProgress() {
		err := d.capture.HandleTurn(ctx, state)
		metrics.TurnsProcessed.WithLabelValues("capture").Inc()
		metrics.TurnDuration.WithLabelValues("capture").Observe(time.Since(start).Seconds())
		return err
	}

	result := d.classifier.Classify(ctx, input)
	state.Intent = result.Intent
	state.IntentConfidence = result.Confidence

	switch result.Source {
	case classifyintent.SourceSemantic:
		metrics.SemanticFallbacks.WithLabelValues("matched").Inc()
	case classifyintent.SourceFallback:
		metrics.SemanticFallbacks.WithLabelValues("default").Inc()
	}

	if plan := classifyintent.DetectPlan(input); plan != "" {
		state.SelectedPlan = plan
	}

	d.logger.Info("turn classified", map[string]interface{}{
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"source":     string(result.Source),
		"plan":       state.SelectedPlan,
	})

	var err error
	switch result.Intent {
	case models.IntentGreeting:
		state.Response = GreetingResponse
	case models.IntentHighIntent:
		err = d.capture.HandleTurn(ctx, state)
	default:
		state.Response, err = d.answers.Answer(ctx, input)
	}

	metrics.TurnsProcessed.WithLabelValues(string(result.Intent)).Inc()
	metrics.TurnDuration.WithLabelValues(string(result.Intent)).Observe(time.Since(start).Seconds())

	return err
}
