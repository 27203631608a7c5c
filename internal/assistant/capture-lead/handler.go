package capturelead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"autostream-assistant/internal/common/metrics"
	"autostream-assistant/internal/models"
)

// LeadLedger is the persistence contract for captured leads, keyed by
// normalized email. Last write wins per email.
type LeadLedger interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, record *models.LeadRecord) error
	Update(ctx context.Context, email, newPlan string) (*models.LeadRecord, error)
}

// Notifier pushes a newly captured lead to downstream systems. Fire and
// forget: failures are logged and never gate the capture itself.
type Notifier interface {
	Notify(ctx context.Context, record *models.LeadRecord)
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Handler drives the lead-capture form: name, then email, then platform.
// Once entered, the form owns every turn until it reaches done; invalid
// email is the only rejected input and simply re-asks, with no retry limit.
type Handler struct {
	ledger   LeadLedger
	notifier Notifier
	logger   Logger
}

func NewHandler(ledger LeadLedger, notifier Notifier, log Logger) *Handler {
	return &Handler{
		ledger:   ledger,
		notifier: notifier,
		logger:   log,
	}
}

// HandleTurn advances the capture flow by one turn, mutating state in place
// and setting state.Response. Called both to open the flow (empty LeadStep,
// on a high-intent turn) and to consume answers to the current question.
func (h *Handler) HandleTurn(ctx context.Context, state *models.ConversationState) error {
	if state.LeadCaptured {
		state.Response = PromptAlreadyNoted
		return nil
	}

	switch state.LeadStep {
	case models.LeadStepEmpty:
		state.LeadStep = models.LeadStepName
		state.Response = PromptName
		metrics.CaptureActive.Inc()
		return nil

	case models.LeadStepName:
		state.Name = strings.TrimSpace(state.UserInput)
		state.LeadStep = models.LeadStepEmail
		state.Response = PromptEmail
		return nil

	case models.LeadStepEmail:
		email := strings.TrimSpace(state.UserInput)
		if !govalidator.IsEmail(email) {
			metrics.InvalidEmails.Inc()
			state.Response = PromptInvalidEmail
			return nil
		}
		state.Email = email
		state.LeadStep = models.LeadStepPlatform
		state.Response = PromptPlatform
		return nil

	case models.LeadStepPlatform:
		state.Platform = strings.TrimSpace(state.UserInput)
		if err := h.finalize(ctx, state); err != nil {
			metrics.LeadsCaptured.WithLabelValues("error").Inc()
			return err
		}
		state.LeadStep = models.LeadStepDone
		state.LeadCaptured = true
		state.Response = PromptConfirmation
		metrics.LeadsCaptured.WithLabelValues("success").Inc()
		metrics.CaptureActive.Dec()
		return nil

	case models.LeadStepDone:
		state.Response = PromptAlreadyNoted
		return nil
	}

	return fmt.Errorf("unknown lead step %q", state.LeadStep)
}

// finalize persists the collected fields. A repeat capture for a known email
// refreshes the existing record instead of creating a duplicate; only brand
// new leads trigger the outbound notifier.
func (h *Handler) finalize(ctx context.Context, state *models.ConversationState) error {
	email := models.NormalizeEmail(state.Email)

	exists, err := h.ledger.Exists(ctx, email)
	if err != nil {
		return fmt.Errorf("lead lookup: %w", err)
	}

	if exists {
		record, err := h.ledger.Update(ctx, email, state.SelectedPlan)
		if err != nil {
			return fmt.Errorf("lead update: %w", err)
		}
		h.logger.Info("existing lead refreshed", map[string]interface{}{
			"email":           email,
			"reinterestCount": record.ReinterestCount,
		})
		return nil
	}

	plan := state.SelectedPlan
	if plan == "" {
		plan = models.DefaultInterestedPlan
	}

	now := time.Now().UTC()
	record := &models.LeadRecord{
		ID:              uuid.New().String(),
		Name:            state.Name,
		Email:           email,
		Platform:        state.Platform,
		InterestedPlan:  plan,
		CreatedAt:       now,
		LastContactedAt: now,
	}

	if err := h.ledger.Create(ctx, record); err != nil {
		return fmt.Errorf("lead create: %w", err)
	}

	h.logger.Info("new lead captured", map[string]interface{}{
		"email":    email,
		"platform": record.Platform,
		"plan":     record.InterestedPlan,
	})

	if h.notifier != nil {
		h.notifier.Notify(ctx, record)
	}

	return nil
}
