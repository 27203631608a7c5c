// internal/assistant/dispatch/dispatcher_test.go
package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classifyintent "autostream-assistant/internal/assistant/classify-intent"
	capturelead "autostream-assistant/internal/assistant/capture-lead"
	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/models"
)

type fakeAnswers struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAnswers) Answer(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.answer, f.err
}

type recordingLedger struct {
	records map[string]*models.LeadRecord
}

func (r *recordingLedger) Exists(_ context.Context, email string) (bool, error) {
	_, ok := r.records[email]
	return ok, nil
}

func (r *recordingLedger) Create(_ context.Context, record *models.LeadRecord) error {
	r.records[record.Email] = record
	return nil
}

func (r *recordingLedger) Update(_ context.Context, email, newPlan string) (*models.LeadRecord, error) {
	record := r.records[email]
	record.ReinterestCount++
	if newPlan != "" {
		record.InterestedPlan = newPlan
	}
	return record, nil
}

func newTestDispatcher(t *testing.T, answers *fakeAnswers) (*Dispatcher, *recordingLedger) {
	t.Helper()
	log := logger.NewTestLogger(t)
	ledger := &recordingLedger{records: map[string]*models.LeadRecord{}}
	classifier := classifyintent.NewClassifier(classifyintent.LoadConfig(), nil, log)
	capture := capturelead.NewHandler(ledger, nil, log)
	return NewDispatcher(classifier, answers, capture, log), ledger
}

func TestHandleTurn_GreetingIntent(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeAnswers{})

	state := models.NewConversationState()
	require.NoError(t, d.HandleTurn(context.Background(), state, "good morning"))

	assert.Equal(t, models.IntentGreeting, state.Intent)
	assert.InDelta(t, 0.90, state.IntentConfidence, 1e-9)
	assert.Equal(t, GreetingResponse, state.Response)
}

func TestHandleTurn_InquiryRoutesToAnswerProvider(t *testing.T) {
	answers := &fakeAnswers{answer: "📋 Pricing Plans: ..."}
	d, _ := newTestDispatcher(t, answers)

	state := models.NewConversationState()
	require.NoError(t, d.HandleTurn(context.Background(), state, "what pricing do you have"))

	assert.Equal(t, models.IntentInquiry, state.Intent)
	assert.Equal(t, "📋 Pricing Plans: ...", state.Response)
	assert.Equal(t, 1, answers.calls)
}

func TestHandleTurn_AnswerErrorPropagates(t *testing.T) {
	answers := &fakeAnswers{err: errors.New("search backend down")}
	d, _ := newTestDispatcher(t, answers)

	state := models.NewConversationState()
	err := d.HandleTurn(context.Background(), state, "refund policy details")
	require.Error(t, err)
}

func TestHandleTurn_PlanDetectionSetsSelectedPlan(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeAnswers{answer: "ok"})

	state := models.NewConversationState()
	require.NoError(t, d.HandleTurn(context.Background(), state, "I want the pro plan"))
	assert.Equal(t, "Pro Plan", state.SelectedPlan)

	// A later turn without a plan mention keeps the previous selection.
	state.LeadStep = models.LeadStepEmpty
	state.LeadCaptured = false
	require.NoError(t, d.HandleTurn(context.Background(), state, "hello"))
	assert.Equal(t, "Pro Plan", state.SelectedPlan)
}

func TestHandleTurn_GatingSkipsClassifier(t *testing.T) {
	answers := &fakeAnswers{answer: "should not be used"}
	d, _ := newTestDispatcher(t, answers)

	state := models.NewConversationState()
	require.NoError(t, d.HandleTurn(context.Background(), state, "i want the basic plan"))
	require.Equal(t, models.LeadStepName, state.LeadStep)
	priorIntent := state.Intent

	// Inquiry-looking text mid-form is consumed as the name answer.
	require.NoError(t, d.HandleTurn(context.Background(), state, "pricing"))
	assert.Equal(t, "pricing", state.Name)
	assert.Equal(t, models.LeadStepEmail, state.LeadStep)
	assert.Equal(t, priorIntent, state.Intent)
	assert.Zero(t, answers.calls)
}

func TestHandleTurn_EndToEndCapture(t *testing.T) {
	d, ledger := newTestDispatcher(t, &fakeAnswers{})

	state := models.NewConversationState()
	turns := []struct {
		input        string
		wantResponse string
	}{
		{"I want the pro plan", capturelead.PromptName},
		{"Jane", capturelead.PromptEmail},
		{"jane@x.com", capturelead.PromptPlatform},
		{"YouTube", capturelead.PromptConfirmation},
	}

	for _, turn := range turns {
		require.NoError(t, d.HandleTurn(context.Background(), state, turn.input))
		assert.Equal(t, turn.wantResponse, state.Response, "input %q", turn.input)
	}

	assert.True(t, state.LeadCaptured)
	assert.Equal(t, "Pro Plan", state.SelectedPlan)

	record := ledger.records["jane@x.com"]
	require.NotNil(t, record)
	assert.Equal(t, "Jane", record.Name)
	assert.Equal(t, "YouTube", record.Platform)
	assert.Equal(t, "Pro Plan", record.InterestedPlan)
}

func TestHandleTurn_AfterCaptureHighIntentAcknowledged(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeAnswers{})

	state := models.NewConversationState()
	for _, input := range []string{"I want the pro plan", "Jane", "jane@x.com", "YouTube"} {
		require.NoError(t, d.HandleTurn(context.Background(), state, input))
	}
	require.True(t, state.LeadCaptured)

	require.NoError(t, d.HandleTurn(context.Background(), state, "i want to buy premium plan"))
	assert.Equal(t, capturelead.PromptAlreadyNoted, state.Response)
}

func TestHandleTurn_AfterCaptureInquiryStillAnswered(t *testing.T) {
	answers := &fakeAnswers{answer: "refund answer"}
	d, _ := newTestDispatcher(t, answers)

	state := models.NewConversationState()
	for _, input := range []string{"I want the pro plan", "Jane", "jane@x.com", "YouTube"} {
		require.NoError(t, d.HandleTurn(context.Background(), state, input))
	}

	require.NoError(t, d.HandleTurn(context.Background(), state, "refund policy details"))
	assert.Equal(t, "refund answer", state.Response)
}

func TestHandleTurn_RestartClearsState(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeAnswers{answer: "ok"})

	state := models.NewConversationState()
	require.NoError(t, d.HandleTurn(context.Background(), state, "I want the pro plan"))
	require.Equal(t, models.LeadStepName, state.LeadStep)

	state.Reset()
	assert.False(t, state.CaptureInProgress())
	assert.Empty(t, state.SelectedPlan)

	require.NoError(t, d.HandleTurn(context.Background(), state, "good morning"))
	assert.Equal(t, GreetingResponse, state.Response)
}
