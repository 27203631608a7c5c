// internal/models/conversation.go
package models

// Intent is one of the fixed dialogue intents the classifier can produce.
type Intent string

const (
	IntentNone       Intent = ""
	IntentGreeting   Intent = "greeting"
	IntentInquiry    Intent = "inquiry"
	IntentHighIntent Intent = "high_intent"
)

// LeadStep tracks the user's position in the lead-capture form.
type LeadStep string

const (
	LeadStepEmpty    LeadStep = ""
	LeadStepName     LeadStep = "name"
	LeadStepEmail    LeadStep = "email"
	LeadStepPlatform LeadStep = "platform"
	LeadStepDone     LeadStep = "done"
)

// ConversationState is the mutable record carried across turns of a single
// conversation. One instance per active conversation; not persisted across
// process restarts.
//
// Invariants:
//   - while LeadStep is neither empty nor done, intent re-classification is
//     suppressed and every turn is consumed by the capture form
//   - LeadCaptured == true implies LeadStep == done
type ConversationState struct {
	UserInput string

	Intent           Intent
	IntentConfidence float64

	LeadStep LeadStep
	Name     string
	Email    string
	Platform string

	SelectedPlan string

	Response     string
	LeadCaptured bool
}

// NewConversationState returns a fresh state with all fields at defaults.
func NewConversationState() *ConversationState {
	return &ConversationState{}
}

// Reset restores all fields to their defaults, as triggered by a restart
// command from the shell.
func (s *ConversationState) Reset() {
	*s = ConversationState{}
}

// CaptureInProgress reports whether the lead-capture form currently owns the
// conversation (gating rule: classification is skipped entirely).
func (s *ConversationState) CaptureInProgress() bool {
	return s.LeadStep != LeadStepEmpty && s.LeadStep != LeadStepDone
}
