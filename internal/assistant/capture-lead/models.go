// internal/assistant/capture-lead/models.go
package capturelead

// Responses produced by the capture flow. The wording is part of the
// conversational contract and is asserted by tests.
const (
	PromptName         = "That's great! 🚀 May I know your name?"
	PromptEmail        = "Thanks! Could you please share your email address?"
	PromptInvalidEmail = "❌ That doesn't look like a valid email address.\n📧 Please enter a valid email (example: name@example.com)."
	PromptPlatform     = "Awesome! Which platform do you create content for?"
	PromptConfirmation = "✅ Thanks! Your details have been recorded. Our team will contact you soon.\n\n😊 Is there anything else I can help you with?"
	PromptAlreadyNoted = "✅ Your interest has already been noted. Our team will reach out to you shortly.\n\n😊 Is there anything else I can help you with?"
)
