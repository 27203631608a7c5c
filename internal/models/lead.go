// internal/models/lead.go
package models

import (
	"strings"
	"time"
)

// DefaultInterestedPlan is stored when a lead completes capture without ever
// mentioning a specific plan.
const DefaultInterestedPlan = "Not specified"

// LeadRecord is the persisted lead entity, keyed by normalized email in the
// ledger. Never deleted by this system.
type LeadRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Platform        string    `json:"platform"`
	InterestedPlan  string    `json:"interested_plan"`
	CreatedAt       time.Time `json:"created_at"`
	LastContactedAt time.Time `json:"last_contacted_at"`
	ReinterestCount int       `json:"reinterest_count"`
}

// NormalizeEmail canonicalizes an email for use as a ledger key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
