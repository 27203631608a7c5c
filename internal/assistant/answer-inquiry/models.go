package answerinquiry

// KnowledgeDoc is one indexed knowledge-base document. Docs either carry
// free text (Body), a set of pricing plans, a set of policies, or any
// combination; empty sections are skipped when rendering.
type KnowledgeDoc struct {
	Topic    string            `json:"topic"`
	Title    string            `json:"title"`
	Body     string            `json:"body,omitempty"`
	Plans    []PricingPlan     `json:"plans,omitempty"`
	Policies map[string]string `json:"policies,omitempty"`
}

type PricingPlan struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

const NoAnswerResponse = "I couldn't find anything on that. Could you rephrase, or ask about our plans, pricing or policies?"
