// pkg/registry/schema.go
package registry

// IntentRegistry is the on-disk catalogue of intents and their canonical
// example phrases. Immutable after load.
type IntentRegistry struct {
	Version     string        `json:"version"`
	LastUpdated string        `json:"lastUpdated"`
	Intents     []IntentEntry `json:"intents"`
}

// IntentEntry declares one intent with its ordered canonical phrases. Order
// matters: the similarity index resolves ties by the earliest-encountered
// maximum, iterating intents then examples in declared order.
type IntentEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples"`
}

// registrySchema is the JSON Schema every loaded registry file must satisfy.
const registrySchema = `{
	"type": "object",
	"required": ["version", "intents"],
	"properties": {
		"version": {"type": "string"},
		"lastUpdated": {"type": "string"},
		"intents": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "examples"],
				"properties": {
					"name": {
						"type": "string",
						"enum": ["greeting", "inquiry", "high_intent"]
					},
					"description": {"type": "string"},
					"examples": {
						"type": "array",
						"minItems": 1,
						"items": {"type": "string", "minLength": 1}
					}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`
