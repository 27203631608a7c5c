// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LoadRegistry reads and validates an intent registry file. The file must
// satisfy the embedded JSON Schema; a malformed registry is a startup error,
// not something to limp past.
func LoadRegistry(path string) (*IntentRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	schemaLoader := gojsonschema.NewStringLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("registry schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("invalid intent registry %s: %s", path, strings.Join(msgs, "; "))
	}

	var reg IntentRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// DefaultRegistry returns the compiled-in intent example set, used when no
// registry file is configured. The phrases are the tuned production set.
func DefaultRegistry() *IntentRegistry {
	return &IntentRegistry{
		Version: "1",
		Intents: []IntentEntry{
			{
				Name: "greeting",
				Examples: []string{
					"hi",
					"hello",
					"hey there",
					"how are you",
					"anyone there",
					"good morning",
					"good evening",
				},
			},
			{
				Name: "inquiry",
				Examples: []string{
					"tell me about your plans",
					"what pricing do you have",
					"explain the pro plan",
					"compare basic and pro",
					"what features are included",
					"refund policy details",
					"customer support information",
				},
			},
			{
				Name: "high_intent",
				Examples: []string{
					"i want to buy the pro plan",
					"i want to subscribe",
					"ready to get started",
					"interested in premium plan",
					"how do i sign up",
					"i want to purchase this plan",
				},
			},
		},
	}
}
