// internal/assistant/classify-intent/config.go
package classifyintent

type Config struct {
	SemanticThreshold    float64
	HighIntentConfidence float64
	InquiryConfidence    float64
	GreetingConfidence   float64
	FallbackConfidence   float64
}

func LoadConfig() *Config {
	return &Config{
		SemanticThreshold:    0.55,
		HighIntentConfidence: 0.93,
		InquiryConfidence:    0.85,
		GreetingConfidence:   0.90,
		FallbackConfidence:   0.40,
	}
}
