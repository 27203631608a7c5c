// internal/assistant/answer-inquiry/config.go
package answerinquiry

import "time"

type Config struct {
	IndexName  string
	MaxResults int
	CacheTTL   time.Duration
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName:  "knowledge_base",
		MaxResults: 3,
		CacheTTL:   5 * time.Minute,
		Timeout:    10 * time.Second,
	}
}
