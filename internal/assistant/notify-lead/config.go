// internal/assistant/notify-lead/config.go
package notifylead

import "time"

type Config struct {
	AWSRegion    string
	EmailEnabled bool
	FromEmail    string
	SalesEmail   string
	SNSEnabled   bool
	TopicARN     string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion: "us-east-1",
		Timeout:   15 * time.Second,
	}
}
