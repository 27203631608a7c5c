// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DB_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from the working directory upward; the assistant is
// started from the repo root in development and from / in containers.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig falls back to well-known env vars for secrets that are
// usually not committed to config.yaml.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Integrations.CRM.AuthToken == "" {
		if val := os.Getenv("CRM_AUTH_TOKEN"); val != "" {
			cfg.Integrations.CRM.AuthToken = val
		}
	}
	if cfg.Intent.EmbeddingServiceURL == "" {
		if val := os.Getenv("EMBEDDING_SERVICE_URL"); val != "" {
			cfg.Intent.EmbeddingServiceURL = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "autostream-assistant"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if len(cfg.Conversation.RestartPhrases) == 0 {
		cfg.Conversation.RestartPhrases = []string{
			"restart",
			"restart conversation",
			"start over",
			"reset",
			"new conversation",
		}
	}
	if len(cfg.Conversation.ExitPhrases) == 0 {
		cfg.Conversation.ExitPhrases = []string{"exit", "quit"}
	}

	// Classifier defaults: tuned values carried over from production
	if cfg.Intent.SemanticThreshold == 0 {
		cfg.Intent.SemanticThreshold = 0.55
	}
	if cfg.Intent.HighIntentConf == 0 {
		cfg.Intent.HighIntentConf = 0.93
	}
	if cfg.Intent.InquiryConf == 0 {
		cfg.Intent.InquiryConf = 0.85
	}
	if cfg.Intent.GreetingConf == 0 {
		cfg.Intent.GreetingConf = 0.90
	}
	if cfg.Intent.FallbackConf == 0 {
		cfg.Intent.FallbackConf = 0.40
	}
	if cfg.Intent.EmbeddingDimension == 0 {
		cfg.Intent.EmbeddingDimension = 256
	}

	if cfg.Knowledge.IndexName == "" {
		cfg.Knowledge.IndexName = "knowledge_base"
	}
	if cfg.Knowledge.MaxResults == 0 {
		cfg.Knowledge.MaxResults = 3
	}
	if cfg.Knowledge.CacheTTLSeconds == 0 {
		cfg.Knowledge.CacheTTLSeconds = 300
	}
	if cfg.Knowledge.TimeoutMillis == 0 {
		cfg.Knowledge.TimeoutMillis = 5000
	}

	if cfg.Database.Postgres.Host == "" {
		cfg.Database.Postgres.Host = "localhost"
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.Database == "" {
		cfg.Database.Postgres.Database = "autostream"
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 {
		cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9102"
	}
	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Intent.SemanticThreshold < 0 || cfg.Intent.SemanticThreshold > 1 {
		return fmt.Errorf("intent.semantic_threshold must be in [0,1], got %f", cfg.Intent.SemanticThreshold)
	}
	for name, c := range map[string]float64{
		"high_intent_confidence": cfg.Intent.HighIntentConf,
		"inquiry_confidence":     cfg.Intent.InquiryConf,
		"greeting_confidence":    cfg.Intent.GreetingConf,
		"fallback_confidence":    cfg.Intent.FallbackConf,
	} {
		if c <= 0 || c > 1 {
			return fmt.Errorf("intent.%s must be in (0,1], got %f", name, c)
		}
	}
	if cfg.Intent.EmbeddingDimension <= 0 {
		return fmt.Errorf("intent.embedding_dimension must be positive, got %d", cfg.Intent.EmbeddingDimension)
	}
	if cfg.Knowledge.MaxResults <= 0 {
		return fmt.Errorf("knowledge.max_results must be positive, got %d", cfg.Knowledge.MaxResults)
	}
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	return nil
}
