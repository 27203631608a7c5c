// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Intent       IntentConfig       `mapstructure:"intent"`
	Knowledge    KnowledgeConfig    `mapstructure:"knowledge"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Integrations IntegrationConfig  `mapstructure:"integrations"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ConversationConfig holds the shell-level phrase sets.
type ConversationConfig struct {
	RestartPhrases []string `mapstructure:"restart_phrases"`
	ExitPhrases    []string `mapstructure:"exit_phrases"`
}

// IntentConfig carries the classifier tuning knobs. The confidences and the
// semantic threshold are deliberately configuration rather than constants;
// the defaults are the tuned production values.
type IntentConfig struct {
	RegistryPath        string  `mapstructure:"registry_path"`
	SemanticThreshold   float64 `mapstructure:"semantic_threshold"`
	HighIntentConf      float64 `mapstructure:"high_intent_confidence"`
	InquiryConf         float64 `mapstructure:"inquiry_confidence"`
	GreetingConf        float64 `mapstructure:"greeting_confidence"`
	FallbackConf        float64 `mapstructure:"fallback_confidence"`
	EmbeddingDimension  int     `mapstructure:"embedding_dimension"`
	EmbeddingServiceURL string  `mapstructure:"embedding_service_url"`
}

// KnowledgeConfig configures the inquiry answer provider.
type KnowledgeConfig struct {
	IndexName       string `mapstructure:"index_name"`
	MaxResults      int    `mapstructure:"max_results"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
	TimeoutMillis   int    `mapstructure:"timeout_ms"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IntegrationConfig holds settings for CRM and notification services.
type IntegrationConfig struct {
	CRM struct {
		BaseURL   string `mapstructure:"base_url"`
		AuthToken string `mapstructure:"auth_token"`
	} `mapstructure:"crm"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled    bool   `mapstructure:"enabled"`
			FromEmail  string `mapstructure:"from_email"`
			SalesEmail string `mapstructure:"sales_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled  bool   `mapstructure:"enabled"`
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
