package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"atlas/pkg/errors"
)

type Config struct {
	App           AppConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	SMTP          SMTPConfig
	AI            AIConfig
	Embeddings    EmbeddingsConfig
	Agent         AgentConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"atlas"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	Database string `envconfig:"POSTGRES_DB" default:"atlas"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"25"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPConfig carries credentials for the outbound mailer.
// Sender and Password empty means email sending is unconfigured; the
// send_email tool reports that as a structured failure instead of crashing.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"465"`
	Sender   string `envconfig:"SENDER_EMAIL"`
	Password string `envconfig:"SENDER_PASSWORD"`
}

func (c SMTPConfig) Configured() bool {
	return c.Sender != "" && c.Password != ""
}

type AIConfig struct {
	GeminiKey       string `envconfig:"GEMINI_API_KEY"`
	DefaultProvider string `envconfig:"DEFAULT_AI_PROVIDER" default:"gemini"`
	DefaultModel    string `envconfig:"DEFAULT_AI_MODEL" default:"gemini-2.5-flash"`
}

type EmbeddingsConfig struct {
	Provider string        `envconfig:"EMBEDDINGS_PROVIDER" default:"openai"`
	APIKey   string        `envconfig:"OPENAI_API_KEY"`
	Model    string        `envconfig:"EMBEDDINGS_MODEL" default:"text-embedding-3-small"`
	Timeout  time.Duration `envconfig:"EMBEDDINGS_TIMEOUT" default:"30s"`
}

// AgentConfig holds runtime limits for agent executions
type AgentConfig struct {
	ExecutionTimeout time.Duration `envconfig:"AGENT_EXECUTION_TIMEOUT" default:"2m"`
	MaxTokens        int           `envconfig:"AGENT_MAX_TOKENS" default:"8192"`
	RequestsPerMin   int           `envconfig:"AGENT_REQUESTS_PER_MIN" default:"30"`
	EnableMemory     bool          `envconfig:"AGENT_ENABLE_MEMORY" default:"true"`
	QueryCacheTTL    time.Duration `envconfig:"AGENT_QUERY_CACHE_TTL" default:"30s"`
	MemorySweepEvery time.Duration `envconfig:"AGENT_MEMORY_SWEEP_EVERY" default:"1h"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
