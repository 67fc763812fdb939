package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all website configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"WEBSITE_PORT" envDefault:"4002"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	Subscriptions SubscriptionsConfig
	Database      DatabaseConfig
	Email         EmailConfig
	RateLimit     RateLimitConfig
	Otel          OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerAddress, c.ServerPort)
}

// IsProduction reports whether the site runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SubscriptionsConfig controls recording of SMS opt-ins.
// When disabled the opt-in widget confirms without storing anything.
type SubscriptionsConfig struct {
	Enabled bool `env:"SUBSCRIPTIONS_ENABLED" envDefault:"false"`

	// WebhookToken must match the X-Webhook-Token header on inbound SMS webhooks.
	// Empty disables the check.
	WebhookToken string `env:"SMS_WEBHOOK_TOKEN" envDefault:""`

	// RetentionSchedule is a six-field cron expression (seconds first)
	RetentionSchedule string `env:"RETENTION_SCHEDULE" envDefault:"0 0 3 * * *"`

	// RetentionOptedOutDays is how long opted-out numbers are kept
	RetentionOptedOutDays int `env:"RETENTION_OPTED_OUT_DAYS" envDefault:"30"`
}

// RetentionWindow returns the opted-out retention period as a Duration
func (s *SubscriptionsConfig) RetentionWindow() time.Duration {
	return time.Duration(s.RetentionOptedOutDays) * 24 * time.Hour
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"civiq"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"civiq"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// EmailConfig holds ops notification email settings
type EmailConfig struct {
	// Enabled determines if email sending is enabled
	Enabled bool `env:"EMAIL_ENABLED" envDefault:"false"`
	// MailgunDomain is the Mailgun domain
	MailgunDomain string `env:"MAILGUN_DOMAIN" envDefault:""`
	// MailgunAPIKey is the Mailgun API key
	MailgunAPIKey string `env:"MAILGUN_API_KEY" envDefault:""`
	// FromEmail is the default from email address
	FromEmail string `env:"EMAIL_FROM_ADDRESS" envDefault:"noreply@civiq.ai"`
	// FromName is the default from name
	FromName string `env:"EMAIL_FROM_NAME" envDefault:"Civiq"`
	// NotifyEmail receives a message for every new SMS subscription
	NotifyEmail string `env:"NOTIFY_EMAIL" envDefault:""`
	// SendTimeout bounds a single Mailgun call
	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"30s"`
	// MaxRetries is the maximum number of send attempts per job
	MaxRetries int `env:"EMAIL_MAX_RETRIES" envDefault:"3"`
	// RetryDelaySec is the base delay in seconds for retries
	RetryDelaySec int `env:"EMAIL_RETRY_DELAY_SEC" envDefault:"60"`
	// WorkerIntervalMs is the queue polling interval in milliseconds
	WorkerIntervalMs int `env:"EMAIL_WORKER_INTERVAL_MS" envDefault:"5000"`
	// WorkerBatchSize is the number of jobs claimed per poll
	WorkerBatchSize int `env:"EMAIL_WORKER_BATCH_SIZE" envDefault:"10"`
}

// WorkerInterval returns the worker interval as a Duration
func (e *EmailConfig) WorkerInterval() time.Duration {
	return time.Duration(e.WorkerIntervalMs) * time.Millisecond
}

// IsConfigured returns true if Mailgun is configured
func (e *EmailConfig) IsConfigured() bool {
	return e.MailgunDomain != "" && e.MailgunAPIKey != ""
}

// RateLimitConfig bounds opt-in submissions per client IP
type RateLimitConfig struct {
	OptInPerMinute int `env:"OPTIN_RATE_PER_MINUTE" envDefault:"10"`
	OptInBurst     int `env:"OPTIN_RATE_BURST" envDefault:"5"`
}

// OtelConfig holds OpenTelemetry configuration.
// Tracing is disabled when ExporterEndpoint is empty.
type OtelConfig struct {
	ExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ServiceName      string  `env:"OTEL_SERVICE_NAME"            envDefault:"civiq-website"`
	SamplingRate     float64 `env:"OTEL_SAMPLING_RATE"           envDefault:"1.0"`
}

// Enabled returns true when an OTLP endpoint is configured.
func (c OtelConfig) Enabled() bool {
	return c.ExporterEndpoint != ""
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.RateLimit.OptInPerMinute <= 0 {
		return nil, fmt.Errorf("OPTIN_RATE_PER_MINUTE must be positive, got %d", cfg.RateLimit.OptInPerMinute)
	}
	if cfg.RateLimit.OptInBurst <= 0 {
		return nil, fmt.Errorf("OPTIN_RATE_BURST must be positive, got %d", cfg.RateLimit.OptInBurst)
	}
	if cfg.Subscriptions.RetentionOptedOutDays <= 0 {
		return nil, fmt.Errorf("RETENTION_OPTED_OUT_DAYS must be positive, got %d", cfg.Subscriptions.RetentionOptedOutDays)
	}
	if cfg.Email.WorkerIntervalMs <= 0 {
		return nil, fmt.Errorf("EMAIL_WORKER_INTERVAL_MS must be positive, got %d", cfg.Email.WorkerIntervalMs)
	}
	return cfg, nil
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.Bool("subscriptions_enabled", cfg.Subscriptions.Enabled),
		slog.Bool("email_enabled", cfg.Email.Enabled),
		slog.Bool("tracing_enabled", cfg.Otel.Enabled()),
	)

	return cfg, nil
}
