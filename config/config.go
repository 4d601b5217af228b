package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Server Configuration
	HTTPServer HTTPServerConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig

	// Authentication & Security Configuration
	JWT JWTConfig

	// Engine Configuration
	Scheduler SchedulerConfig
	Engine    EngineConfig

	// Channel Configuration
	SendGrid SendGridConfig
	Twilio   TwilioConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string `env:"LOG_LEVEL" envDefault:"info"`
	Mode         string `env:"LOG_MODE" envDefault:"development"`
	Encoding     string `env:"LOG_ENCODING" envDefault:"console"`
	ColorEnabled bool   `env:"LOG_COLOR_ENABLED" envDefault:"false"`
}

// HTTPServerConfig is the configuration for the alert API server.
type HTTPServerConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`
	Mode string `env:"HTTP_MODE" envDefault:"release"`
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"catalyst_radar"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
}

// RedisConfig is the configuration for Redis.
// Redis is optional: the engine degrades to Postgres-only gating and
// dedup when it is unreachable.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
}

// JWTConfig is the configuration for the JWT.
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY"`
}

// SchedulerConfig holds the cron cadences for the two sweeps.
type SchedulerConfig struct {
	SearchSweepSpec    string `env:"SEARCH_SWEEP_CRON" envDefault:"*/15 * * * *"`
	WatchlistSweepSpec string `env:"WATCHLIST_SWEEP_CRON" envDefault:"0 * * * *"`
}

// EngineConfig holds alert engine tunables.
type EngineConfig struct {
	// RedFlagDedupWindow bounds repeat red_flag alerts per condition.
	RedFlagDedupWindow time.Duration `env:"RED_FLAG_DEDUP_WINDOW" envDefault:"24h"`
	// StaircaseRetention bounds repeat date_window alerts per threshold.
	StaircaseRetention time.Duration `env:"STAIRCASE_RETENTION" envDefault:"2160h"`
	// ChannelTimeout bounds each external channel call.
	ChannelTimeout time.Duration `env:"CHANNEL_TIMEOUT" envDefault:"10s"`
	// WatchlistHorizon is how far ahead the watchlist sweep looks.
	WatchlistHorizon time.Duration `env:"WATCHLIST_HORIZON" envDefault:"2184h"`
}

// SendGridConfig is the configuration for email delivery.
type SendGridConfig struct {
	APIKey    string `env:"SENDGRID_API_KEY"`
	FromEmail string `env:"SENDGRID_FROM_EMAIL" envDefault:"alerts@biotechcatalyst.app"`
	FromName  string `env:"SENDGRID_FROM_NAME" envDefault:"Biotech Catalyst Radar"`
}

// TwilioConfig is the configuration for SMS delivery.
type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
}


// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
