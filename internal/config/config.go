// Package config defines the global configuration structure for the
// verdant service. Configuration is loaded once at process initialization
// and is immutable thereafter, following 12-Factor principles.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any missing required value or invalid format causes the application to
// fail immediately on startup.
package config

import (
	"time"

	"verdant/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret
// type used to prevent accidental logging of sensitive values.
type SecretString = types.SecretString

// Config is the top-level configuration struct. It is populated once
// during process initialization and never modified. Sub-components
// receive only the specific config subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"verdant"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Server   ServerConfig
	Database DatabaseConfig
	Weather  WeatherConfig
	AI       AIConfig
	Adjust   AdjustConfig
	Auth     AuthConfig
}

// AuthConfig holds the pre-shared API token and the user it maps to.
type AuthConfig struct {
	Token  SecretString `envconfig:"API_TOKEN" validate:"required"`
	UserID string       `envconfig:"API_USER_ID" default:"default-user"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL" validate:"required,url"`

	MaxConns          int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	AcquireTimeout    time.Duration `envconfig:"DB_ACQUIRE_TIMEOUT" default:"2s"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
}

// WeatherConfig holds the upstream weather API credentials and tuning.
type WeatherConfig struct {
	APIKey  SecretString  `envconfig:"OPENWEATHER_API_KEY" validate:"required"`
	BaseURL string        `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org"`
	Timeout time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
}

// AIConfig holds the plant characteristic inference provider settings.
type AIConfig struct {
	APIKey  SecretString  `envconfig:"OPENAI_API_KEY"`
	BaseURL string        `envconfig:"OPENAI_BASE_URL"`
	Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"20s"`
	// Enabled gates AI inference. When false, the service falls back to
	// conservative defaults without calling the provider.
	Enabled bool `envconfig:"AI_ENABLED" default:"true"`
}

// AdjustConfig tunes the batch adjustment worker.
type AdjustConfig struct {
	// UserConcurrency bounds how many users are evaluated in parallel.
	UserConcurrency int `envconfig:"ADJUST_USER_CONCURRENCY" default:"4"`
	// CacheTTL is the plant characteristic inference cache lifetime.
	CacheTTL time.Duration `envconfig:"INFERENCE_CACHE_TTL" default:"168h"`
}
