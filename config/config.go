package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime parameters, read from environment variables.
type Config struct {
	// Base URL of the review backend. All endpoints are resolved
	// relative to it.
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:5000"`

	HTTPTimeoutSeconds int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"30"`

	// Path of the local submission ledger database.
	LedgerPath string `envconfig:"LEDGER_PATH" default:"paper-desk.db"`

	// Watch mode: poll schedule (cron syntax) and the port the metrics
	// endpoint listens on.
	WatchSchedule string `envconfig:"WATCH_SCHEDULE" default:"@every 5m"`
	MetricsPort   string `envconfig:"METRICS_PORT" default:"4242"`
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
