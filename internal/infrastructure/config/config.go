// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the typed service configuration. Every field maps to the
// upper-cased environment variable of its koanf key (http_port -> HTTP_PORT).
type Config struct {
	HTTPPort  string `koanf:"http_port"`
	GinMode   string `koanf:"gin_mode"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	AWSRegion          string `koanf:"aws_region"`
	AWSAccessKeyID     string `koanf:"aws_access_key_id"`
	AWSSecretAccessKey string `koanf:"aws_secret_access_key"`
	DynamoDBEndpoint   string `koanf:"dynamodb_endpoint"`

	JobRequestsTable string `koanf:"job_requests_table"`
	QuotesTable      string `koanf:"quotes_table"`
	UsersTable       string `koanf:"users_table"`
	RoleChangesTable string `koanf:"role_changes_table"`
	SessionsTable    string `koanf:"sessions_table"`
	LoginCodesTable  string `koanf:"login_codes_table"`

	// NATSURL empty means notifications are only logged.
	NATSURL           string `koanf:"nats_url"`
	NATSSubjectPrefix string `koanf:"nats_subject_prefix"`

	SessionTTL        time.Duration `koanf:"session_ttl"`
	LoginCodeTTL      time.Duration `koanf:"login_code_ttl"`
	LoginCodeInterval time.Duration `koanf:"login_code_interval"`
	LoginCodeBurst    int           `koanf:"login_code_burst"`
	QuoteValidity     time.Duration `koanf:"quote_validity"`
	CookieSecure      bool          `koanf:"cookie_secure"`
}

// Load reads the environment into a Config, applies defaults and validates it.
func Load() (*Config, error) {
	return load(env.Provider("", ".", strings.ToLower))
}

func load(p koanf.Provider) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(p, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	setString := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	setDuration := func(v *time.Duration, def time.Duration) {
		if *v == 0 {
			*v = def
		}
	}

	setString(&cfg.HTTPPort, "8080")
	setString(&cfg.GinMode, "release")
	setString(&cfg.LogLevel, "info")
	setString(&cfg.LogFormat, "json")
	setString(&cfg.AWSRegion, "us-east-1")
	setString(&cfg.NATSSubjectPrefix, "marketplace")

	setDuration(&cfg.SessionTTL, 7*24*time.Hour)
	setDuration(&cfg.LoginCodeTTL, 10*time.Minute)
	setDuration(&cfg.LoginCodeInterval, time.Minute)
	setDuration(&cfg.QuoteValidity, 30*24*time.Hour)
	if cfg.LoginCodeBurst == 0 {
		cfg.LoginCodeBurst = 3
	}
}

var (
	ErrInvalidLogLevel  = errors.New("log_level must be one of debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("log_format must be json or console")
	ErrInvalidGinMode   = errors.New("gin_mode must be one of debug, release, test")
)

// Validate checks the values defaults cannot repair.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return ErrInvalidLogFormat
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return ErrInvalidGinMode
	}
	if c.SessionTTL < 0 || c.LoginCodeTTL < 0 || c.LoginCodeInterval < 0 || c.QuoteValidity < 0 {
		return errors.New("durations must not be negative")
	}
	if c.LoginCodeBurst < 0 {
		return errors.New("login_code_burst must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTPPort, ":")
}
