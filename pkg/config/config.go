package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for the client configuration. The base URL falls back to the
// local development server when unset.
const (
	DefaultBaseURL      = "http://localhost:8081/api"
	DefaultTimeout      = 5 * time.Second
	DefaultAIMaxRetries = 3
)

// Config holds the ERP client configuration
type Config struct {
	BaseURL      string        `json:"base_url"`
	Timeout      time.Duration `json:"timeout"`
	LogLevel     string        `json:"log_level"`
	TokenFile    string        `json:"token_file"`
	RedisURL     string        `json:"redis_url"`
	AIMaxRetries int           `json:"ai_max_retries"`
}

// Load reads configuration from ERP_* environment variables with defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("erp")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("token_file", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("ai_max_retries", DefaultAIMaxRetries)

	config := &Config{
		BaseURL:      v.GetString("base_url"),
		Timeout:      v.GetDuration("timeout"),
		LogLevel:     v.GetString("log_level"),
		TokenFile:    v.GetString("token_file"),
		RedisURL:     v.GetString("redis_url"),
		AIMaxRetries: v.GetInt("ai_max_retries"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	if c.BaseURL == "" {
		errs = append(errs, "ERP_BASE_URL is required")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "ERP_BASE_URL must be an absolute http(s) URL")
	}

	if c.Timeout <= 0 {
		errs = append(errs, "ERP_TIMEOUT must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("ERP_LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	if c.AIMaxRetries < 0 {
		errs = append(errs, "ERP_AI_MAX_RETRIES must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
