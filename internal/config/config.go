package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Session  SessionConfig
	Customer CustomerConfig
	Probe    ProbeConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

// APIConfig points at the table-management REST API this front consumes.
type APIConfig struct {
	BaseURL string
	Timeout int
}

type SessionConfig struct {
	Secret       string
	MaxAge       int
	CookieSecure bool
}

// CustomerConfig drives the public, self-refreshing tab view.
type CustomerConfig struct {
	RefreshSeconds int
}

type ProbeConfig struct {
	Schedule string
}

const minSecretLength = 32

// Load reads configuration from environment variables
func Load() (*Config, error) {
	env := &envReader{}
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     env.Int("READ_TIMEOUT", 15),
			WriteTimeout:    env.Int("WRITE_TIMEOUT", 15),
			ShutdownTimeout: env.Int("SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
			Timeout: env.Int("API_TIMEOUT", 10),
		},
		Session: SessionConfig{
			Secret:       os.Getenv("SESSION_SECRET"),
			MaxAge:       env.Int("SESSION_MAX_AGE", 12*60*60),
			CookieSecure: env.Bool("COOKIE_SECURE", false),
		},
		Customer: CustomerConfig{
			RefreshSeconds: env.Int("CUSTOMER_REFRESH_SECONDS", 30),
		},
		Probe: ProbeConfig{
			Schedule: getEnv("BACKEND_PROBE_SCHEDULE", "@every 30s"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Server.Port)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}

	if len(c.Session.Secret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSecretLength)
	}

	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}

	if c.Customer.RefreshSeconds <= 0 {
		return fmt.Errorf("CUSTOMER_REFRESH_SECONDS must be positive")
	}

	if _, err := cron.ParseStandard(c.Probe.Schedule); err != nil {
		return fmt.Errorf("invalid BACKEND_PROBE_SCHEDULE %q: %w", c.Probe.Schedule, err)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// APITimeout returns the per-request timeout for backend calls.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed variables and collects every malformed one.
type envReader struct {
	errs []error
}

func (e *envReader) Int(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be an integer, got %q", key, valueStr))
		return defaultValue
	}
	return value
}

func (e *envReader) Bool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be true or false, got %q", key, valueStr))
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
