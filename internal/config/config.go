// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBPath      string
	Inference   InferenceConfig
	Runner      RunnerConfig
	ActivityLog ActivityLogConfig
}

// InferenceConfig describes the external completion endpoint.
type InferenceConfig struct {
	BaseURL    string
	CustomerID string
	AuthToken  string
	ChatModel  string
	ImageModel string
	Timeout    time.Duration
}

// RunnerConfig controls sandboxed code execution.
type RunnerConfig struct {
	DockerEnabled bool
	RunTimeout    time.Duration
}

// ActivityLogConfig controls NDJSON activity logging.
type ActivityLogConfig struct {
	Enabled   bool
	Path      string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", ""),
		DBPath:      getEnv("DB_PATH", "./data/burme-mark.db"),
		Inference: InferenceConfig{
			BaseURL:    getEnv("AI_BASE_URL", "https://oi-server.onrender.com"),
			CustomerID: getEnv("AI_CUSTOMER_ID", ""),
			AuthToken:  getEnv("AI_AUTH_TOKEN", ""),
			ChatModel:  getEnv("AI_CHAT_MODEL", "openrouter/anthropic/claude-3.5-sonnet"),
			ImageModel: getEnv("AI_IMAGE_MODEL", "replicate/black-forest-labs/flux-1.1-pro"),
			Timeout:    getEnvDuration("AI_TIMEOUT", 60*time.Second),
		},
		Runner: RunnerConfig{
			DockerEnabled: getEnvBool("RUNNER_DOCKER_ENABLED", true),
			RunTimeout:    getEnvDuration("RUNNER_TIMEOUT", 10*time.Second),
		},
		ActivityLog: ActivityLogConfig{
			Enabled:   getEnvBool("ACTIVITY_LOG_ENABLED", false),
			Path:      getEnv("ACTIVITY_LOG_PATH", "./data/logs/activity.ndjson"),
			QueueSize: getEnvInt("ACTIVITY_LOG_QUEUE_SIZE", 256),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.Inference.BaseURL == "" {
		return fmt.Errorf("AI_BASE_URL cannot be empty")
	}
	if !strings.HasPrefix(c.Inference.BaseURL, "http://") && !strings.HasPrefix(c.Inference.BaseURL, "https://") {
		return fmt.Errorf("AI_BASE_URL must be an http(s) URL")
	}
	if c.Inference.ChatModel == "" || c.Inference.ImageModel == "" {
		return fmt.Errorf("AI_CHAT_MODEL and AI_IMAGE_MODEL cannot be empty")
	}
	if c.ActivityLog.Enabled && c.ActivityLog.Path == "" {
		return fmt.Errorf("ACTIVITY_LOG_PATH cannot be empty when activity logging is enabled")
	}
	if c.ActivityLog.QueueSize <= 0 {
		return fmt.Errorf("ACTIVITY_LOG_QUEUE_SIZE must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
