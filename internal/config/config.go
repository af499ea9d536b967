package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the exam service
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Upstream services
	QuestionServiceURL string
	ResultServiceURL   string
	GradingWebhookURL  string
	TextGenWebhookURL  string
	UpstreamTimeout    time.Duration

	// Infrastructure
	RedisURL     string
	KafkaBrokers []string
}

// LoadConfig loads configuration from environment variables, with a .env
// file as fallback for local development
func LoadConfig() (*Config, error) {
	// .env is optional, ignore load errors
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           parseLogLevel(getEnv("LOG_LEVEL", "info")),
		QuestionServiceURL: getEnv("QUESTION_SERVICE_URL", "http://localhost:8000"),
		ResultServiceURL:   getEnv("RESULT_SERVICE_URL", "http://localhost:8000"),
		GradingWebhookURL:  getEnv("GRADING_WEBHOOK_URL", ""),
		TextGenWebhookURL:  getEnv("TEXTGEN_WEBHOOK_URL", ""),
		UpstreamTimeout:    parseDuration(getEnv("UPSTREAM_TIMEOUT", "30s")),
		RedisURL:           getEnv("REDIS_URL", ""),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.QuestionServiceURL == "" {
		return fmt.Errorf("QUESTION_SERVICE_URL must not be empty")
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
