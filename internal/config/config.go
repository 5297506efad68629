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
	BotToken    string
	ImgPushURL  string
	DBPath      string
	Port        string
	PollTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	pollSeconds := getEnvInt("POLL_TIMEOUT_SECONDS", 30)
	if pollSeconds <= 0 {
		pollSeconds = 30
	}

	cfg := &Config{
		BotToken:    getEnv("BOT_TOKEN", ""),
		ImgPushURL:  strings.TrimRight(getEnv("IMG_PUSH_URL", ""), "/"),
		DBPath:      getEnv("DB_PATH", "./data/webdump.db"),
		Port:        getEnv("PORT", "8080"),
		PollTimeout: time.Duration(pollSeconds) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN cannot be empty")
	}
	if c.ImgPushURL == "" {
		return fmt.Errorf("IMG_PUSH_URL cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
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
