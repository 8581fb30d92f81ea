// Package config loads client settings from the environment, with an
// optional .env file for development setups.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven client setting. Command-line flags
// may override individual fields after loading.
type Config struct {
	APIURL         string `env:"OCR_API_URL" default:"http://localhost:8000"`
	RequestTimeout int    `env:"OCR_REQUEST_TIMEOUT" default:"30"`
	CSRFToken      string `env:"OCR_CSRF_TOKEN"`
	DataDir        string `env:"OCR_DATA_DIR"`
	Debug          bool   `env:"OCR_DEBUG"`
}

// Load reads a .env file if one exists, then fills the config from the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Set(cfg); err != nil {
		return nil, fmt.Errorf("error loading config from environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error resolving home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".ocr-frontend")
	}

	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// DatabasePath is the location of the local bolt database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "client.db")
}

// KeySeedPath is the location of the storage-key seed file.
func (c *Config) KeySeedPath() string {
	return filepath.Join(c.DataDir, "storage.seed")
}
