// Package config reads recipebox settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings. Command-line flags override these.
type Config struct {
	// Source is an http(s) URL or a local .json, .jsonl or .parquet file.
	Source         string        `env:"RECIPES_SOURCE" envDefault:"https://raw.githubusercontent.com/micahcochran/json-cookbook/refs/heads/main/cookbook-100.json"`
	StorageBackend string        `env:"RECIPES_STORAGE" envDefault:"file"`
	StoragePath    string        `env:"RECIPES_STORAGE_PATH"`
	HTTPTimeout    time.Duration `env:"RECIPES_HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel       string        `env:"RECIPES_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and fills in the default storage path.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = DefaultStoragePath(cfg.StorageBackend)
	}
	return cfg, nil
}

// DefaultStoragePath places state under the user's config directory,
// falling back to the working directory.
func DefaultStoragePath(backend string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "recipebox")
	if strings.EqualFold(backend, "sqlite") {
		return filepath.Join(dir, "recipebox.db")
	}
	return dir
}

// Level maps LogLevel onto a slog level. Unknown names mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
