// Package config loads runtime settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bodylog/internal/domain"
)

// Store kinds.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds everything the binary needs to wire the services.
type Config struct {
	Addr        string        `yaml:"addr"`
	WebDir      string        `yaml:"web_dir"`
	Store       string        `yaml:"store"`
	StorePath   string        `yaml:"store_path"`
	DatabaseURL string        `yaml:"database_url"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	RateLimit   float64       `yaml:"rate_limit"`
	RateBurst   int           `yaml:"rate_burst"`
	Goals       domain.Macros `yaml:"goals"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:      ":8080",
		WebDir:    "web",
		Store:     StoreFile,
		StorePath: "data",
		LogLevel:  "info",
		LogFormat: "text",
		RateLimit: 50,
		RateBurst: 100,
		Goals:     domain.DefaultMacroGoals,
	}
}

// Load reads the YAML file at path (skipped when path is empty) over the
// defaults and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Addr = env("ADDR", c.Addr)
	c.WebDir = env("WEB_DIR", c.WebDir)
	c.Store = strings.ToLower(env("STORE", c.Store))
	c.StorePath = env("STORE_PATH", c.StorePath)
	c.DatabaseURL = env("DATABASE_URL", c.DatabaseURL)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)
	c.LogFormat = env("LOG_FORMAT", c.LogFormat)

	if v, err := strconv.ParseFloat(env("RATE_LIMIT", ""), 64); err == nil {
		c.RateLimit = v
	}
	if v, err := strconv.Atoi(env("RATE_BURST", "")); err == nil {
		c.RateBurst = v
	}
}

// Validate reports settings that cannot be wired.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreFile, StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("store %q requires store_path", c.Store)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("rate limit and burst must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger described by the config.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
