// Package config loads application configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig selects and tunes the persistence backend.
type StoreConfig struct {
	// Backend is "memory" or "postgres".
	Backend     string `yaml:"backend" validate:"oneof=memory postgres"`
	PostgresURL string `yaml:"postgres_url"`
	MaxConns    int    `yaml:"max_conns" validate:"gte=0"`
	MinConns    int    `yaml:"min_conns" validate:"gte=0"`
	// QueryTimeoutSeconds bounds individual store queries.
	QueryTimeoutSeconds int `yaml:"query_timeout_seconds" validate:"gte=0"`
}

// AnalysisConfig tunes report generation.
type AnalysisConfig struct {
	TopN       int `yaml:"top_n" validate:"gte=0"`
	WindowDays int `yaml:"window_days" validate:"gte=0"`
	Workers    int `yaml:"workers" validate:"gte=0"`
}

// LogConfig tunes the structured logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is present: an
// in-memory store, a 30 day window and top-ten rankings.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:             "memory",
			MaxConns:            10,
			MinConns:            2,
			QueryTimeoutSeconds: 5,
		},
		Analysis: AnalysisConfig{
			TopN:       10,
			WindowDays: 30,
		},
		Log: LogConfig{Level: "info"},
	}
}

var validate = validator.New()

// Load reads configuration in three layers: defaults, then the YAML
// file at path (skipped when path is empty), then ORGMAP_* environment
// variables. The merged result is validated before return.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Store.Backend == "postgres" && cfg.Store.PostgresURL == "" {
		return nil, fmt.Errorf("invalid config: postgres backend requires postgres_url")
	}
	return cfg, nil
}

// applyEnv overlays ORGMAP_* variables onto the config. Unset or
// malformed numeric variables leave the current value in place.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ORGMAP_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("ORGMAP_POSTGRES_URL"); v != "" {
		cfg.Store.PostgresURL = v
	}
	if v := os.Getenv("ORGMAP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	envInt("ORGMAP_MAX_CONNS", &cfg.Store.MaxConns)
	envInt("ORGMAP_MIN_CONNS", &cfg.Store.MinConns)
	envInt("ORGMAP_QUERY_TIMEOUT_SECONDS", &cfg.Store.QueryTimeoutSeconds)
	envInt("ORGMAP_TOP_N", &cfg.Analysis.TopN)
	envInt("ORGMAP_WINDOW_DAYS", &cfg.Analysis.WindowDays)
	envInt("ORGMAP_WORKERS", &cfg.Analysis.Workers)
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
