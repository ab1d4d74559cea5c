package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected memory backend, got %s", cfg.Store.Backend)
	}
	if cfg.Analysis.TopN != 10 || cfg.Analysis.WindowDays != 30 {
		t.Errorf("analysis defaults wrong: %+v", cfg.Analysis)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected memory backend, got %s", cfg.Store.Backend)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "store:\n  backend: postgres\n  postgres_url: postgres://localhost/orgmap\nanalysis:\n  top_n: 25\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Backend != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.Store.Backend)
	}
	if cfg.Analysis.TopN != 25 {
		t.Errorf("expected top_n 25, got %d", cfg.Analysis.TopN)
	}
	// Untouched fields keep their defaults.
	if cfg.Analysis.WindowDays != 30 {
		t.Errorf("expected default window, got %d", cfg.Analysis.WindowDays)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("ORGMAP_TOP_N", "7")
	t.Setenv("ORGMAP_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.TopN != 7 {
		t.Errorf("expected env top_n 7, got %d", cfg.Analysis.TopN)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected lowered debug level, got %s", cfg.Log.Level)
	}
}

func TestLoad_MalformedEnvIgnored(t *testing.T) {
	t.Setenv("ORGMAP_TOP_N", "not-a-number")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.TopN != 10 {
		t.Errorf("malformed env should keep default, got %d", cfg.Analysis.TopN)
	}
}

func TestLoad_InvalidBackendRejected(t *testing.T) {
	t.Setenv("ORGMAP_STORE_BACKEND", "dynamo")
	if _, err := Load(""); err == nil {
		t.Error("expected validation error for unknown backend")
	}
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("ORGMAP_STORE_BACKEND", "postgres")
	if _, err := Load(""); err == nil {
		t.Error("expected error when postgres_url is missing")
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
