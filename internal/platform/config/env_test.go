package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Steps int `env:"CELLMACHINE_TEST_STEPS" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Steps != 123 {
		t.Fatalf("expected default steps 123, got %d", cfg.Steps)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CELLMACHINE_TEST_STEPS", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CELLMACHINE_OUTPUT_DIR", "")
	t.Setenv("CELLMACHINE_WORKERS", "")
	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.OutputDir != "gif" || cfg.Workers != 4 || !cfg.OtelEnabled || cfg.ProgressPercent != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CELLMACHINE_HISTORY_PATH", "/tmp/runs.db")
	t.Setenv("CELLMACHINE_WORKERS", "9")
	t.Setenv("CELLMACHINE_OTEL_ENABLED", "false")
	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.HistoryPath != "/tmp/runs.db" || cfg.Workers != 9 || cfg.OtelEnabled {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}
