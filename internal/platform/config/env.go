// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Env is the environment shared by the cellmachine binaries.
type Env struct {
	HistoryPath     string `env:"CELLMACHINE_HISTORY_PATH"`
	OutputDir       string `env:"CELLMACHINE_OUTPUT_DIR" envDefault:"gif"`
	OtelEndpoint    string `env:"CELLMACHINE_OTEL_ENDPOINT"`
	OtelEnabled     bool   `env:"CELLMACHINE_OTEL_ENABLED" envDefault:"true"`
	Workers         int    `env:"CELLMACHINE_WORKERS" envDefault:"4"`
	ProgressPercent int    `env:"CELLMACHINE_PROGRESS_PERCENT" envDefault:"0"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	return cfg, nil
}
