package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings read from the environment, including a .env file
// loaded at startup.
type EnvConfig struct {
	ContactEndpoint string `env:"TUIFOLIO_CONTACT_ENDPOINT"`
	Editor          string `env:"EDITOR"`
}

// LoadEnv parses EnvConfig from the environment. An unset or blank editor
// falls back to vi.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.ContactEndpoint = strings.TrimSpace(cfg.ContactEndpoint)
	cfg.Editor = strings.TrimSpace(cfg.Editor)
	if cfg.Editor == "" {
		cfg.Editor = "vi"
	}
	return cfg, nil
}
