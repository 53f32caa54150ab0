// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Typewriter TypewriterConfig `toml:"typewriter"`
	Content    ContentConfig    `toml:"content"`
	Contact    ContactConfig    `toml:"contact"`
	Theme      ThemeConfig      `toml:"theme"`
}

// TypewriterConfig maps hero typewriter settings. Durations are in milliseconds.
type TypewriterConfig struct {
	Phrases       []string `toml:"phrases"`
	TypeSpeedMs   *int     `toml:"type-speed"`
	DeleteSpeedMs *int     `toml:"delete-speed"`
	PauseMs       *int     `toml:"pause"`
	Loop          *bool    `toml:"loop"`
}

// ContentConfig points at the portfolio content document.
type ContentConfig struct {
	Path *string `toml:"path"`
}

// ContactConfig configures the contact form relay.
type ContactConfig struct {
	Endpoint  *string `toml:"endpoint"`
	TimeoutMs *int    `toml:"timeout"`
}

// ThemeConfig picks the theme used when nothing is stored. "system" follows
// the terminal background; "dark" or "light" replaces detection entirely.
type ThemeConfig struct {
	Fallback *string `toml:"fallback"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
