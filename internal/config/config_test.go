package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Typewriter.Loop != nil || cfg.Content.Path != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[typewriter]
phrases = ["Problem Solver", "Lifelong Learner"]
type-speed = 80
loop = false

[content]
path = "/tmp/content.json"

[contact]
endpoint = "http://localhost/form"

[theme]
fallback = "light"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Typewriter.Phrases) != 2 || cfg.Typewriter.Phrases[1] != "Lifelong Learner" {
		t.Fatalf("unexpected phrases: %v", cfg.Typewriter.Phrases)
	}
	if cfg.Typewriter.TypeSpeedMs == nil || *cfg.Typewriter.TypeSpeedMs != 80 {
		t.Fatalf("expected type-speed 80")
	}
	if cfg.Typewriter.DeleteSpeedMs != nil {
		t.Fatalf("expected delete-speed to stay unset")
	}
	if cfg.Typewriter.Loop == nil || *cfg.Typewriter.Loop {
		t.Fatalf("expected loop=false")
	}
	if cfg.Content.Path == nil || *cfg.Content.Path != "/tmp/content.json" {
		t.Fatalf("unexpected content path")
	}
	if cfg.Contact.Endpoint == nil || *cfg.Contact.Endpoint != "http://localhost/form" {
		t.Fatalf("unexpected endpoint")
	}
	if cfg.Theme.Fallback == nil || *cfg.Theme.Fallback != "light" {
		t.Fatalf("unexpected theme fallback")
	}
}

func TestLoadConfigRejectsEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuifolio", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuifolio", "tuifolio.db") {
		t.Fatalf("unexpected db path %s", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("TUIFOLIO_CONTACT_ENDPOINT", "  https://example.com/form  ")
	t.Setenv("EDITOR", "")
	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.ContactEndpoint != "https://example.com/form" {
		t.Fatalf("unexpected endpoint %q", cfg.ContactEndpoint)
	}
	if cfg.Editor != "vi" {
		t.Fatalf("expected vi fallback, got %q", cfg.Editor)
	}

	t.Setenv("EDITOR", "code --wait")
	cfg, err = LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.Editor != "code --wait" {
		t.Fatalf("unexpected editor %q", cfg.Editor)
	}
}
