package theme

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/tuifolio/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuifolio.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestManagerFallsBackToSystem(t *testing.T) {
	m, err := NewManager(context.Background(), openStore(t), FixedDetector(Light))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if m.Current() != Light || m.Stored() {
		t.Fatalf("expected unstored light theme, got %s stored=%v", m.Current(), m.Stored())
	}
	if m.ToggleLabel() != "Switch to dark mode" {
		t.Fatalf("unexpected label %q", m.ToggleLabel())
	}
}

func TestManagerTogglePersists(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m, err := NewManager(ctx, st, FixedDetector(Dark))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	next, err := m.Toggle(ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next != Light {
		t.Fatalf("expected light after toggle, got %s", next)
	}

	reloaded, err := NewManager(ctx, st, FixedDetector(Dark))
	if err != nil {
		t.Fatalf("reload manager: %v", err)
	}
	if reloaded.Current() != Light || !reloaded.Stored() {
		t.Fatalf("expected stored light theme, got %s", reloaded.Current())
	}
}

func TestSystemChangeIgnoredWhenStored(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(ctx, openStore(t), FixedDetector(Dark))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	m.SystemChanged(false)
	if m.Current() != Light {
		t.Fatalf("expected system change to apply without stored theme")
	}
	if err := m.Set(ctx, Dark); err != nil {
		t.Fatalf("set: %v", err)
	}
	m.SystemChanged(false)
	if m.Current() != Dark {
		t.Fatalf("expected stored theme to win over system change")
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if m.Current() != Dark || m.Stored() {
		t.Fatalf("expected system theme after clear")
	}
}

func TestManagerWithoutStore(t *testing.T) {
	m, err := NewManager(context.Background(), nil, FixedDetector(Dark))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, err := m.Toggle(context.Background()); err != nil {
		t.Fatalf("toggle without store: %v", err)
	}
	if m.Current() != Light {
		t.Fatalf("expected light, got %s", m.Current())
	}
}

func TestParseName(t *testing.T) {
	if n, err := ParseName(" Dark "); err != nil || n != Dark {
		t.Fatalf("expected dark, got %s %v", n, err)
	}
	if _, err := ParseName("sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
