// Package theme manages the dark/light palette and its stored preference.
package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PreferenceKey is the key the chosen theme is stored under.
const PreferenceKey = "theme"

// Name identifies a palette.
type Name string

// Available themes.
const (
	Dark  Name = "dark"
	Light Name = "light"
)

// ParseName parses "dark" or "light".
func ParseName(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
}

// Opposite returns the other theme.
func (n Name) Opposite() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Palette is the set of colors a theme renders with.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Subtle  lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
}

var palettes = map[Name]Palette{
	Dark: {
		Text:    lipgloss.Color("#F0F0F0"),
		Muted:   lipgloss.Color("#8C8C8C"),
		Subtle:  lipgloss.Color("#4A4A4A"),
		Accent:  lipgloss.Color("#C89A3A"),
		Border:  lipgloss.Color("#4A4A4A"),
		Error:   lipgloss.Color("#FF4D4F"),
		Success: lipgloss.Color("#A3D65C"),
	},
	Light: {
		Text:    lipgloss.Color("#1F1F1F"),
		Muted:   lipgloss.Color("#6E6E6E"),
		Subtle:  lipgloss.Color("#C8C8C8"),
		Accent:  lipgloss.Color("#9A6B12"),
		Border:  lipgloss.Color("#B0B0B0"),
		Error:   lipgloss.Color("#D9363E"),
		Success: lipgloss.Color("#4E8A1C"),
	},
}

// PaletteFor returns the palette of n. Unknown names get the dark palette.
func PaletteFor(n Name) Palette {
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Dark]
}

// PreferenceStore persists a single key/value preference.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
	DeletePreference(ctx context.Context, key string) error
}

// Manager resolves the active theme from the stored preference, falling back
// to the system preference.
type Manager struct {
	store      PreferenceStore
	systemDark func() bool

	current Name
	stored  bool
}

// SystemDetector reports whether the terminal has a dark background.
func SystemDetector() func() bool {
	return lipgloss.HasDarkBackground
}

// FixedDetector always reports the given theme as the system preference.
func FixedDetector(n Name) func() bool {
	return func() bool { return n == Dark }
}

// NewManager loads the stored theme, or the system theme when none is stored.
// A nil store keeps the preference in memory only.
func NewManager(ctx context.Context, store PreferenceStore, systemDark func() bool) (*Manager, error) {
	if systemDark == nil {
		systemDark = SystemDetector()
	}
	m := &Manager{store: store, systemDark: systemDark}
	m.current = m.systemTheme()
	if store == nil {
		return m, nil
	}
	value, ok, err := store.GetPreference(ctx, PreferenceKey)
	if err != nil {
		return m, fmt.Errorf("failed to load theme preference: %w", err)
	}
	if !ok {
		return m, nil
	}
	name, err := ParseName(value)
	if err != nil {
		return m, nil
	}
	m.current = name
	m.stored = true
	return m, nil
}

// Current returns the active theme.
func (m *Manager) Current() Name {
	return m.current
}

// Palette returns the active palette.
func (m *Manager) Palette() Palette {
	return PaletteFor(m.current)
}

// Stored reports whether the active theme came from a stored preference.
func (m *Manager) Stored() bool {
	return m.stored
}

// ToggleLabel describes what toggling will do.
func (m *Manager) ToggleLabel() string {
	if m.current == Dark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}

// Toggle switches to the opposite theme and stores the choice.
func (m *Manager) Toggle(ctx context.Context) (Name, error) {
	next := m.current.Opposite()
	return next, m.Set(ctx, next)
}

// Set applies n and stores it. The theme is applied even if storing fails.
func (m *Manager) Set(ctx context.Context, n Name) error {
	m.current = n
	m.stored = true
	if m.store == nil {
		return nil
	}
	if err := m.store.SetPreference(ctx, PreferenceKey, string(n)); err != nil {
		return fmt.Errorf("failed to store theme preference: %w", err)
	}
	return nil
}

// Clear forgets the stored preference and follows the system theme again.
func (m *Manager) Clear(ctx context.Context) error {
	m.stored = false
	m.current = m.systemTheme()
	if m.store == nil {
		return nil
	}
	if err := m.store.DeletePreference(ctx, PreferenceKey); err != nil {
		return fmt.Errorf("failed to clear theme preference: %w", err)
	}
	return nil
}

// DetectSystem asks the system detector for the current background. It may
// block while the terminal answers, so callers run it off the UI loop.
func (m *Manager) DetectSystem() bool {
	return m.systemDark()
}

// SystemChanged applies a new system preference unless a theme is stored.
func (m *Manager) SystemChanged(dark bool) {
	if m.stored {
		return
	}
	if dark {
		m.current = Dark
	} else {
		m.current = Light
	}
}

func (m *Manager) systemTheme() Name {
	if m.systemDark() {
		return Dark
	}
	return Light
}
