package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuifolio/internal/theme"
)

type styles struct {
	text       lipgloss.Style
	muted      lipgloss.Style
	hidden     lipgloss.Style
	accent     lipgloss.Style
	heading    lipgloss.Style
	name       lipgloss.Style
	cursor     lipgloss.Style
	navActive  lipgloss.Style
	navItem    lipgloss.Style
	navBarDown lipgloss.Style
	card       lipgloss.Style
	tag        lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	filterOn   lipgloss.Style
	filterOff  lipgloss.Style
	footer     lipgloss.Style
	modal      lipgloss.Style
	fieldError lipgloss.Style
	toastOK    lipgloss.Style
	toastErr   lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		text:    lipgloss.NewStyle().Foreground(p.Text),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		hidden:  lipgloss.NewStyle().Foreground(p.Subtle),
		accent:  lipgloss.NewStyle().Foreground(p.Accent),
		heading: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		name:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		cursor:  lipgloss.NewStyle().Foreground(p.Accent).Blink(true),
		navActive: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		navItem: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		navBarDown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.Border),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Border),
		tag:       lipgloss.NewStyle().Foreground(p.Accent),
		barFill:   lipgloss.NewStyle().Foreground(p.Accent),
		barEmpty:  lipgloss.NewStyle().Foreground(p.Subtle),
		filterOn:  lipgloss.NewStyle().Foreground(p.Text).Bold(true).Underline(true),
		filterOff: lipgloss.NewStyle().Foreground(p.Muted),
		footer:    lipgloss.NewStyle().Foreground(p.Muted),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Accent).
			Padding(1, 2),
		fieldError: lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		toastOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.Success).
			Padding(0, 1),
		toastErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.Error).
			Padding(0, 1),
	}
}
