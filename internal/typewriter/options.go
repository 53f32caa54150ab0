// Package typewriter cycles phrases through a render target one character at a time.
package typewriter

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultTypeSpeed    = 100 * time.Millisecond
	defaultDeleteSpeed  = 50 * time.Millisecond
	defaultPauseAfter   = 2000 * time.Millisecond
	defaultStartDelay   = 500 * time.Millisecond
	defaultTransitional = 500 * time.Millisecond
)

var (
	// ErrNoPhrases is returned when the phrase list is empty.
	ErrNoPhrases = errors.New("typewriter: phrase list is empty")
	// ErrEmptyPhrase is returned when one of the phrases has no characters.
	ErrEmptyPhrase = errors.New("typewriter: phrase is empty")
	// ErrInvalidDuration is returned for negative timing options.
	ErrInvalidDuration = errors.New("typewriter: duration must be positive")
)

// Options configures a typewriter session. Zero durations take the defaults.
type Options struct {
	Phrases []string

	TypeSpeed         time.Duration
	DeleteSpeed       time.Duration
	DelayBetweenTexts time.Duration
	Loop              bool

	// StartDelay and TransitionDelay are fixed at 500ms unless overridden.
	StartDelay      time.Duration
	TransitionDelay time.Duration
}

// DefaultOptions returns options with the default rhythm and looping enabled.
func DefaultOptions(phrases ...string) Options {
	return Options{
		Phrases:           phrases,
		TypeSpeed:         defaultTypeSpeed,
		DeleteSpeed:       defaultDeleteSpeed,
		DelayBetweenTexts: defaultPauseAfter,
		Loop:              true,
		StartDelay:        defaultStartDelay,
		TransitionDelay:   defaultTransitional,
	}
}

// Normalize fills zero durations with defaults and validates the result.
func (o Options) Normalize() (Options, error) {
	if len(o.Phrases) == 0 {
		return Options{}, ErrNoPhrases
	}
	phrases := make([]string, len(o.Phrases))
	for i, p := range o.Phrases {
		if p == "" {
			return Options{}, fmt.Errorf("phrase %d: %w", i, ErrEmptyPhrase)
		}
		phrases[i] = p
	}
	o.Phrases = phrases

	durations := []struct {
		name  string
		value *time.Duration
		def   time.Duration
	}{
		{"type speed", &o.TypeSpeed, defaultTypeSpeed},
		{"delete speed", &o.DeleteSpeed, defaultDeleteSpeed},
		{"delay between texts", &o.DelayBetweenTexts, defaultPauseAfter},
		{"start delay", &o.StartDelay, defaultStartDelay},
		{"transition delay", &o.TransitionDelay, defaultTransitional},
	}
	for _, d := range durations {
		if *d.value < 0 {
			return Options{}, fmt.Errorf("%s %v: %w", d.name, *d.value, ErrInvalidDuration)
		}
		if *d.value == 0 {
			*d.value = d.def
		}
	}
	return o, nil
}
