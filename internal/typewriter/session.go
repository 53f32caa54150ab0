package typewriter

import "time"

// Phase names the state a session is in after its most recent tick.
type Phase int

const (
	// PhaseTyping extends the current phrase on the next tick.
	PhaseTyping Phase = iota
	// PhasePausedAtFull holds the full phrase before deleting starts.
	PhasePausedAtFull
	// PhaseDeleting shortens the current phrase on the next tick.
	PhaseDeleting
	// PhaseTransitioning waits on an empty line before the next phrase.
	PhaseTransitioning
	// PhaseStopped is terminal; no further ticks are scheduled.
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhasePausedAtFull:
		return "paused"
	case PhaseDeleting:
		return "deleting"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Session is the explicit state of one typewriter run.
type Session struct {
	PhraseIndex int
	CharIndex   int
	Deleting    bool
	Phase       Phase
}

// Stopped reports whether the session reached its terminal state.
func (s Session) Stopped() bool {
	return s.Phase == PhaseStopped
}

// Text returns the rendered prefix of the current phrase.
func (s Session) Text(opts Options) string {
	if len(opts.Phrases) == 0 {
		return ""
	}
	runes := []rune(opts.Phrases[s.PhraseIndex])
	return string(runes[:clamp(s.CharIndex, 0, len(runes))])
}

// Step performs one tick: it returns the next session, the text to render,
// and the delay before the following tick. A stopped session is returned
// unchanged with a zero delay. opts must be normalized.
func Step(s Session, opts Options) (Session, string, time.Duration) {
	if s.Stopped() {
		return s, s.Text(opts), 0
	}
	phrase := []rune(opts.Phrases[s.PhraseIndex])

	if s.Deleting {
		s.CharIndex = clamp(s.CharIndex-1, 0, len(phrase))
	} else {
		s.CharIndex = clamp(s.CharIndex+1, 0, len(phrase))
	}
	text := string(phrase[:s.CharIndex])

	switch {
	case !s.Deleting && s.CharIndex == len(phrase):
		s.Deleting = true
		s.Phase = PhasePausedAtFull
		return s, text, opts.DelayBetweenTexts
	case s.Deleting && s.CharIndex == 0:
		s.Deleting = false
		next := s.PhraseIndex + 1
		if next >= len(opts.Phrases) {
			if !opts.Loop {
				s.Phase = PhaseStopped
				return s, text, 0
			}
			next = 0
		}
		s.PhraseIndex = next
		s.Phase = PhaseTransitioning
		return s, text, opts.TransitionDelay
	case s.Deleting:
		s.Phase = PhaseDeleting
		return s, text, opts.DeleteSpeed
	default:
		s.Phase = PhaseTyping
		return s, text, opts.TypeSpeed
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
