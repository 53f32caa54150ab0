package typewriter

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func mustNormalize(t *testing.T, opts Options) Options {
	t.Helper()
	normalized, err := opts.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return normalized
}

func TestStepNoLoopSequence(t *testing.T) {
	opts := mustNormalize(t, Options{
		Phrases:           []string{"Hi", "Yo"},
		TypeSpeed:         time.Millisecond,
		DeleteSpeed:       time.Millisecond,
		DelayBetweenTexts: time.Millisecond,
		Loop:              false,
	})

	var s Session
	var texts []string
	var phases []Phase
	for i := 0; i < 20 && !s.Stopped(); i++ {
		var text string
		s, text, _ = Step(s, opts)
		texts = append(texts, text)
		phases = append(phases, s.Phase)
	}

	want := []string{"H", "Hi", "H", "", "Y", "Yo", "Y", ""}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("expected %q, got %q", want, texts)
	}
	wantPhases := []Phase{
		PhaseTyping, PhasePausedAtFull, PhaseDeleting, PhaseTransitioning,
		PhaseTyping, PhasePausedAtFull, PhaseDeleting, PhaseStopped,
	}
	if !reflect.DeepEqual(phases, wantPhases) {
		t.Fatalf("expected phases %v, got %v", wantPhases, phases)
	}
	if s.PhraseIndex != 1 {
		t.Fatalf("expected stopped session to keep last phrase index, got %d", s.PhraseIndex)
	}

	after, text, delay := Step(s, opts)
	if after != s || text != "" || delay != 0 {
		t.Fatalf("expected stopped session to stay put, got %+v %q %v", after, text, delay)
	}
}

func TestStepDelaysFollowTransitions(t *testing.T) {
	opts := mustNormalize(t, Options{
		Phrases:           []string{"ab"},
		TypeSpeed:         10 * time.Millisecond,
		DeleteSpeed:       5 * time.Millisecond,
		DelayBetweenTexts: 200 * time.Millisecond,
		TransitionDelay:   50 * time.Millisecond,
		Loop:              true,
	})

	want := []time.Duration{
		10 * time.Millisecond,  // "a"
		200 * time.Millisecond, // "ab" then pause
		5 * time.Millisecond,   // "a"
		50 * time.Millisecond,  // "" then transition
		10 * time.Millisecond,  // "a" again
	}
	var s Session
	for i, w := range want {
		var delay time.Duration
		s, _, delay = Step(s, opts)
		if delay != w {
			t.Fatalf("tick %d: expected delay %v, got %v", i, w, delay)
		}
	}
}

func TestStepSinglePhraseLoopsForever(t *testing.T) {
	opts := mustNormalize(t, Options{Phrases: []string{"A"}, Loop: true})

	var s Session
	for i := 0; i < 1000; i++ {
		var text string
		s, text, _ = Step(s, opts)
		want := "A"
		if i%2 == 1 {
			want = ""
		}
		if text != want {
			t.Fatalf("tick %d: expected %q, got %q", i, want, text)
		}
		if s.Stopped() {
			t.Fatalf("tick %d: looping session stopped", i)
		}
	}
}

func TestStepLoopCyclesPhrasesInOrder(t *testing.T) {
	opts := mustNormalize(t, Options{Phrases: []string{"one", "two", "three"}, Loop: true})

	var s Session
	var visited []int
	last := -1
	for i := 0; i < 200; i++ {
		s, _, _ = Step(s, opts)
		if s.PhraseIndex != last {
			visited = append(visited, s.PhraseIndex)
			last = s.PhraseIndex
		}
	}
	for i, idx := range visited {
		if idx != i%3 {
			t.Fatalf("expected phrase order 0,1,2,0..., got %v", visited)
		}
	}
	if len(visited) < 4 {
		t.Fatalf("expected wrap-around, visited %v", visited)
	}
}

func TestStepCharIndexStaysInBounds(t *testing.T) {
	opts := mustNormalize(t, Options{Phrases: []string{"héllo", "x", "wörld!"}, Loop: false})

	var s Session
	for i := 0; i < 100 && !s.Stopped(); i++ {
		prevDeleting := s.Deleting
		prevIndex := s.PhraseIndex
		s, _, _ = Step(s, opts)
		n := len([]rune(opts.Phrases[s.PhraseIndex]))
		if s.CharIndex < 0 || s.CharIndex > n {
			t.Fatalf("tick %d: char index %d outside [0,%d]", i, s.CharIndex, n)
		}
		if s.PhraseIndex != prevIndex && !(prevDeleting && !s.Deleting) {
			t.Fatalf("tick %d: phrase advanced without finishing delete", i)
		}
		if s.Deleting && !prevDeleting && s.CharIndex != n {
			t.Fatalf("tick %d: started deleting before phrase was full", i)
		}
	}
	if !s.Stopped() {
		t.Fatalf("expected session to stop")
	}
}

func TestStepTypesRunes(t *testing.T) {
	opts := mustNormalize(t, Options{Phrases: []string{"日本"}, Loop: true})
	s, text, _ := Step(Session{}, opts)
	if text != "日" {
		t.Fatalf("expected first rune, got %q", text)
	}
	if _, text, _ = Step(s, opts); text != "日本" {
		t.Fatalf("expected full phrase, got %q", text)
	}
}

func TestNormalizeRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want error
	}{
		{"empty list", Options{}, ErrNoPhrases},
		{"empty phrase", Options{Phrases: []string{"a", ""}}, ErrEmptyPhrase},
		{"negative speed", Options{Phrases: []string{"a"}, TypeSpeed: -time.Millisecond}, ErrInvalidDuration},
	}
	for _, tc := range cases {
		if _, err := tc.opts.Normalize(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	opts := mustNormalize(t, Options{Phrases: []string{"a"}})
	def := DefaultOptions("a")
	if opts.TypeSpeed != def.TypeSpeed || opts.DeleteSpeed != def.DeleteSpeed ||
		opts.DelayBetweenTexts != def.DelayBetweenTexts || opts.StartDelay != def.StartDelay ||
		opts.TransitionDelay != def.TransitionDelay {
		t.Fatalf("expected default durations, got %+v", opts)
	}
	if opts.TypeSpeed != 100*time.Millisecond || opts.DeleteSpeed != 50*time.Millisecond ||
		opts.DelayBetweenTexts != 2*time.Second {
		t.Fatalf("unexpected default rhythm: %+v", opts)
	}
}
