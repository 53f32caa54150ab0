package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuifolio/internal/contact"
	"github.com/verte-zerg/tuifolio/internal/content"
	"github.com/verte-zerg/tuifolio/internal/theme"
	"github.com/verte-zerg/tuifolio/internal/typewriter"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Doc.Profile.Name == "" {
		opts.Doc = content.Default()
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelRejectsEmptyPhrases(t *testing.T) {
	_, err := NewModel(Options{Doc: content.Default(), Typewriter: &typewriter.Options{}})
	if err == nil {
		t.Fatalf("expected empty phrase list to be rejected")
	}
}

func TestTypewriterTicksUntilStopped(t *testing.T) {
	opts := typewriter.Options{
		Phrases:           []string{"Hi"},
		TypeSpeed:         time.Millisecond,
		DeleteSpeed:       time.Millisecond,
		DelayBetweenTexts: time.Millisecond,
	}
	m := newTestModel(t, Options{Typewriter: &opts})
	if m.Init() == nil {
		t.Fatalf("expected start tick")
	}

	var texts []string
	for i := 0; i < 10; i++ {
		_, cmd := m.Update(typeTickMsg{})
		texts = append(texts, m.heroText)
		if cmd == nil {
			break
		}
	}
	if strings.Join(texts, ",") != "H,Hi,H," {
		t.Fatalf("unexpected hero frames %q", texts)
	}
	if _, cmd := m.Update(typeTickMsg{}); cmd != nil {
		t.Fatalf("expected no tick after stop")
	}
}

func TestModelWithoutTypewriterSchedulesNothing(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.Init() != nil {
		t.Fatalf("expected no ticks without a hero target")
	}
	if _, cmd := m.Update(typeTickMsg{}); cmd != nil {
		t.Fatalf("expected stray tick to be ignored")
	}
}

func TestTabMovesToNextSection(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.nav.Active() != 1 {
		t.Fatalf("expected skills to be active, got %d", m.nav.Active())
	}
	if m.vp.YOffset != m.page.offsets[sectionSkills] {
		t.Fatalf("expected offset %d, got %d", m.page.offsets[sectionSkills], m.vp.YOffset)
	}

	m.Update(runeKey("7"))
	if got := m.nav.Sections()[m.nav.Active()].ID; got != sectionContact {
		t.Fatalf("expected contact section, got %s", got)
	}
	if !m.nav.Scrolled() {
		t.Fatalf("expected nav to be in scrolled state")
	}
	if !strings.Contains(m.View(), "─") {
		t.Fatalf("expected scrolled nav border in view")
	}
}

func TestRevealStartsSkillBars(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !m.reveals.Revealed(skillID(0)) {
		t.Fatalf("expected first skill to be revealed on screen")
	}
	if cmd == nil || !m.animating {
		t.Fatalf("expected bar animation to start")
	}
	for i := 0; i < 100 && m.animating; i++ {
		m.Update(barTickMsg{})
	}
	if got, want := m.skillProgress[skillID(0)], m.doc.Skills[0].Level; got != want {
		t.Fatalf("expected bar to reach %d, got %d", want, got)
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(runeKey("t"))
	if m.themes.Current() != theme.Light {
		t.Fatalf("expected light theme after toggle, got %s", m.themes.Current())
	}
	m.Update(runeKey("T"))
	if m.themes.Current() != theme.Dark || m.themes.Stored() {
		t.Fatalf("expected system theme after clear")
	}
}

func TestFocusFollowsSystemTheme(t *testing.T) {
	dark := true
	themes, err := theme.NewManager(context.Background(), nil, func() bool { return dark })
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	m := newTestModel(t, Options{Themes: themes})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	dark = false
	_, cmd := m.Update(tea.FocusMsg{})
	if cmd == nil {
		t.Fatalf("expected focus to re-detect the system theme")
	}
	m.Update(cmd())
	if m.themes.Current() != theme.Light {
		t.Fatalf("expected light system theme, got %s", m.themes.Current())
	}

	m.Update(runeKey("t"))
	if _, cmd := m.Update(tea.FocusMsg{}); cmd != nil {
		t.Fatalf("expected stored theme to skip detection")
	}
	m.Update(systemThemeMsg{dark: false})
	if m.themes.Current() != theme.Dark {
		t.Fatalf("expected stored theme to win, got %s", m.themes.Current())
	}
}

func TestFilterCycles(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.currentFilter() != content.FilterAll {
		t.Fatalf("expected all filter first")
	}
	m.Update(runeKey("f"))
	if m.currentFilter() != m.filters[1] {
		t.Fatalf("expected second filter, got %s", m.currentFilter())
	}
	m.Update(runeKey("F"))
	m.Update(runeKey("F"))
	if m.currentFilter() != m.filters[len(m.filters)-1] {
		t.Fatalf("expected filter to wrap backwards, got %s", m.currentFilter())
	}
}

func TestProjectCardsKeyedByPosition(t *testing.T) {
	doc := content.Default()
	doc.Projects = append(doc.Projects, doc.Projects[0])
	m := newTestModel(t, Options{Doc: doc})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	first, ok := m.page.spans[projectID(0)]
	if !ok {
		t.Fatalf("expected first card span")
	}
	last, ok := m.page.spans[projectID(len(doc.Projects)-1)]
	if !ok {
		t.Fatalf("expected span for duplicate title")
	}
	if first.Start == last.Start {
		t.Fatalf("expected cards with the same title to keep separate spans")
	}
}

func TestFilterChangeRevealsCardsAgain(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	m.Update(runeKey("3"))
	if !m.reveals.Revealed(projectID(0)) {
		t.Fatalf("expected first card revealed at projects")
	}
	m.Update(runeKey("g"))
	m.Update(runeKey("f"))
	if m.reveals.Revealed(projectID(0)) {
		t.Fatalf("expected filtered cards to wait for the next reveal")
	}
}

func TestSkillBarsWaitBeforeFilling(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd == nil {
		t.Fatalf("expected bar animation to be scheduled")
	}
	if got := m.skillProgress[skillID(0)]; got != 0 {
		t.Fatalf("expected bar to start empty, got %d", got)
	}
	if _, ok := m.page.thresholds[skillID(0)]; !ok {
		t.Fatalf("expected skill rows to carry their own threshold")
	}
}

func TestCompactMenu(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m.Update(runeKey("m"))
	if !m.nav.MenuOpen() {
		t.Fatalf("expected menu to open")
	}
	if !strings.Contains(m.View(), "esc: close") {
		t.Fatalf("expected menu in view")
	}
	m.Update(runeKey("3"))
	if m.nav.MenuOpen() {
		t.Fatalf("expected jump to close menu")
	}
	if got := m.nav.Sections()[m.nav.Active()].ID; got != sectionProjects {
		t.Fatalf("expected projects section, got %s", got)
	}
}

func TestContactFormValidationErrorsExpire(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(runeKey("c"))
	if !m.formOpen {
		t.Fatalf("expected form to open")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("expected error expiry tick")
	}
	if len(m.form.errors) != 5 {
		t.Fatalf("expected every field to be invalid, got %v", m.form.errors)
	}
	if m.submitting {
		t.Fatalf("expected invalid form not to submit")
	}
	m.Update(fieldErrorsExpiredMsg{gen: m.formErrGen})
	if len(m.form.errors) != 0 {
		t.Fatalf("expected errors to clear")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formOpen {
		t.Fatalf("expected esc to close form")
	}
}

func TestContactFormSubmits(t *testing.T) {
	var posted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		posted = r.PostForm.Get("entry.1826983457")
	}))
	defer srv.Close()

	m := newTestModel(t, Options{Submitter: contact.NewSubmitter(srv.URL, time.Second, nil)})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(runeKey("c"))
	for i, v := range []string{"Ada", "ada@example.com", "MIT", "Hello", "4"} {
		m.form.inputs[i].SetValue(v)
	}
	m.form.setFocus(len(m.form.inputs) - 1)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.submitting {
		t.Fatalf("expected submission to start")
	}
	if _, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); again != nil {
		t.Fatalf("expected second submit to be ignored while loading")
	}

	m.Update(cmd())
	if posted != "ada@example.com" {
		t.Fatalf("expected email to be posted, got %q", posted)
	}
	if m.formOpen || m.submitting {
		t.Fatalf("expected form to close after success")
	}
	if m.toast != contact.SuccessMessage || !m.toastOK {
		t.Fatalf("unexpected toast %q", m.toast)
	}
	if m.form.value().Name != "" {
		t.Fatalf("expected form reset")
	}
	m.Update(toastExpiredMsg{gen: m.toastGen})
	if m.toast != "" {
		t.Fatalf("expected toast to expire")
	}
}

func TestContactFormFailureToast(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(submitResultMsg{err: http.ErrHandlerTimeout})
	if m.toast != contact.FailureMessage || m.toastOK {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestViewShowsHeroAndNav(t *testing.T) {
	opts := typewriter.DefaultOptions("Problem Solver")
	m := newTestModel(t, Options{Typewriter: &opts})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(typeTickMsg{})
	view := m.View()
	for _, want := range []string{"Home", "Projects", "Alex Morgan", "P" + string(heroCursor)} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}
