package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuifolio/internal/contact"
	"github.com/verte-zerg/tuifolio/internal/content"
	"github.com/verte-zerg/tuifolio/internal/model"
	"github.com/verte-zerg/tuifolio/internal/navigation"
	"github.com/verte-zerg/tuifolio/internal/reveal"
	"github.com/verte-zerg/tuifolio/internal/theme"
	"github.com/verte-zerg/tuifolio/internal/typewriter"
)

const (
	headerHeight   = 2
	footerHeight   = 1
	revealFraction = 0.1
	// Skill rows reveal once half visible and fill shortly after.
	skillRevealFraction = 0.5
	barDelay            = 100 * time.Millisecond
	barFrame            = 30 * time.Millisecond
	barStep             = 4
	messageTTL          = 3 * time.Second
)

type typeTickMsg struct{}

type barTickMsg struct{}

type systemThemeMsg struct {
	dark bool
}

type submitResultMsg struct {
	err error
}

type toastExpiredMsg struct {
	gen int
}

type fieldErrorsExpiredMsg struct {
	gen int
}

// Options wires the collaborators of the page.
type Options struct {
	Doc model.Document
	// Typewriter configures the hero line. Nil leaves the hero without one.
	Typewriter *typewriter.Options
	Themes     *theme.Manager
	Submitter  *contact.Submitter
}

// Model implements the Bubble Tea portfolio page.
type Model struct {
	doc       model.Document
	themes    *theme.Manager
	submitter *contact.Submitter
	st        styles

	nav     *navigation.Navigator
	reveals *reveal.Tracker
	vp      viewport.Model
	page    page

	width  int
	height int

	typing      bool
	typeOpts    typewriter.Options
	typeSession typewriter.Session
	heroText    string

	skillProgress map[string]int
	animating     bool

	filters     []string
	filterIndex int

	formOpen   bool
	form       contactForm
	submitting bool
	formErrGen int
	toast      string
	toastOK    bool
	toastGen   int
}

// NewModel constructs the page model. Invalid typewriter options are rejected.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		doc:           opts.Doc,
		themes:        opts.Themes,
		submitter:     opts.Submitter,
		nav:           navigation.New(pageSections()),
		reveals:       reveal.NewTracker(revealFraction),
		vp:            viewport.New(0, 0),
		skillProgress: map[string]int{},
		filters:       content.Filters(opts.Doc.Projects),
		form:          newContactForm(),
	}
	if opts.Typewriter != nil {
		normalized, err := opts.Typewriter.Normalize()
		if err != nil {
			return nil, fmt.Errorf("invalid typewriter options: %w", err)
		}
		m.typing = true
		m.typeOpts = normalized
	}
	if m.themes == nil {
		themes, err := theme.NewManager(context.Background(), nil, theme.FixedDetector(theme.Dark))
		if err != nil {
			return nil, err
		}
		m.themes = themes
	}
	if m.submitter == nil {
		m.submitter = contact.NewSubmitter("", 0, nil)
	}
	m.st = newStyles(m.themes.Palette())
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if !m.typing {
		return nil
	}
	return typeTick(m.typeOpts.StartDelay)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.layout()
	case typeTickMsg:
		return m, m.advanceTypewriter()
	case barTickMsg:
		return m, m.advanceBars()
	case tea.FocusMsg:
		return m, m.detectSystemTheme()
	case systemThemeMsg:
		m.themes.SystemChanged(msg.dark)
		m.st = newStyles(m.themes.Palette())
		return m, m.refresh()
	case submitResultMsg:
		return m, m.handleSubmitResult(msg.err)
	case toastExpiredMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
		}
		return m, nil
	case fieldErrorsExpiredMsg:
		if msg.gen == m.formErrGen {
			m.form.setErrors(nil)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.formOpen {
			return m, m.updateForm(msg)
		}
		return m, m.handleKey(msg)
	default:
		if m.formOpen {
			return m, m.form.update(msg)
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, tea.Batch(cmd, m.afterScroll())
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyHeight := m.bodyHeight()
	header := fitLines(m.renderNav(), m.width, headerHeight)
	var body string
	switch {
	case m.formOpen:
		modal := m.st.modal.Render(m.form.view(m.st, m.submitting))
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, modal)
	case m.nav.MenuOpen() && navigation.Compact(m.width):
		body = fitLines(m.renderMenu(), m.width, bodyHeight)
	default:
		body = fitLines(m.vp.View(), m.width, bodyHeight)
	}
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func typeTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return typeTickMsg{} })
}

func barTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return barTickMsg{} })
}

func (m *Model) advanceTypewriter() tea.Cmd {
	if !m.typing || m.typeSession.Stopped() {
		return nil
	}
	next, text, delay := typewriter.Step(m.typeSession, m.typeOpts)
	m.typeSession = next
	m.heroText = text
	cmd := m.refresh()
	if next.Stopped() {
		return cmd
	}
	return tea.Batch(cmd, typeTick(delay))
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *Model) layout() tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	m.vp.Width = m.width
	m.vp.Height = m.bodyHeight()
	m.form.setWidth(min(m.width-8, 70))
	return m.refresh()
}

// refresh re-renders the page, reveals what became visible, and starts bar
// animations for revealed skills.
func (m *Model) refresh() tea.Cmd {
	if m.width <= 0 {
		return nil
	}
	m.render()
	newly := m.reveals.Update(m.vp.YOffset, m.vp.Height)
	if len(newly) == 0 {
		return nil
	}
	m.render()
	return m.startBars()
}

func (m *Model) render() {
	m.page = m.buildPage(m.width)
	lines := m.page.lines
	// Pad so the last section can scroll to the top.
	if last, ok := m.page.offsets[sectionContact]; ok {
		for len(lines) < last+m.vp.Height {
			lines = append(lines, "")
		}
	}
	m.nav.SetOffsets(m.page.offsets)
	for id, span := range m.page.spans {
		if th, ok := m.page.thresholds[id]; ok {
			m.reveals.ObserveAt(id, span, th)
			continue
		}
		m.reveals.Observe(id, span)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) afterScroll() tea.Cmd {
	m.nav.Scroll(m.vp.YOffset)
	return m.refresh()
}

func (m *Model) scrollTo(offset int) tea.Cmd {
	m.vp.SetYOffset(offset)
	return m.afterScroll()
}

func (m *Model) startBars() tea.Cmd {
	if m.animating {
		return nil
	}
	for i, s := range m.doc.Skills {
		id := skillID(i)
		if m.reveals.Revealed(id) && m.skillProgress[id] < s.Level {
			m.animating = true
			return barTick(barDelay)
		}
	}
	return nil
}

func (m *Model) advanceBars() tea.Cmd {
	pending := false
	for i, s := range m.doc.Skills {
		id := skillID(i)
		if !m.reveals.Revealed(id) {
			continue
		}
		if p := m.skillProgress[id]; p < s.Level {
			m.skillProgress[id] = min(p+barStep, s.Level)
			if m.skillProgress[id] < s.Level {
				pending = true
			}
		}
	}
	cmd := m.refresh()
	if pending {
		return tea.Batch(cmd, barTick(barFrame))
	}
	m.animating = false
	return tea.Batch(cmd, m.startBars())
}

// detectSystemTheme re-reads the terminal background when the window regains
// focus. A stored theme ignores the result.
func (m *Model) detectSystemTheme() tea.Cmd {
	if m.themes.Stored() {
		return nil
	}
	themes := m.themes
	return func() tea.Msg {
		return systemThemeMsg{dark: themes.DetectSystem()}
	}
}

func (m *Model) currentFilter() string {
	if m.filterIndex < 0 || m.filterIndex >= len(m.filters) {
		return content.FilterAll
	}
	return m.filters[m.filterIndex]
}

func (m *Model) cycleFilter(delta int) tea.Cmd {
	count := len(m.filters)
	if count == 0 {
		return nil
	}
	m.filterIndex = ((m.filterIndex+delta)%count + count) % count
	// Cards are laid out again, so they reveal again.
	ids := make([]string, len(m.doc.Projects))
	for i := range ids {
		ids[i] = projectID(i)
	}
	m.reveals.Forget(ids...)
	return m.refresh()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q":
		return tea.Quit
	case "t":
		if _, err := m.themes.Toggle(context.Background()); err != nil {
			logErrf("%v\n", err)
		}
		m.st = newStyles(m.themes.Palette())
		return m.refresh()
	case "T":
		if err := m.themes.Clear(context.Background()); err != nil {
			logErrf("%v\n", err)
		}
		m.st = newStyles(m.themes.Palette())
		return m.refresh()
	case "tab", "n":
		off, _ := m.nav.Step(1)
		return m.scrollTo(off)
	case "shift+tab", "p":
		off, _ := m.nav.Step(-1)
		return m.scrollTo(off)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx, _ := strconv.Atoi(key)
		off, ok := m.nav.JumpIndex(idx - 1)
		if !ok {
			return nil
		}
		return m.scrollTo(off)
	case "f":
		return m.cycleFilter(1)
	case "F":
		return m.cycleFilter(-1)
	case "m":
		m.nav.ToggleMenu()
		return nil
	case "esc":
		m.nav.CloseMenu()
		return nil
	case "c":
		m.nav.CloseMenu()
		m.formOpen = true
		m.form.setFocus(0)
		return textinput.Blink
	case "g", "home":
		m.vp.GotoTop()
		return m.afterScroll()
	case "G", "end":
		m.vp.GotoBottom()
		return m.afterScroll()
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return tea.Batch(cmd, m.afterScroll())
	}
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.formOpen = false
		return nil
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return nil
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return nil
	case "enter":
		if m.form.lastFocused() {
			return m.submitForm()
		}
		m.form.setFocus(m.form.focus + 1)
		return nil
	case "ctrl+s":
		return m.submitForm()
	default:
		return m.form.update(msg)
	}
}

func (m *Model) submitForm() tea.Cmd {
	if m.submitting {
		return nil
	}
	form := m.form.value()
	if err := contact.Validate(form); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			return m.showFieldErrors(verr)
		}
		return nil
	}
	m.submitting = true
	sub := m.submitter
	return func() tea.Msg {
		return submitResultMsg{err: sub.Submit(context.Background(), form)}
	}
}

func (m *Model) showFieldErrors(verr *contact.ValidationError) tea.Cmd {
	m.form.setErrors(verr)
	m.formErrGen++
	gen := m.formErrGen
	return tea.Tick(messageTTL, func(time.Time) tea.Msg { return fieldErrorsExpiredMsg{gen: gen} })
}

func (m *Model) handleSubmitResult(err error) tea.Cmd {
	m.submitting = false
	if err == nil {
		m.form.reset()
		m.formOpen = false
		return m.showToast(contact.SuccessMessage, true)
	}
	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		return m.showFieldErrors(verr)
	}
	if errors.Is(err, contact.ErrInFlight) {
		return nil
	}
	logErrf("failed to submit contact form: %v\n", err)
	return m.showToast(contact.FailureMessage, false)
}

func (m *Model) showToast(text string, ok bool) tea.Cmd {
	m.toast = text
	m.toastOK = ok
	m.toastGen++
	gen := m.toastGen
	return tea.Tick(messageTTL, func(time.Time) tea.Msg { return toastExpiredMsg{gen: gen} })
}

func (m *Model) renderNav() string {
	sections := m.nav.Sections()
	active := m.nav.Active()
	var line string
	if navigation.Compact(m.width) {
		title := ""
		if active >= 0 {
			title = sections[active].Title
		}
		line = m.st.navActive.Render("☰ "+title) + m.st.muted.Render("  m: menu")
	} else {
		parts := make([]string, 0, len(sections))
		for i, s := range sections {
			if i == active {
				parts = append(parts, m.st.navActive.Render(s.Title))
			} else {
				parts = append(parts, m.st.navItem.Render(s.Title))
			}
		}
		line = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	if m.nav.Scrolled() {
		return m.st.navBarDown.Width(m.width).Render(line)
	}
	return line + "\n"
}

func (m *Model) renderMenu() string {
	active := m.nav.Active()
	lines := []string{""}
	for i, s := range m.nav.Sections() {
		label := fmt.Sprintf("  %d  %s", i+1, s.Title)
		if i == active {
			lines = append(lines, m.st.navActive.Render(label))
		} else {
			lines = append(lines, m.st.navItem.Render(label))
		}
	}
	lines = append(lines, "", m.st.muted.Render("  esc: close"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.toast != "" {
		if m.toastOK {
			return m.st.toastOK.Render(m.toast)
		}
		return m.st.toastErr.Render(m.toast)
	}
	help := "tab: next  1-7: jump  f: filter  t: theme  c: contact  q: quit"
	return m.st.footer.Render(truncateLine(help, m.width))
}

func fitLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
