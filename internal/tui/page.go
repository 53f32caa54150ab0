package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuifolio/internal/content"
	"github.com/verte-zerg/tuifolio/internal/model"
	"github.com/verte-zerg/tuifolio/internal/navigation"
	"github.com/verte-zerg/tuifolio/internal/reveal"
)

const (
	sectionHome         = "home"
	sectionSkills       = "skills"
	sectionProjects     = "projects"
	sectionExperience   = "experience"
	sectionEducation    = "education"
	sectionAchievements = "achievements"
	sectionContact      = "contact"
)

func pageSections() []navigation.Section {
	return []navigation.Section{
		{ID: sectionHome, Title: "Home"},
		{ID: sectionSkills, Title: "Skills"},
		{ID: sectionProjects, Title: "Projects"},
		{ID: sectionExperience, Title: "Experience"},
		{ID: sectionEducation, Title: "Education"},
		{ID: sectionAchievements, Title: "Achievements"},
		{ID: sectionContact, Title: "Contact"},
	}
}

type page struct {
	lines      []string
	offsets    map[string]int
	spans      map[string]reveal.Span
	thresholds map[string]reveal.Threshold
}

type pageBuilder struct {
	p     page
	width int
}

func newPageBuilder(width int) *pageBuilder {
	if width < 20 {
		width = 20
	}
	return &pageBuilder{
		p: page{
			offsets:    map[string]int{},
			spans:      map[string]reveal.Span{},
			thresholds: map[string]reveal.Threshold{},
		},
		width: width,
	}
}

func (b *pageBuilder) section(id string) {
	b.p.offsets[id] = len(b.p.lines)
}

func (b *pageBuilder) add(lines ...string) {
	b.p.lines = append(b.p.lines, lines...)
}

func (b *pageBuilder) block(s string) {
	b.add(strings.Split(s, "\n")...)
}

func (b *pageBuilder) element(id string, lines []string) {
	start := len(b.p.lines)
	b.add(lines...)
	b.p.spans[id] = reveal.Span{Start: start, End: len(b.p.lines)}
}

// elementAt is element with its own reveal threshold.
func (b *pageBuilder) elementAt(id string, lines []string, threshold reveal.Threshold) {
	b.element(id, lines)
	b.p.thresholds[id] = threshold
}

func (b *pageBuilder) blank() {
	b.add("")
}

func (m *Model) buildPage(width int) page {
	b := newPageBuilder(width)
	m.renderHome(b)
	m.renderSkills(b)
	m.renderProjects(b)
	m.renderTimeline(b, sectionExperience, "Experience", m.doc.Experience)
	m.renderTimeline(b, sectionEducation, "Education", m.doc.Education)
	m.renderAchievements(b)
	m.renderContact(b)
	return b.p
}

func (m *Model) renderHome(b *pageBuilder) {
	b.section(sectionHome)
	b.blank()
	name := m.doc.Profile.Name
	if name == "" {
		name = "Portfolio"
	}
	b.add(m.st.name.Render(name))
	if m.typing {
		hero := wrapStyledRunes(buildHeroRunes(m.heroText, m.st.accent, m.st.cursor), b.width)
		b.block(hero)
	}
	b.blank()
	for _, line := range wrapText(m.doc.Profile.Summary, b.width, m.st.text) {
		b.add(line)
	}
	b.blank()
	b.add(m.st.muted.Render(fmt.Sprintf("t: %s", m.themes.ToggleLabel())))
	b.blank()
}

func (m *Model) renderHeading(b *pageBuilder, title string) {
	b.add(m.st.heading.Render(title))
	b.blank()
}

func (m *Model) revealStyle(id string, base lipgloss.Style) lipgloss.Style {
	if m.reveals.Revealed(id) {
		return base
	}
	return m.st.hidden
}

func (m *Model) renderSkills(b *pageBuilder) {
	b.section(sectionSkills)
	m.renderHeading(b, "Skills")
	if len(m.doc.Skills) == 0 {
		b.add(m.st.muted.Render("No skills listed."))
		b.blank()
		return
	}
	nameWidth := 0
	for _, s := range m.doc.Skills {
		nameWidth = max(nameWidth, runewidth.StringWidth(s.Name))
	}
	barWidth := min(max(b.width-nameWidth-8, 10), 40)
	for i, s := range m.doc.Skills {
		id := skillID(i)
		progress := m.skillProgress[id]
		line := m.revealStyle(id, m.st.text).Render(runewidth.FillRight(s.Name, nameWidth)) + " " +
			renderBar(progress, barWidth, m.st.barFill, m.st.barEmpty) + " " +
			m.revealStyle(id, m.st.muted).Render(fmt.Sprintf("%3d%%", s.Level))
		b.elementAt(id, []string{line}, skillRevealFraction)
	}
	b.blank()
}

func renderBar(percent, width int, fill, empty lipgloss.Style) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return fill.Render(strings.Repeat("█", filled)) + empty.Render(strings.Repeat("░", width-filled))
}

func (m *Model) renderProjects(b *pageBuilder) {
	b.section(sectionProjects)
	m.renderHeading(b, "Projects")

	filters := make([]string, 0, len(m.filters))
	for i, f := range m.filters {
		if i == m.filterIndex {
			filters = append(filters, m.st.filterOn.Render(f))
		} else {
			filters = append(filters, m.st.filterOff.Render(f))
		}
	}
	b.add(strings.Join(filters, "  ") + m.st.muted.Render("   (f: filter)"))
	b.blank()

	projects := content.FilterProjects(m.doc.Projects, m.currentFilter())
	if len(projects) == 0 {
		b.add(m.st.muted.Render("No projects in this category."))
		b.blank()
		return
	}
	cardWidth := min(b.width, 100)
	inner := max(cardWidth-4, 10)
	for i, p := range projects {
		id := projectID(i)
		text := m.revealStyle(id, m.st.text)
		var lines []string
		lines = append(lines, m.revealStyle(id, m.st.name).Render(p.Title))
		lines = append(lines, wrapText(p.Description, inner, text)...)
		if len(p.Technologies) > 0 {
			lines = append(lines, wrapText(strings.Join(p.Technologies, " · "), inner, m.revealStyle(id, m.st.tag))...)
		}
		var links []string
		if p.GitHub != "" {
			links = append(links, "GitHub: "+p.GitHub)
		}
		if p.Live != "" {
			links = append(links, "Live Demo: "+p.Live)
		}
		for _, link := range links {
			lines = append(lines, m.revealStyle(id, m.st.muted).Render(truncateLine(link, inner)))
		}
		card := m.st.card.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
		b.element(id, strings.Split(card, "\n"))
	}
	b.blank()
}

func (m *Model) renderTimeline(b *pageBuilder, section, title string, entries []model.TimelineEntry) {
	b.section(section)
	m.renderHeading(b, title)
	if len(entries) == 0 {
		b.add(m.st.muted.Render("Nothing here yet."))
		b.blank()
		return
	}
	for i, e := range entries {
		id := section + ":" + strconv.Itoa(i)
		lines := []string{
			m.revealStyle(id, m.st.accent).Render("● " + e.Period),
			m.revealStyle(id, m.st.name).Render("  " + e.Heading()),
			m.revealStyle(id, m.st.muted).Render("  " + e.Subheading()),
		}
		for _, line := range wrapText(e.Description, b.width-2, m.revealStyle(id, m.st.text)) {
			lines = append(lines, "  "+line)
		}
		lines = append(lines, "")
		b.element(id, lines)
	}
}

func (m *Model) renderAchievements(b *pageBuilder) {
	b.section(sectionAchievements)
	m.renderHeading(b, "Achievements")
	if len(m.doc.Achievements) == 0 {
		b.add(m.st.muted.Render("Nothing here yet."))
		b.blank()
		return
	}
	for i, a := range m.doc.Achievements {
		id := sectionAchievements + ":" + strconv.Itoa(i)
		lines := []string{m.revealStyle(id, m.st.name).Render(strings.TrimSpace(a.Icon + " " + a.Title))}
		for _, line := range wrapText(a.Description, b.width-2, m.revealStyle(id, m.st.text)) {
			lines = append(lines, "  "+line)
		}
		lines = append(lines, "")
		b.element(id, lines)
	}
}

func (m *Model) renderContact(b *pageBuilder) {
	b.section(sectionContact)
	m.renderHeading(b, "Contact")
	b.add(m.st.text.Render("Have a question or feedback? Press c to open the contact form."))
	b.blank()
}

func skillID(i int) string {
	return sectionSkills + ":" + strconv.Itoa(i)
}

// projectID keys a card by its position in the filtered list.
func projectID(i int) string {
	return sectionProjects + ":" + strconv.Itoa(i)
}
