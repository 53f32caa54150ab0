package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuifolio/internal/contact"
	"github.com/verte-zerg/tuifolio/internal/model"
)

var formFields = []struct {
	field       string
	prompt      string
	placeholder string
	limit       int
}{
	{contact.FieldName, "Name:      ", "Your name", 100},
	{contact.FieldEmail, "Email:     ", "you@example.com", 200},
	{contact.FieldInstitute, "Institute: ", "School or organization", 200},
	{contact.FieldSubject, "Subject:   ", "What is this about?", 300},
	{contact.FieldRating, "Rating:    ", "1-5", 1},
}

type contactForm struct {
	inputs []textinput.Model
	focus  int
	errors map[string]string
}

func newContactForm() contactForm {
	f := contactForm{errors: map[string]string{}}
	for _, spec := range formFields {
		input := textinput.New()
		input.Prompt = spec.prompt
		input.Placeholder = spec.placeholder
		input.CharLimit = spec.limit
		input.Cursor.SetMode(cursor.CursorBlink)
		f.inputs = append(f.inputs, input)
	}
	f.inputs[0].Focus()
	return f
}

func (f *contactForm) value() model.ContactForm {
	return model.ContactForm{
		Name:      f.inputs[0].Value(),
		Email:     f.inputs[1].Value(),
		Institute: f.inputs[2].Value(),
		Subject:   f.inputs[3].Value(),
		Rating:    f.inputs[4].Value(),
	}
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.errors = map[string]string{}
	f.setFocus(0)
}

func (f *contactForm) setFocus(i int) {
	count := len(f.inputs)
	if count == 0 {
		return
	}
	i = (i%count + count) % count
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *contactForm) lastFocused() bool {
	return f.focus == len(f.inputs)-1
}

func (f *contactForm) setErrors(verr *contact.ValidationError) {
	f.errors = map[string]string{}
	if verr == nil {
		return
	}
	for _, fe := range verr.Fields {
		f.errors[fe.Field] = fe.Message
	}
}

func (f *contactForm) setWidth(width int) {
	for i := range f.inputs {
		promptWidth := lipgloss.Width(f.inputs[i].Prompt)
		f.inputs[i].Width = max(10, width-promptWidth-2)
	}
}

func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *contactForm) view(st styles, loading bool) string {
	lines := []string{st.heading.Render("Contact"), ""}
	for i, input := range f.inputs {
		lines = append(lines, input.View())
		if msg, ok := f.errors[formFields[i].field]; ok {
			lines = append(lines, st.fieldError.Render("  "+msg))
		}
	}
	lines = append(lines, "")
	if loading {
		lines = append(lines, st.muted.Render("Sending..."))
	} else {
		lines = append(lines, st.muted.Render("tab/shift+tab: field  enter: next/send  ctrl+s: send  esc: close"))
	}
	return strings.Join(lines, "\n")
}
