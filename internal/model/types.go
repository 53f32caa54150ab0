// Package model defines shared data structures.
package model

import "time"

// Config defines settings for the portfolio TUI.
type Config struct {
	ContentPath   string
	Endpoint      string
	TimeoutMs     int
	ThemeFallback string

	Phrases       []string
	TypeSpeedMs   int
	DeleteSpeedMs int
	PauseMs       int
	Loop          bool
}

// Document is the portfolio content file.
type Document struct {
	Profile      Profile         `json:"profile"`
	Skills       []Skill         `json:"skills"`
	Projects     []Project       `json:"projects"`
	Experience   []TimelineEntry `json:"experience"`
	Education    []TimelineEntry `json:"education"`
	Achievements []Achievement   `json:"achievements"`
}

// Profile is the hero block of the page.
type Profile struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Skill is one entry of the skills grid. Level is a percentage.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category,omitempty"`
}

// Project is one card of the project gallery.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Categories   []string `json:"categories"`
	GitHub       string   `json:"github,omitempty"`
	Live         string   `json:"live,omitempty"`
}

// TimelineEntry covers both experience (title/company) and education
// (degree/institution) items.
type TimelineEntry struct {
	Period      string `json:"period"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Description string `json:"description"`
}

// Heading returns the degree, falling back to the title.
func (e TimelineEntry) Heading() string {
	if e.Degree != "" {
		return e.Degree
	}
	return e.Title
}

// Subheading returns the institution, falling back to the company.
func (e TimelineEntry) Subheading() string {
	if e.Institution != "" {
		return e.Institution
	}
	return e.Company
}

// Achievement is one card of the achievements grid.
type Achievement struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactForm holds the fields of the contact form.
type ContactForm struct {
	Name      string
	Email     string
	Institute string
	Subject   string
	Rating    string
}

// Submission status values.
const (
	SubmissionSent   = "sent"
	SubmissionFailed = "failed"
)

// Submission records one contact form relay attempt.
type Submission struct {
	ID        string
	CreatedAt time.Time
	Form      ContactForm
	Status    string
	Error     string
}
