// Package content loads the portfolio content document.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/verte-zerg/tuifolio/internal/model"
)

//go:embed default.json
var defaultDocument []byte

// Default returns the built-in content document.
func Default() model.Document {
	doc, err := Decode(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("content: embedded document is invalid: %v", err))
	}
	return doc
}

// Load reads and validates the content document at path. An empty path
// returns the built-in document.
func Load(path string) (model.Document, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read content: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return model.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses and validates a content document. Missing top-level keys
// decode as empty sections.
func Decode(data []byte) (model.Document, error) {
	var doc model.Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return model.Document{}, fmt.Errorf("failed to decode content: %w", err)
	}
	if err := Validate(doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// Validate checks the fields the page relies on.
func Validate(doc model.Document) error {
	for i, s := range doc.Skills {
		if s.Name == "" {
			return fmt.Errorf("skills[%d]: name is empty", i)
		}
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("skills[%d] %q: level %d not in 0-100", i, s.Name, s.Level)
		}
	}
	for i, p := range doc.Projects {
		if p.Title == "" {
			return fmt.Errorf("projects[%d]: title is empty", i)
		}
	}
	for i, e := range doc.Experience {
		if e.Heading() == "" {
			return fmt.Errorf("experience[%d]: title is empty", i)
		}
	}
	for i, e := range doc.Education {
		if e.Heading() == "" {
			return fmt.Errorf("education[%d]: degree is empty", i)
		}
	}
	for i, a := range doc.Achievements {
		if a.Title == "" {
			return fmt.Errorf("achievements[%d]: title is empty", i)
		}
	}
	return nil
}
