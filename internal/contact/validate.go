// Package contact validates the contact form and relays it to the form endpoint.
package contact

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/verte-zerg/tuifolio/internal/model"
)

// Field names used in validation errors.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldInstitute = "institute"
	FieldSubject   = "subject"
	FieldRating    = "rating"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError is a validation failure on one field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks form and returns a *ValidationError listing every
// invalid field, or nil.
func Validate(form model.ContactForm) error {
	var fields []FieldError
	if len([]rune(strings.TrimSpace(form.Name))) < 2 {
		fields = append(fields, FieldError{FieldName, "Please enter a valid name"})
	}
	if !emailPattern.MatchString(form.Email) {
		fields = append(fields, FieldError{FieldEmail, "Please enter a valid email address"})
	}
	if len([]rune(strings.TrimSpace(form.Subject))) < 3 {
		fields = append(fields, FieldError{FieldSubject, "Please enter a subject"})
	}
	if len([]rune(strings.TrimSpace(form.Institute))) < 2 {
		fields = append(fields, FieldError{FieldInstitute, "Please enter your institute/organization"})
	}
	if !validRating(form.Rating) {
		fields = append(fields, FieldError{FieldRating, "Please select a rating"})
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func validRating(rating string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(rating))
	return err == nil && n >= 1 && n <= 5
}
