package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType is the type of a qualification field on a booking page
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldSelect   FieldType = "select"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{4,18}[0-9]$`)
)

// QualificationField is one admin-defined field of a page's qualification
// form. The set of fields varies per page and is configured at runtime.
type QualificationField struct {
	ID         int64
	PageID     int64
	Label      string
	Type       FieldType
	Options    []string // answers allowed for select fields
	IsRequired bool
	Position   int
}

// Validate checks a submitted answer against the field's type.
// The empty string is only rejected here for required fields; the caller
// decides whether an answer must be present at all.
func (f *QualificationField) Validate(value string) error {
	value = strings.TrimSpace(value)

	if value == "" {
		if f.IsRequired {
			return fmt.Errorf("field %q is required", f.Label)
		}
		return nil
	}

	switch f.Type {
	case FieldText:
		if len(value) > MaxTextAnswerLength {
			return fmt.Errorf("field %q exceeds %d characters", f.Label, MaxTextAnswerLength)
		}
	case FieldTextarea:
		if len(value) > MaxTextareaAnswerLength {
			return fmt.Errorf("field %q exceeds %d characters", f.Label, MaxTextareaAnswerLength)
		}
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return fmt.Errorf("field %q is not a valid email", f.Label)
		}
	case FieldPhone:
		if !phonePattern.MatchString(value) {
			return fmt.Errorf("field %q is not a valid phone number", f.Label)
		}
	case FieldSelect:
		for _, opt := range f.Options {
			if value == opt {
				return nil
			}
		}
		return fmt.Errorf("field %q has no option %q", f.Label, value)
	default:
		return fmt.Errorf("field %q has unknown type %q", f.Label, f.Type)
	}

	return nil
}

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s looks like a phone number
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidFieldType reports whether t is a known qualification field type
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldTextarea, FieldEmail, FieldPhone, FieldSelect:
		return true
	default:
		return false
	}
}
