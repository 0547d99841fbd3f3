package ui

import (
	"regexp"
	"strings"
)

// emailPattern is the simple local@domain.tld shape; it intentionally does
// not attempt full RFC 5322 validation.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether the string looks like an email address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// FieldType distinguishes validation rules for form fields.
type FieldType string

const (
	FieldText  FieldType = "text"
	FieldEmail FieldType = "email"
)

// Field is one form field with its current value and validity state.
type Field struct {
	Name     string
	Value    string
	Type     FieldType
	Required bool
	Invalid  bool
}

// Form is a named set of fields.
type Form struct {
	ID     string
	Fields []Field
}

// Validate checks every field and marks its validity state: required fields
// must be non-empty, and email fields with a value must match the email
// pattern. Returns overall validity.
func (f *Form) Validate() bool {
	valid := true
	for i := range f.Fields {
		field := &f.Fields[i]
		field.Invalid = false

		value := strings.TrimSpace(field.Value)
		if field.Required && value == "" {
			field.Invalid = true
		} else if field.Type == FieldEmail && value != "" && !ValidateEmail(value) {
			field.Invalid = true
		}
		if field.Invalid {
			valid = false
		}
	}
	return valid
}
