package domain

import "strings"

// FieldError describes a single invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when user input fails domain rules.
// It carries one entry per offending field so callers can surface field-level messages.
type ValidationError struct {
	// Subject names what was validated in Error(), e.g. "trade"
	Subject string
	Fields  []FieldError
}

// Add records a field failure
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	subject := e.Subject
	if subject == "" {
		subject = "input"
	}
	return "invalid " + subject + ": " + strings.Join(parts, "; ")
}

// Field returns the message recorded for a field, if any
func (e *ValidationError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}
