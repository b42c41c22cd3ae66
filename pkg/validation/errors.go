package validation

import (
	"strings"
)

// Error codes for machine-readable identification.
const (
	ErrCodeRequired = "required"
	ErrCodeType     = "type"
	ErrCodeEnum     = "enum"
	ErrCodeSchema   = "schema"
)

// FieldError describes a single schema violation.
type FieldError struct {
	// Field is the dotted path of the offending value ("" for the document root).
	Field string `json:"field"`

	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

func (e *FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Error is returned when a document does not satisfy a schema.
type Error struct {
	Schema string        `json:"schema"`
	Fields []*FieldError `json:"fields"`
}

func (e *Error) add(fe *FieldError) {
	e.Fields = append(e.Fields, fe)
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "document does not match " + e.Schema
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "document does not match " + e.Schema + ": " + strings.Join(parts, "; ")
}

// HasField reports whether a violation was recorded for the given field path.
func (e *Error) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
