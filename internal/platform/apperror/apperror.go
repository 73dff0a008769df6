// Package apperror holds error types shared across service boundaries.
// Services keep their own sentinel errors; the types here exist so handlers
// can map field-tagged validation failures uniformly.
package apperror

import "strings"

// FieldError tags a single validation failure with the offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failing field for one request, so a caller
// that omits several required fields learns about all of them at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidation returns a ValidationError for the given fields.
func NewValidation(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
