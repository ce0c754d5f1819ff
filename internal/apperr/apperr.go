package apperr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is a validation message attached to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Field builds a FieldError with a formatted message.
func Field(field, format string, args ...interface{}) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports input the caller can correct and resubmit.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// Validation returns a ValidationError. An empty message is derived from the fields.
func Validation(msg string, fields ...FieldError) error {
	if msg == "" {
		msg = "The given data was invalid."
		if len(fields) > 0 {
			msg = fields[0].Message
		}
	}
	return &ValidationError{Message: msg, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// ByField groups field messages the way the HTTP layer renders them.
func (e *ValidationError) ByField() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}

// NotFoundError means the request was well formed but targets nothing.
type NotFoundError struct {
	Message string
}

// NotFound returns a NotFoundError.
func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
