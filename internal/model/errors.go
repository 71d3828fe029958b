package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the storage adapters and the schedule controller.
var (
	ErrNotFound         = errors.New("model: event not found")
	ErrPermissionDenied = errors.New("model: permission denied")
	ErrUnavailable      = errors.New("model: store unavailable")
	ErrValidation       = errors.New("model: validation failed")
	ErrInvalidCategory  = errors.New("model: invalid event category")
)

// FieldError describes a validation failure for one form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level failures for a single record.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field)
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Field returns the message recorded for field, or "".
func (e *ValidationError) Field(name string) string {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// ParseError reports stored data that could not be decoded. Callers recover
// from it by starting with an empty event set.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model: parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
