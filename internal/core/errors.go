package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownResource is returned for keys missing from the registry.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrReadOnly is returned when editing a read-only resource.
	ErrReadOnly = errors.New("resource is read-only")

	// ErrAlreadySent is returned when sending a broadcast twice.
	ErrAlreadySent = errors.New("newsletter already sent")
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name
	Value   string // The rejected value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every problem found in a submitted form.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField returns the first message per field, for form rendering.
func (e ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(e))
	for _, ve := range e {
		if _, ok := out[ve.Field]; !ok {
			out[ve.Field] = ve.Message
		}
	}
	return out
}

// AsValidationErrors unwraps err into ValidationErrors.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
