package railway

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

const requiredMessage = "This field is required."

// ValidationError reports malformed client input against a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Required reports a missing mandatory field.
func Required(field string) error {
	return invalid(field, requiredMessage)
}
