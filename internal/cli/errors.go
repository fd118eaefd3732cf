package cli

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a profile or command was not found.
type NotFoundError struct {
	Type string // "profile" or "command"
	ID   string // the ID that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects several validation failures for one form.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
