package cli

import (
	"fmt"
	"strings"
)

// NotFoundError indicates no task matches a reference.
type NotFoundError struct {
	Ref string // the reference the user typed
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.Ref)
}

// AmbiguousIDError indicates a short reference matches more than one task.
type AmbiguousIDError struct {
	Ref     string   // the reference the user typed
	Matches []string // short forms of the matching IDs
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("task reference %q is ambiguous, matches: %s (use more characters)",
		e.Ref, strings.Join(e.Matches, ", "))
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

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
