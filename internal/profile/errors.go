package profile

import (
	"fmt"
	"strings"
)

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError lists every problem found in a profile file
type ValidationError struct {
	Path   string
	Issues []Issue
}

// Issue is one profile validation problem
type Issue struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("profile validation failed for %s:", e.Path))
	for _, issue := range e.Issues {
		sb.WriteString(fmt.Sprintf("\n  → %s: %s", issue.Field, issue.Message))
	}
	return sb.String()
}
