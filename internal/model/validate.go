package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateIssue checks an Issue for constraint violations before it is sent
// to the daemon. It returns a *ValidationError if any rules fail.
func ValidateIssue(i *Issue) error {
	var ve ValidationError

	// Title: required and at most 500 characters.
	title := strings.TrimSpace(i.Title)
	if title == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	} else if len([]rune(title)) > 500 {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "must be 500 characters or fewer"})
	}

	// Priority: must be 0-4.
	if i.Priority < 0 || i.Priority > 4 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "priority",
			Message: fmt.Sprintf("must be between 0 and 4, got %d", i.Priority),
		})
	}

	// Type: must be non-empty (issue types are extensible).
	if !i.IssueType.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "issue_type",
			Message: "is required",
		})
	}

	// ClosedAt consistency with Status.
	if i.Status == StatusClosed && i.ClosedAt == nil {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "closed_at",
			Message: "is required when status is closed",
		})
	}
	if i.Status != StatusClosed && i.ClosedAt != nil {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "closed_at",
			Message: "must be nil when status is not closed",
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
