package types

import (
	"errors"
	"fmt"
	"strings"
)

// FieldIssue describes why a single field failed validation
type FieldIssue struct {
	Field   string
	Message string
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationError collects one issue per invalid field so every problem can be
// reported at once instead of stopping at the first one.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return "invalid arguments: " + strings.Join(lines, "; ")
}

// Add records an issue for the field
func (e *ValidationError) Add(field, message string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: message})
}

// Check records err as an issue for field when err is non-nil
func (e *ValidationError) Check(field string, err error) {
	if err == nil {
		return
	}
	var nested *ValidationError
	if errors.As(err, &nested) {
		for _, issue := range nested.Issues {
			e.Add(field+"."+issue.Field, issue.Message)
		}
		return
	}
	e.Add(field, err.Error())
}

// OrNil returns nil when no issue was recorded
func (e *ValidationError) OrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// IsValidationError checks if the error is or wraps a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return err != nil && errors.As(err, &verr)
}
