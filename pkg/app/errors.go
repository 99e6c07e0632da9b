package app

import (
	"errors"
	"fmt"

	"tableflip.dev/contentcal/pkg/entry"
)

// ValidationError reports a missing or malformed field on create or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("app: invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a reference to an unknown entry id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("app: entry %q not found", e.ID)
}

// TransitionError reports a status change that breaks the lifecycle.
type TransitionError struct {
	ID   string
	From entry.Status
	To   entry.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("app: entry %q cannot move from %s to %s", e.ID, e.From, e.To)
}

// VersionConflictError reports a stale expected version.
type VersionConflictError struct {
	ID       string
	Expected int
	Actual   int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("app: entry %q is at version %d, expected %d", e.ID, e.Actual, e.Expected)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
