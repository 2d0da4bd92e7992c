package store

import (
	"errors"
	"fmt"
)

// ErrNotLoggedIn is returned by mutations that require a session user.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrNotAuthorized is returned when the session user's role lacks the
// capability required by a mutation.
var ErrNotAuthorized = errors.New("not authorized")

// ValidationError reports a rejected field value, such as a progress
// percentage outside [0, 100] or a task referencing a missing project.
// Lookups that miss on update/delete are deliberately NOT validation
// errors; those stay silent no-ops.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
