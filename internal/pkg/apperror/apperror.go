// Package apperror holds the error categories shared by every domain.
// Domain sentinels wrap one of these so callers can branch on the category
// with errors.Is without knowing the concrete domain error.
package apperror

import "errors"

var (
	// ErrValidation marks malformed input: unknown employee, bad date range, unknown leave type.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks a transition that is not permitted from the current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict marks a duplicate unique key.
	ErrConflict = errors.New("conflict")
)

// New returns a sentinel that reports msg and matches kind under errors.Is.
func New(kind error, msg string) error {
	return &categorized{kind: kind, msg: msg}
}

type categorized struct {
	kind error
	msg  string
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() error { return e.kind }
