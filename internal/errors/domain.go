package errors

import (
	stderrors "errors"
)

// Failure kinds returned by the store and the services built on it.
// Match them with errors.Is.
var (
	ErrNotFound    = stderrors.New("not found")
	ErrValidation  = stderrors.New("validation failed")
	ErrConflict    = stderrors.New("conflict")
	ErrReferential = stderrors.New("referenced record not found")
	ErrForbidden   = stderrors.New("forbidden")
)

// Error is a domain failure with a kind and a stable, client-facing code
// such as "task-not-found".
type Error struct {
	Kind error
	Code string
}

func (e *Error) Error() string {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates a domain error of the given kind.
func New(kind error, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// CodeOf returns the code of the first *Error in err's chain, or fallback.
func CodeOf(err error, fallback string) string {
	var de *Error
	if stderrors.As(err, &de) {
		return de.Code
	}
	return fallback
}
