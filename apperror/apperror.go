// Package apperror holds the error kinds shared by the HTTP and realtime
// surfaces. Kinds are sentinels, match them with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid or expired credential")
	ErrForbidden         = errors.New("not allowed")
	ErrValidation        = errors.New("validation failed")
	ErrPersistence       = errors.New("storage unavailable")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
)

// Error carries a client-safe message next to its kind and the internal cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func Validation(message string) *Error {
	return New(ErrValidation, message)
}

func Forbidden(message string) *Error {
	return New(ErrForbidden, message)
}

func NotFound(message string) *Error {
	return New(ErrNotFound, message)
}

func Persistence(message string, cause error) *Error {
	return Wrap(ErrPersistence, message, cause)
}

// PublicMessage is what a client may see for err. The cause is never
// included; anything that is not an *Error collapses to an opaque text.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "internal server error"
	}
	return appErr.Message
}
