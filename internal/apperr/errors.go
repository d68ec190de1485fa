// Package apperr defines the error kinds returned by services and stores
// and how each one maps onto an HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindConflict
	KindNotFound
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal"
	}
}

// Error carries a Kind and a client-safe message. Err holds the underlying
// cause, which is logged but never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidInput(message string) error {
	return New(KindInvalidInput, message)
}

func Unauthenticated(message string) error {
	return New(KindUnauthenticated, message)
}

func Forbidden(message string) error {
	return New(KindForbidden, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

// InvalidCredentials is shared by "no such user" and "wrong password".
func InvalidCredentials() error {
	return New(KindInvalidCredentials, "Invalid credentials")
}

func Internal(err error) error {
	return Wrap(KindInternal, "Server error", err)
}

// KindOf reports the Kind of err. Errors that are not *Error are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Server error"
}

// HTTPStatus maps a Kind to its response status. Conflict and
// InvalidCredentials are reported as 400 like any other bad request.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput, KindConflict, KindInvalidCredentials:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
