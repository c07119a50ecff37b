// Package apperr defines the application error taxonomy shared by the auth
// core and the HTTP layer. Errors carry an HTTP status so the Fiber error
// handler can translate them without inspecting messages.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindConflict       Kind = "conflict"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Error is the unified application error. None of these kinds are retryable
// from the caller's perspective.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the underlying error for internal diagnostics. The
// external message is unchanged.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports malformed client input. The client must correct the
// request before retrying.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Authentication reports bad credentials or an invalid, expired, or
// wrong-kind token.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization reports an authenticated caller lacking the required role.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Conflict reports a uniqueness or state conflict, e.g. a duplicate
// canonical phone number.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal reports an unexpected failure.
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
