// Package apierr defines the typed error taxonomy raised by services and
// converted into the uniform response envelope at the HTTP boundary.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the HTTP status it maps to.
type Kind int

const (
	KindInvalidArgument Kind = iota // 400
	KindUnauthorized                // 401
	KindNotFound                    // 404
	KindConflict                    // 409
	KindInternal                    // 500
)

// Error is a typed API error. Message is a short human string safe to
// return to clients; Err (optional) carries the internal cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status for the error kind.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidArgument:
		return 400
	case KindUnauthorized:
		return 401
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// From extracts the typed error from err, wrapping unexpected errors as
// Internal so no raw detail leaks into the response message.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("Something went wrong", err)
}

// IsKind reports whether err is a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
