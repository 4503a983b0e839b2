// Package apperr carries the error taxonomy exposed on the wire: not-found,
// validation, unauthenticated, forbidden. Storage-level failures are wrapped
// as internal before they reach a handler so raw driver errors never leak.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnauthenticated
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal server error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound is also used for rows that exist but belong to someone else, so a
// caller cannot probe for other users' invitations.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// StatusCode maps an error to its HTTP status. Anything outside the taxonomy
// is a 500.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
