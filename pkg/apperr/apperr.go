// Package apperr holds the sentinel errors shared by services and handlers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrInvalid       = errors.New("invalid request")
	ErrQuotaExceeded = errors.New("plan limit reached")
)

// Invalid wraps ErrInvalid with a message the client can show as-is.
func Invalid(msg string) error {
	return &detailed{msg: msg, kind: ErrInvalid}
}

func Conflict(msg string) error {
	return &detailed{msg: msg, kind: ErrConflict}
}

func Forbidden(msg string) error {
	return &detailed{msg: msg, kind: ErrForbidden}
}

func Quota(msg string) error {
	return &detailed{msg: msg, kind: ErrQuotaExceeded}
}

type detailed struct {
	msg  string
	kind error
}

func (e *detailed) Error() string { return e.msg }
func (e *detailed) Unwrap() error { return e.kind }
