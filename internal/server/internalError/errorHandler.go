package internalerror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindClient Kind = iota + 1
	KindDenied
	KindNotFound
	KindConflict
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindDenied:
		return "denied"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the outcome of a refused or failed file operation.
// Reason is user-facing copy; match on Kind, not on Reason.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Reason == "" {
			return e.Err.Error()
		}
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Client(reason string) *Error {
	return &Error{Kind: KindClient, Reason: reason}
}

func Denied(reason string) *Error {
	return &Error{Kind: KindDenied, Reason: reason}
}

func NotFound(reason string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func IO(op string, err error) *Error {
	return &Error{Kind: KindIO, Reason: op, Err: err}
}

// KindOf returns the kind of err, or 0 when err is nil or not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Status(err error) int {
	switch KindOf(err) {
	case KindClient:
		return http.StatusBadRequest
	case KindDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text shown to a client for err. Errors outside the
// taxonomy are warped so their detail is hidden in release builds.
func Message(err error) string {
	if KindOf(err) != 0 {
		return err.Error()
	}
	return Warp(err).Error()
}
