// Package serrors provides semantic error kinds for the name-discovery
// engine. A Kind is a comparable sentinel that categorizes a failure
// (bad request, provider failure, timeout, ...) while the Error wrapper
// carries an optional cause and message and cooperates with errors.Is/As.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is the marker interface implemented by semantic error categories
// created with NewKind. Kinds are sentinels: compare them with errors.Is.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind with the given name.
func NewKind(name string) Kind { return kind{s: name} }

// Kinds used across the engine.
var (
	// ErrBadRequest indicates a malformed inbound request (empty keyword,
	// non-positive counts).
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrProvider indicates an availability provider returned an unusable
	// response (non-2xx, malformed payload).
	ErrProvider = NewKind("PROVIDER_FAILURE")
	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates a dependency is temporarily unreachable.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrInternal indicates a programming error or corrupt embedded data.
	ErrInternal = NewKind("INTERNAL")
)

// Error is a semantic error: a kind sentinel plus an optional wrapped cause
// and message. errors.Is/As match against both the kind and the cause chain.
//
// Error() formatting: "<msg>: <cause>" when both are set, otherwise whichever
// is present, falling back to the kind's name.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a semantic error with a kind and a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a semantic error that wraps a concrete cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly constructs a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap exposes the wrapped cause to errors.Unwrap/Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind sentinel or the wrapped cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches target against the kind sentinel or the wrapped cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause, which may be nil.
func (e *Error) Cause() error { return e.err }
