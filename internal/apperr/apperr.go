// Package apperr provides classified application errors.
// Services return these so callers can inspect the kind of rule
// violation instead of matching on message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind categorizes an application error.
type Kind int

const (
	// KindInvalid marks malformed or missing input.
	KindInvalid Kind = iota
	// KindNotFound marks a missing referenced entity.
	KindNotFound
	// KindConflict marks a business rule blocking well-formed input.
	KindConflict
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is an application error with a kind and a human-readable message.
type Error struct {
	kind Kind
	msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.msg
}

// Kind returns the error's kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Invalid creates a validation error.
func Invalid(msg string) *Error {
	return &Error{kind: KindInvalid, msg: msg}
}

// NotFound creates a not-found error.
func NotFound(msg string) *Error {
	return &Error{kind: KindNotFound, msg: msg}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{kind: KindConflict, msg: msg}
}

// KindOf extracts the kind from an error chain.
// The second return value is false for unclassified errors.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind, true
	}
	return 0, false
}

// IsInvalid reports whether err is a validation error.
func IsInvalid(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalid
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindConflict
}
