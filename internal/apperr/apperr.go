// Package apperr defines the error taxonomy the service layer speaks.
// Every failure a service returns is classified into exactly one Kind so
// the HTTP layer can map it to a status without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	InvalidArgument
	NotFound
	Conflict
	Forbidden
	Unauthenticated
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case Forbidden:
		return "forbidden"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error, keeping the
// cause reachable through errors.Unwrap.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// KindOf classifies any error. Errors that did not originate in this
// package are internal by definition.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

func IsNotFound(err error) bool        { return IsKind(err, NotFound) }
func IsConflict(err error) bool        { return IsKind(err, Conflict) }
func IsForbidden(err error) bool       { return IsKind(err, Forbidden) }
func IsInvalidArgument(err error) bool { return IsKind(err, InvalidArgument) }
func IsUnauthenticated(err error) bool { return IsKind(err, Unauthenticated) }
