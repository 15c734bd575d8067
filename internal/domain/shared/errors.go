// Package shared holds the error taxonomy used across the social graph domain.
// Every failure that can reach the HTTP boundary is one of these kinds.
package shared

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// DomainError carries the operation that failed, the error kind used for
// errors.Is matching, a client-safe message and the underlying cause.
type DomainError struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches either the kind or anything in the wrapped chain.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// E builds a DomainError.
func E(op string, kind error, message string, err error) error {
	return &DomainError{Op: op, Kind: kind, Message: message, Err: err}
}

// KindOf returns the taxonomy kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, k := range []error{
		ErrUnauthenticated,
		ErrSelfFollow,
		ErrNotFound,
		ErrValidation,
		ErrConflict,
		ErrServiceUnavailable,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// MessageOf returns the client-facing message attached to err, falling back
// to the kind's text.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	if k := KindOf(err); k != nil {
		return k.Error()
	}
	return "internal error"
}
