package analytics

import (
	"errors"
	"fmt"
)

// Kind classifies why a flow failed.
type Kind string

const (
	InvalidDuration     Kind = "InvalidDuration"
	UnknownWebsite      Kind = "UnknownWebsite"
	AuthenticationError Kind = "AuthenticationError"
	BackendError        Kind = "BackendError"
	RenderError         Kind = "RenderError"
)

var (
	ErrInvalidDuration = &Error{Kind: InvalidDuration}
	ErrUnknownWebsite  = &Error{Kind: UnknownWebsite}
	ErrAuthentication  = &Error{Kind: AuthenticationError}
	ErrBackend         = &Error{Kind: BackendError}
	ErrRender          = &Error{Kind: RenderError}
)

// Error carries a Kind next to the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
