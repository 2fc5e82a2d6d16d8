package core

import (
	"errors"
	"fmt"
)

// Kind classifies failures raised by the simulation core.
type Kind uint8

const (
	// KindConfiguration covers invalid option values and conflicting seed sources.
	KindConfiguration Kind = iota + 1
	// KindParse covers malformed rule, mask, seed file and options strings.
	KindParse
	// KindBounds covers coordinates or dimensions that do not fit a grid.
	KindBounds
	// KindEncode covers failures reported by a frame sink.
	KindEncode
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindParse:
		return "parse"
	case KindBounds:
		return "bounds"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the core packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Sentinels for errors.Is checks against a whole kind.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrParse         = &Error{Kind: KindParse}
	ErrBounds        = &Error{Kind: KindBounds}
	ErrEncode        = &Error{Kind: KindEncode}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Errorf builds an error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of the given kind around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first core error in err's chain, or zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
