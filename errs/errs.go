// Package errs defines the failure-kind taxonomy used across tbcdecode.
//
// Every component that can fail wraps its underlying cause in an *Error
// tagged with a Kind, so that callers at the orchestrator boundary can
// decide how to surface the failure (see spec §7) without string-matching
// error messages.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure by where responsibility for handling it lies.
type Kind int

const (
	// Config is an invalid parameter, unknown decoder type, missing
	// output path, or unsupported output format. Always surfaced
	// synchronously, before any decoding begins.
	Config Kind = iota
	// Input is missing fields, a non-VFR input, absent video parameters,
	// or Y/C-split input fed to a kernel that requires composite data.
	Input
	// Resource is an FFT plan allocation failure, an output file that
	// can't be opened, or encoder-backend initialization failure.
	Resource
	// Decode is a kernel failure while processing a frame.
	Decode
	// IO is a backend write failure.
	IO
	// Cancelled indicates caller-initiated cancellation. It is a
	// distinct outcome, not an error in the usual sense, but it
	// satisfies the error interface so it can be returned and checked
	// the same way.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "ConfigError"
	case Input:
		return "InputError"
	case Resource:
		return "ResourceError"
	case Decode:
		return "DecodeError"
	case IO:
		return "IOError"
	case Cancelled:
		return "Cancelled"
	default:
		return "UnknownError"
	}
}

// Error is a tagged, wrapped error.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap lets errors.Is/errors.As see through to the underlying cause.
func (e *Error) Unwrap() error { return e.err }

// New creates a new tagged error with no underlying cause.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, msg: msg}
}

// Newf creates a new tagged error with a formatted message.
func Newf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an existing error with a Kind, preserving its cause chain.
func Wrap(k Kind, err error, msg string) *Error {
	return &Error{Kind: k, msg: msg, err: errors.WithStack(err)}
}

// Wrapf tags an existing error with a Kind and a formatted message.
func Wrapf(k Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: k, msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

// Is reports whether err is (or wraps) an *Error of the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}

// Status renders spec §7's "string trigger-status field plus a boolean
// success" contract: "", true on success, or "Error: <msg>", false on
// failure. This is deliberately plainer than Error()'s Kind-prefixed
// representation (e.g. "ConfigError: ...", used for logging and
// errors.Is/As dispatch) because the trigger-status string is the one
// named literally in spec scenarios such as S6's "Error: No output path
// specified".
func Status(err error) (status string, success bool) {
	if err == nil {
		return "", true
	}
	var e *Error
	if errors.As(err, &e) {
		return "Error: " + e.msg, false
	}
	return "Error: " + err.Error(), false
}
