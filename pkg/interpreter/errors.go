package interpreter

import (
	"errors"
	"fmt"

	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

// Code classifies an Error for hosts.
type Code int

const (
	CodeSizeExceeded Code = 100
	RuntimeError     Code = 101
	ComputeExceeded  Code = 102
	SyntaxError      Code = 103
)

func (c Code) String() string {
	switch c {
	case CodeSizeExceeded:
		return "code size exceeded"
	case RuntimeError:
		return "runtime error"
	case ComputeExceeded:
		return "compute exceeded"
	case SyntaxError:
		return "syntax error"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// Sentinel causes. Every *Error wraps exactly one of them so callers can
// test with errors.Is.
var (
	ErrTooMuchCode         = errors.New("too much code")
	ErrTooMuchCompute      = errors.New("too much compute")
	ErrSyntax              = errors.New("syntax error")
	ErrUndefinedFunction   = errors.New("undefined function")
	ErrUndefinedIdentifier = errors.New("undefined identifier")
	ErrNotCallable         = errors.New("value is not callable")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrInvalidAccess       = errors.New("invalid list access")
	ErrImproperResult      = errors.New("improper result")
	ErrUnknownOperator     = errors.New("unknown operator")
	ErrInvalidStatement    = errors.New("invalid statement")
	ErrBuiltInFailed       = errors.New("builtIn failed")
)

// Position locates a syntax error in the source.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is the only error type Interpret returns.
type Error struct {
	Code    Code
	Message string
	// Stats is attached to runtime and compute errors; nil for code size
	// and syntax errors.
	Stats *Stats
	// Data is set for syntax errors.
	Data *Position
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (x *execution) fail(cause error, format string, args ...any) error {
	return &Error{
		Code:    RuntimeError,
		Message: fmt.Sprintf(format, args...),
		Stats:   x.stats,
		Err:     cause,
	}
}

func (x *execution) typeMismatch(position, operator string, want runtime.Kind) error {
	return x.fail(ErrTypeMismatch, "expected the %s argument of the %q function to be of type %q.", position, operator, want.String())
}

// returnSignal unwinds to the nearest function call or program boundary.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
