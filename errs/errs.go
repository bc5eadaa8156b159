// Package errs provides structured error types and helpers for pgnumeric packages.
package errs

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Code identifies a numeric error category.
type Code string

const (
	// CodeInvalidSyntax indicates an unparseable numeric literal.
	CodeInvalidSyntax Code = "invalid_syntax"
	// CodeDivisionByZero indicates division or modulo by zero.
	CodeDivisionByZero Code = "division_by_zero"
	// CodeOutOfRange indicates a value that does not fit the target type or typmod.
	CodeOutOfRange Code = "out_of_range"
	// CodeOverflow indicates the internal numeric capacity was exceeded.
	CodeOverflow Code = "overflow"
	// CodeInvalidArgument indicates an operand outside an operation's domain.
	CodeInvalidArgument Code = "invalid_argument"
	// CodeUnavailable indicates a resource that cannot accept work right now.
	CodeUnavailable Code = "unavailable"
	// CodeInternal indicates an unexpected internal failure.
	CodeInternal Code = "internal"
)

// E captures structured error information produced across the pgnumeric stack.
type E struct {
	Op      string
	Code    Code
	Input   string
	Message string
	Detail  map[string]string

	cause error
}

// Option configures an error envelope.
type Option func(*E)

// New constructs an error envelope for the operation and error code.
func New(op string, code Code, opts ...Option) *E {
	e := &E{
		Op:      strings.TrimSpace(op),
		Code:    code,
		Input:   "",
		Message: "",
		Detail:  nil,
		cause:   nil,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithMessage attaches a human-readable message to the error.
func WithMessage(message string) Option {
	trimmed := strings.TrimSpace(message)
	return func(e *E) {
		e.Message = trimmed
	}
}

// WithInput captures the offending literal or operand rendering.
func WithInput(input string) Option {
	return func(e *E) {
		e.Input = input
	}
}

// WithCause sets the underlying cause error.
func WithCause(err error) Option {
	return func(e *E) {
		e.cause = err
	}
}

// WithDetail appends a single detail key/value pair.
func WithDetail(key, value string) Option {
	return func(e *E) {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			return
		}
		if e.Detail == nil {
			e.Detail = make(map[string]string, 1)
		}
		e.Detail[trimmedKey] = strings.TrimSpace(value)
	}
}

func (e *E) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string

	op := strings.TrimSpace(e.Op)
	if op == "" {
		op = "unknown"
	}
	parts = append(parts, "op="+op)

	code := strings.TrimSpace(string(e.Code))
	if code == "" {
		code = string(CodeInternal)
	}
	parts = append(parts, "code="+code)

	if e.Message != "" {
		parts = append(parts, "message="+strconv.Quote(e.Message))
	}
	if e.Input != "" {
		parts = append(parts, "input="+strconv.Quote(e.Input))
	}
	if len(e.Detail) > 0 {
		keys := make([]string, 0, len(e.Detail))
		for k := range e.Detail {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+strconv.Quote(e.Detail[k]))
		}
		parts = append(parts, "detail="+strings.Join(pairs, ","))
	}
	if e.cause != nil {
		parts = append(parts, "cause="+strconv.Quote(e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

func (e *E) Unwrap() error { return e.cause }

// CodeOf extracts the numeric error code from err, or CodeInternal when absent.
func CodeOf(err error) Code {
	var e *E
	if errors.As(err, &e) && e != nil {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given numeric error code.
func IsCode(err error, code Code) bool {
	var e *E
	if errors.As(err, &e) && e != nil {
		return e.Code == code
	}
	return false
}

// InvalidSyntax returns a standardized error for malformed numeric input.
func InvalidSyntax(op, input string) *E {
	return New(op, CodeInvalidSyntax,
		WithMessage("invalid input syntax for type numeric"),
		WithInput(input))
}

// DivisionByZero returns a standardized error for division by zero.
func DivisionByZero(op string) *E {
	return New(op, CodeDivisionByZero, WithMessage("division by zero"))
}

// Overflow returns a standardized error for exceeded numeric capacity.
func Overflow(op, msg string) *E {
	return New(op, CodeOverflow, WithMessage(msg))
}

// OutOfRange returns a standardized error for a value outside the target range.
func OutOfRange(op, msg string) *E {
	return New(op, CodeOutOfRange, WithMessage(msg))
}

// InvalidArgument returns a standardized error for an out-of-domain operand.
func InvalidArgument(op, msg string) *E {
	return New(op, CodeInvalidArgument, WithMessage(msg))
}
