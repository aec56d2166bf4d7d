package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// Reporting module names used in diagnostic envelopes.
const (
	moduleInterp   = "Interp"
	moduleExpander = "TextProcessor"
)

// Predefined errors (sentinel values). Derived errors created with Msgf,
// With, or Wrap still match their sentinel under errors.Is.
var (
	ErrUnexpectedToken    = NewError("unexpected token")
	ErrExpectRParen       = NewError("expect ')'")
	ErrExpectColon        = NewError("ternary expression requires ':'")
	ErrExpectRBrace       = NewError("map expression needs '}' to close the body")
	ErrEmptyList          = NewError("list should not be empty")
	ErrEmptyMapList       = NewError("cannot map over an empty list")
	ErrRangeOperand       = NewError("'..' operator requires number operands")
	ErrRangeOrder         = NewError("'..' operator requires a strictly increasing range")
	ErrRangeTooLarge      = NewError("'..' range expansion exceeds the configured limit")
	ErrUnaryOperand       = NewError("cannot prefix +/- for non-number")
	ErrTermOperand        = NewError("* and / require number operands")
	ErrSumOperand         = NewError("+ and - require number operands")
	ErrCompareOperand     = NewError("only numbers and strings can be compared")
	ErrCompareString      = NewError("string can only be compared to string")
	ErrCompareNumber      = NewError("number can only be compared to number")
	ErrDivideByZero       = NewError("divide by zero")
	ErrDollarUnbound      = NewError("dollar value is not set")
	ErrNoHost             = NewError("no host to resolve name")
	ErrVariableNotFound   = NewError("variable is not defined")
	ErrFunctionFailed     = NewError("function cannot be executed")
	ErrBadNumber          = NewError("malformed number literal")
	ErrUnterminatedString = NewError("string literal is not terminated")
	ErrUnterminatedExpr   = NewError("the expression needs to be ended with \"`\"")
	ErrNullExpansion      = NewError("cannot expand a null value")
	ErrTooManyOutputs     = NewError("result set exceeds the configured output limit")
)

// Error is a diagnostic with optional structured logging attributes and an
// optional reporting location. It implements error, errors.Is matching
// against its sentinel, and slog.LogValuer.
type Error struct {
	base   *Error
	module string
	line   int
	col    int
	msg    string
	err    error
	attrs  []slog.Attr
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error renders the diagnostic. Errors reported by the evaluator carry a
// module and location envelope:
//
//	[Module:Interp,Location:(line,col)]:
//	<message>
//
// Expander errors carry a module-only envelope, and bare errors render the
// message alone.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	body := strings.Join(part, ": ")

	switch {
	case e.module != "" && e.line > 0:
		return fmt.Sprintf("[Module:%s,Location:(%d,%d)]:\n%s\n",
			e.module, e.line, e.col, body)
	case e.module != "":
		return fmt.Sprintf("[Module:%s]:%s", e.module, body)
	default:
		return body
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches derived errors against their originating sentinel.
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}

	return e.base != nil && e.base == target
}

// sentinel returns the root sentinel of a (possibly derived) error.
func (e *Error) sentinel() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// clone copies the error, preserving sentinel identity.
func (e *Error) clone() *Error {
	c := *e
	c.base = e.sentinel()

	return &c
}

// Msgf replaces the message while preserving sentinel identity. Use it to
// fold names and operands into a diagnostic.
func (e *Error) Msgf(format string, args ...any) *Error {
	c := e.clone()
	c.msg = fmt.Sprintf(format, args...)

	return c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], attrs...)

	return c
}

// at attaches the reporting module and location. A zero line means the
// module has no location (the expander).
func (e *Error) at(module string, line, col int) *Error {
	c := e.clone()
	c.module = module
	c.line = line
	c.col = col

	return c
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.module != "" {
		attrs = append(attrs, slog.String("module", e.module))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.String("location",
			fmt.Sprintf("(%d,%d)", e.line, e.col)))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}
