package asm

import (
	"errors"
	"fmt"
)

// Sentinel kinds for fatal assembly errors. Use errors.Is to test an error
// returned by ResolveLabels, Encode or Assemble against them.
var (
	ErrDuplicateLabel  = errors.New("duplicate label")
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	ErrOperandCount    = errors.New("wrong operand count")
	ErrInvalidRegister = errors.New("invalid register")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrUndefinedLabel  = errors.New("undefined label")
	ErrTruncated       = errors.New("value truncated")
)

// Error is a fatal assembly error tied to a source line.
type Error struct {
	Line int
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s on line %d", e.Msg, e.Line)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func errorf(line int, kind error, format string, args ...interface{}) *Error {
	return &Error{
		Line: line,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Warning reports an operand whose value did not fit in 8 bits and was
// masked. Assembly continues with the masked value. Original is the unmasked
// value in decimal, exact whatever its size.
type Warning struct {
	Line      int
	Role      string
	Original  string
	Truncated uint8
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s %s truncated to 8 bits -> %d", w.Line, w.Role, w.Original, w.Truncated)
}

// Err converts the warning into a fatal error.
func (w Warning) Err() error {
	return errorf(w.Line, ErrTruncated, "%s %s does not fit in 8 bits (would be truncated to %d)", w.Role, w.Original, w.Truncated)
}
