package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrMalformedTree marks a postfix sequence that does not form exactly
	// one expression, or a tree that breaks the node invariants.
	ErrMalformedTree = errors.New("malformed expression")
	// ErrArithmetic is matched by every *ArithmeticError.
	ErrArithmetic = errors.New("arithmetic error")
)

// ParseError reports formula text that cannot be compiled. Pos is a byte
// offset into Formula, or -1 when the fault has no single position.
type ParseError struct {
	Formula string
	Pos     int
	Msg     string
	Err     error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	var where string
	switch {
	case e.Formula != "" && e.Pos >= 0:
		where = fmt.Sprintf(" in %q at position %d", e.Formula, e.Pos)
	case e.Formula != "":
		where = fmt.Sprintf(" in %q", e.Formula)
	case e.Pos >= 0:
		where = fmt.Sprintf(" at position %d", e.Pos)
	}
	return fmt.Sprintf("parse error%s: %s", where, e.Msg)
}

// Unwrap exposes both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// withFormula attaches the formula text to a *ParseError produced by a stage
// that only saw tokens.
func withFormula(err error, formula string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Formula == "" {
		cp := *pe
		cp.Formula = formula
		return &cp
	}
	return err
}

// ArithmeticError is a runtime evaluation fault such as division by zero.
type ArithmeticError struct {
	Op    Operator
	Left  int
	Right int
	Msg   string
}

// Error implements the error interface for ArithmeticError.
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error: %s (%d %s %d)", e.Msg, e.Left, e.Op, e.Right)
}

// Unwrap allows errors.Is(err, ErrArithmetic).
func (e *ArithmeticError) Unwrap() error {
	return ErrArithmetic
}
