// internal/celladdr/parser.go
package celladdr

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidReference is matched by every ReferenceError.
var ErrInvalidReference = errors.New("invalid cell reference")

// ReferenceError describes a text that does not hold a well-formed cell
// reference. Pos is the scan position reached when decoding gave up.
type ReferenceError struct {
	Input  string
	Pos    int
	Reason string
}

// Error implements the error interface for ReferenceError.
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid cell reference in %q at position %d: %s", e.Input, e.Pos, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidReference).
func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// Decode reads one cell reference from text starting at index start. Leading
// whitespace is skipped; the reference itself is one or more capital letters
// immediately followed by one or more decimal digits. On success it returns
// the address and the index just past the last digit. On failure it returns a
// *ReferenceError whose Pos (and the returned index) is where scanning stopped.
func Decode(text string, start int) (Address, int, error) {
	fail := func(pos int, reason string) (Address, int, error) {
		return Address{}, pos, &ReferenceError{Input: text, Pos: pos, Reason: reason}
	}

	if start < 0 || start >= len(text) {
		return fail(start, "start index out of range")
	}

	i := start
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i == len(text) {
		return fail(i, "reached end of input before a column label")
	}
	if !isUpper(text[i]) {
		return fail(i, fmt.Sprintf("expected a capital letter, found %q", text[i]))
	}

	col := int(text[i] - 'A')
	i++
	for i < len(text) && isUpper(text[i]) {
		if col > (math.MaxInt-25)/26-1 {
			return fail(i, "column label is too long")
		}
		col = (col+1)*26 + int(text[i]-'A')
		i++
	}
	if i == len(text) {
		return fail(i, "reached end of input before a row number")
	}
	if !isDigit(text[i]) {
		return fail(i, fmt.Sprintf("expected a digit, found %q", text[i]))
	}

	row := 0
	for i < len(text) && isDigit(text[i]) {
		if row > (math.MaxInt-9)/10 {
			return fail(i, "row number is too large")
		}
		row = row*10 + int(text[i]-'0')
		i++
	}

	return Address{Row: row, Col: col}, i, nil
}

// Parse creates an Address from a string that holds exactly one reference,
// optionally surrounded by whitespace.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, &ReferenceError{Input: raw, Pos: 0, Reason: "reference cannot be empty"}
	}

	addr, next, err := Decode(raw, 0)
	if err != nil {
		return Address{}, err
	}
	for next < len(raw) && isSpace(raw[next]) {
		next++
	}
	if next != len(raw) {
		return Address{}, &ReferenceError{Input: raw, Pos: next, Reason: "unexpected trailing characters"}
	}
	return addr, nil
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
