package formula

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

// Tokenize scans a formula left to right into tokens, skipping whitespace
// between them. A digit starts a non-negative integer literal, a capital
// letter starts a cell reference and + - * / ^ ( ) are single-character
// operators. Anything else fails the whole scan; no partial slice is returned.
func Tokenize(formula string) ([]Token, error) {
	var tokens []Token

	i := 0
	for {
		for i < len(formula) && isSpace(formula[i]) {
			i++
		}
		if i == len(formula) {
			break
		}

		ch := formula[i]
		switch {
		case isOperator(ch):
			tokens = append(tokens, Token{Kind: KindOperator, Op: Operator(ch), Pos: i})
			i++

		case isDigit(ch):
			start := i
			for i < len(formula) && isDigit(formula[i]) {
				i++
			}
			v, err := strconv.Atoi(formula[start:i])
			if err != nil {
				return nil, &ParseError{Formula: formula, Pos: start, Msg: "integer literal out of range", Err: err}
			}
			tokens = append(tokens, Token{Kind: KindLiteral, Value: v, Pos: start})

		case isUpper(ch):
			addr, next, err := celladdr.Decode(formula, i)
			if err != nil {
				msg := "incomplete cell reference"
				var refErr *celladdr.ReferenceError
				if errors.As(err, &refErr) {
					msg = fmt.Sprintf("incomplete cell reference: %s", refErr.Reason)
				}
				return nil, &ParseError{Formula: formula, Pos: next, Msg: msg, Err: err}
			}
			tokens = append(tokens, Token{Kind: KindCellRef, Ref: addr, Pos: i})
			i = next

		default:
			return nil, &ParseError{Formula: formula, Pos: i, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
	}

	return tokens, nil
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }
