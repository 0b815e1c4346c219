package formula

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

// Kind discriminates the three token variants.
type Kind int

const (
	KindLiteral Kind = iota
	KindCellRef
	KindOperator
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindCellRef:
		return "cell reference"
	case KindOperator:
		return "operator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operator is one of + - * / ^ ( ).
type Operator byte

const (
	OpAdd        Operator = '+'
	OpSub        Operator = '-'
	OpMul        Operator = '*'
	OpDiv        Operator = '/'
	OpPow        Operator = '^'
	OpLeftParen  Operator = '('
	OpRightParen Operator = ')'
)

// String returns the operator symbol.
func (o Operator) String() string {
	return string(rune(o))
}

// IsArithmetic reports whether o combines two operands.
func (o Operator) IsArithmetic() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return true
	}
	return false
}

// precedence ranks operators; higher binds tighter.
func (o Operator) precedence() int {
	switch o {
	case OpAdd, OpSub:
		return 0
	case OpMul, OpDiv:
		return 1
	case OpPow:
		return 2
	case OpLeftParen:
		return 3
	}
	return -1
}

func isOperator(ch byte) bool {
	switch Operator(ch) {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow, OpLeftParen, OpRightParen:
		return true
	}
	return false
}

// Token is a closed variant: exactly one of Value, Ref or Op is meaningful,
// selected by Kind. Pos is the byte offset of the token in its formula and is
// only used for diagnostics.
type Token struct {
	Kind  Kind
	Value int
	Ref   celladdr.Address
	Op    Operator
	Pos   int
}

// Literal creates a literal token.
func Literal(v int) Token {
	return Token{Kind: KindLiteral, Value: v}
}

// CellRef creates a cell reference token.
func CellRef(addr celladdr.Address) Token {
	return Token{Kind: KindCellRef, Ref: addr}
}

// Op creates an operator token.
func Op(o Operator) Token {
	return Token{Kind: KindOperator, Op: o}
}

// String renders the token as it would appear in a formula.
func (t Token) String() string {
	switch t.Kind {
	case KindLiteral:
		return strconv.Itoa(t.Value)
	case KindCellRef:
		return t.Ref.String()
	case KindOperator:
		return t.Op.String()
	}
	return "?"
}

// isOperand reports whether t is a leaf token.
func (t Token) isOperand() bool {
	return t.Kind == KindLiteral || t.Kind == KindCellRef
}
