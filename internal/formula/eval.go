package formula

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

// Resolver supplies the value of a referenced cell during evaluation.
type Resolver interface {
	Resolve(ctx context.Context, addr celladdr.Address) (int, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, addr celladdr.Address) (int, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, addr celladdr.Address) (int, error) {
	return f(ctx, addr)
}

// Eval evaluates the tree. The empty tree is 0. Cell references are handed
// to r; arithmetic faults come back as *ArithmeticError and broken node
// invariants as errors wrapping ErrMalformedTree.
func (t Tree) Eval(ctx context.Context, r Resolver) (int, error) {
	if t.root == nil {
		return 0, nil
	}
	return evalNode(ctx, t.root, r)
}

func evalNode(ctx context.Context, n *Node, r Resolver) (int, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrMalformedTree)
	}

	switch n.Token.Kind {
	case KindLiteral:
		return n.Token.Value, nil

	case KindCellRef:
		return r.Resolve(ctx, n.Token.Ref)

	case KindOperator:
		if n.Token.Op == OpLeftParen {
			if n.Left != nil {
				return 0, fmt.Errorf("%w: '(' node with a left child", ErrMalformedTree)
			}
			return evalNode(ctx, n.Right, r)
		}
		if !n.Token.Op.IsArithmetic() {
			return 0, fmt.Errorf("%w: operator %q in tree", ErrMalformedTree, n.Token.Op)
		}

		left, err := evalNode(ctx, n.Left, r)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(ctx, n.Right, r)
		if err != nil {
			return 0, err
		}
		return apply(n.Token.Op, left, right)
	}

	return 0, fmt.Errorf("%w: unexpected token kind %s", ErrMalformedTree, n.Token.Kind)
}

func apply(op Operator, left, right int) (int, error) {
	switch op {
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right == 0 {
			return 0, &ArithmeticError{Op: op, Left: left, Right: right, Msg: "division by zero"}
		}
		return left / right, nil
	case OpPow:
		if right < 0 {
			return 0, &ArithmeticError{Op: op, Left: left, Right: right, Msg: "negative exponent"}
		}
		return power(left, right), nil
	}
	return 0, fmt.Errorf("%w: operator %q", ErrMalformedTree, op)
}

// power computes base**exp for exp >= 0 by repeated squaring. Overflow wraps.
func power(base, exp int) int {
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
