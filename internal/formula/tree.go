package formula

import (
	"errors"
	"fmt"
	"strings"
)

// Node is one node of an expression tree. Literal and cell reference nodes
// are leaves. Arithmetic operator nodes have both children. A "(" node is a
// pass-through with only a Right child; Compile never produces one, but
// BuildTree accepts it from a raw postfix sequence.
type Node struct {
	Token Token
	Left  *Node
	Right *Node
}

// Tree is the compiled form of one formula. The zero Tree is empty and
// evaluates to 0. A Tree exclusively owns its nodes.
type Tree struct {
	root *Node
}

// NewTree wraps an existing root node.
func NewTree(root *Node) Tree {
	return Tree{root: root}
}

// Root returns the root node, or nil for the empty tree.
func (t Tree) Root() *Node {
	return t.root
}

// IsEmpty reports whether the tree has no nodes.
func (t Tree) IsEmpty() bool {
	return t.root == nil
}

// BuildTree builds a tree from a postfix sequence by consuming it from the
// end: an operand becomes a leaf, an operator builds its right subtree and
// then its left subtree from the tokens before it. The whole sequence must be
// consumed by exactly one expression; a missing operand or leftover tokens
// yield a *ParseError wrapping ErrMalformedTree.
func BuildTree(postfix []Token) (Tree, error) {
	if len(postfix) == 0 {
		return Tree{}, nil
	}

	b := &treeBuilder{tokens: postfix, next: len(postfix)}
	root, err := b.build()
	if err != nil {
		return Tree{}, err
	}
	if b.next != 0 {
		leftover := postfix[b.next-1]
		return Tree{}, &ParseError{
			Pos: leftover.Pos,
			Msg: fmt.Sprintf("unexpected %s %q without an operator", leftover.Kind, leftover),
			Err: ErrMalformedTree,
		}
	}
	return Tree{root: root}, nil
}

type treeBuilder struct {
	tokens []Token
	next   int // tokens[:next] are still unconsumed
}

func (b *treeBuilder) build() (*Node, error) {
	if b.next == 0 {
		return nil, errMissingOperand
	}
	b.next--
	tok := b.tokens[b.next]

	switch {
	case tok.isOperand():
		return &Node{Token: tok}, nil

	case tok.Kind == KindOperator && tok.Op == OpLeftParen:
		right, err := b.build()
		if err != nil {
			return nil, operandError(tok, err)
		}
		return &Node{Token: tok, Right: right}, nil

	case tok.Kind == KindOperator && tok.Op.IsArithmetic():
		right, err := b.build()
		if err != nil {
			return nil, operandError(tok, err)
		}
		left, err := b.build()
		if err != nil {
			return nil, operandError(tok, err)
		}
		return &Node{Token: tok, Left: left, Right: right}, nil
	}

	return nil, &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %q in postfix sequence", tok), Err: ErrMalformedTree}
}

// errMissingOperand is a marker turned into a positioned error by the
// operator that ran out of operands.
var errMissingOperand = fmt.Errorf("%w: missing operand", ErrMalformedTree)

func operandError(op Token, err error) error {
	if errors.Is(err, errMissingOperand) {
		return &ParseError{Pos: op.Pos, Msg: fmt.Sprintf("operator %q is missing an operand", op.Op), Err: ErrMalformedTree}
	}
	return err
}

// String renders the tree in infix form with explicit parentheses around
// every operator node below the root, so compiling the result gives back an
// equivalent tree.
func (t Tree) String() string {
	if t.root == nil {
		return ""
	}
	var sb strings.Builder
	writeNode(&sb, t.root, true)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, top bool) {
	if n == nil {
		return
	}
	if n.Token.isOperand() {
		sb.WriteString(n.Token.String())
		return
	}
	if n.Token.Op == OpLeftParen {
		sb.WriteByte('(')
		writeNode(sb, n.Right, true)
		sb.WriteByte(')')
		return
	}

	if !top {
		sb.WriteByte('(')
	}
	writeNode(sb, n.Left, false)
	sb.WriteByte(' ')
	sb.WriteString(n.Token.Op.String())
	sb.WriteByte(' ')
	writeNode(sb, n.Right, false)
	if !top {
		sb.WriteByte(')')
	}
}
