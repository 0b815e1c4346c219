package formula

import (
	"fmt"
)

// ToPostfix reorders infix tokens into postfix order with Dijkstra's
// shunting-yard algorithm. Operands go straight to the output; an incoming
// operator first pops every pending operator of greater or equal precedence
// (stopping at a "("), which makes each level group left to right. A ")"
// pops up to and including its "(", and neither parenthesis is emitted.
//
// An unmatched ")" or "(" is reported as a *ParseError.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	ops := make([]Token, 0, len(tokens)/2+1)

	for _, tok := range tokens {
		switch tok.Kind {
		case KindLiteral, KindCellRef:
			out = append(out, tok)

		case KindOperator:
			if tok.Op == OpRightParen {
				var matched bool
				for len(ops) > 0 {
					top := ops[len(ops)-1]
					ops = ops[:len(ops)-1]
					if top.Op == OpLeftParen {
						matched = true
						break
					}
					out = append(out, top)
				}
				if !matched {
					return nil, &ParseError{Pos: tok.Pos, Msg: "unmatched ')'"}
				}
				continue
			}

			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Op == OpLeftParen || top.Op.precedence() < tok.Op.precedence() {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)

		default:
			return nil, &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("unknown token kind %s", tok.Kind)}
		}
	}

	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Op == OpLeftParen {
			return nil, &ParseError{Pos: ops[i].Pos, Msg: "unmatched '('"}
		}
		out = append(out, ops[i])
	}

	return out, nil
}

// Compile turns formula text into an expression tree. Text that is empty or
// only whitespace compiles to the empty tree, which evaluates to 0. Every
// failure is a *ParseError carrying the formula text.
func Compile(formula string) (Tree, error) {
	tokens, err := Tokenize(formula)
	if err != nil {
		return Tree{}, err
	}
	if len(tokens) == 0 {
		return Tree{}, nil
	}

	postfix, err := ToPostfix(tokens)
	if err != nil {
		return Tree{}, withFormula(err, formula)
	}
	if len(postfix) == 0 {
		return Tree{}, &ParseError{Formula: formula, Pos: tokens[0].Pos, Msg: "empty expression"}
	}

	tree, err := BuildTree(postfix)
	if err != nil {
		return Tree{}, withFormula(err, formula)
	}
	return tree, nil
}
