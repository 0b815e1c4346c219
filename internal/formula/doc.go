// Package formula compiles infix cell formulas into expression trees and
// evaluates them.
//
// A formula is a sequence of non-negative integer literals, cell references
// (see package celladdr) and the operators + - * / ^ with ( ) for grouping.
// Compilation runs in three stages:
//
//  1. Tokenize scans the text into a flat slice of Tokens.
//  2. ToPostfix reorders the tokens with an operator-precedence
//     (shunting-yard) pass. ^ binds tighter than * and /, which bind
//     tighter than + and -. Every level, ^ included, groups left to right,
//     so 2^3^2 is (2^3)^2.
//  3. BuildTree consumes the postfix slice from its end and produces a
//     binary expression tree.
//
// Compile runs all three. A Tree can then be evaluated against a Resolver
// that supplies the values of referenced cells, and walked for the cell
// references it reads.
package formula
