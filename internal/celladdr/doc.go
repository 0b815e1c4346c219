// internal/celladdr/doc.go

/*
Package celladdr provides a structured, comparable representation of a
spreadsheet cell address together with its canonical textual form,
e.g. `A0`, `Z12`, `AA3`.

The column is written as a bijective base-26 numeral over the capital
letters (A..Z, AA..AZ, BA.., ZZ, AAA..), so no letter stands for zero.
The row follows as a plain, zero-based decimal integer with no padding;
`A0` is the top-left cell of a sheet.

This package centralizes all formatting and decoding of addresses so
the tokenizer, persistence formats and the CLI agree on one grammar.
*/
package celladdr
