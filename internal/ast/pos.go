// Package ast defines the surface syntax tree produced by the parser:
// literals, identifiers, conditionals, pattern-matching functions,
// let-declarations, tuples, records, lists, infix operators and
// from-queries. Nothing here is typed yet — that is the inferencer's job.
package ast

import "fmt"

// Pos is a source location. The lexer/parser stamp every token with one;
// the core pipeline only ever reads it back for diagnostics.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// NoPos is used for synthesized nodes that have no source origin.
var NoPos = Pos{}
