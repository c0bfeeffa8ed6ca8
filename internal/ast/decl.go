package ast

import (
	"fmt"
	"strings"
)

// Decl is a top-level or let-bound declaration: either a value binding
// or a datatype definition.
type Decl interface {
	Node
	declNode()
}

// ValBinding is one clause of a (possibly simultaneous) val declaration:
// "val p = e" or, before the resolver merges "and"-clauses, one of
// several such clauses sharing a Rec flag.
type ValBinding struct {
	Pat Pat
	Exp Expr
}

// ValDecl is "val [rec] p1 = e1 and p2 = e2 and ...". Rec is the
// logical OR of every clause's recursiveness, per spec §4.2.
type ValDecl struct {
	Base
	Rec      bool
	Bindings []ValBinding
}

func (*ValDecl) declNode() {}
func (*ValDecl) Op() Op    { return OpValDecl }
func (d *ValDecl) String() string {
	parts := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		parts[i] = fmt.Sprintf("%s = %s", b.Pat, b.Exp)
	}
	rec := ""
	if d.Rec {
		rec = "rec "
	}
	return fmt.Sprintf("val %s%s", rec, strings.Join(parts, " and "))
}

// Constructor is one value-constructor clause of a datatype declaration.
type Constructor struct {
	Name string
	Arg  *TypeExpr // nil for a nullary constructor
}

// DatatypeDecl is "datatype 'a t = C1 | C2 of ty | ...".
type DatatypeDecl struct {
	Base
	Name         string
	TypeParams   []string
	Constructors []Constructor
}

func (*DatatypeDecl) declNode() {}
func (*DatatypeDecl) Op() Op    { return OpDatatypeDecl }
func (d *DatatypeDecl) String() string {
	parts := make([]string, len(d.Constructors))
	for i, c := range d.Constructors {
		if c.Arg == nil {
			parts[i] = c.Name
		} else {
			parts[i] = fmt.Sprintf("%s of %s", c.Name, c.Arg)
		}
	}
	return fmt.Sprintf("datatype %s = %s", d.Name, strings.Join(parts, " | "))
}

// TypeExpr is the surface syntax for a type annotation, as it appears in
// a datatype constructor's argument or (optionally) a pattern/val
// annotation. It is resolved against internal/types during inference.
type TypeExpr struct {
	Name string      // "int", "list", "t", a type variable "'a", ...
	Args []*TypeExpr // type constructor arguments, e.g. "int list" -> Name="list", Args=[int]
}

func (t *TypeExpr) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ","))
}

// Program is a sequence of top-level declarations or bare expressions
// (a bare expression is sugar for "val it = e").
type Program struct {
	Decls []Decl
}
