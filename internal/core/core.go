// Package core implements the typed core AST of spec §3.3: the minimal
// set of primitives every surface construct lowers to. Every node here
// carries its inferred types.Type directly (unlike internal/ast, which
// keeps types in a side map) — by the time a core node exists, its type
// is settled and will never change.
package core

import (
	"fmt"
	"strings"

	"github.com/sml-lang/interp/internal/types"
)

// Expr is any core expression.
type Expr interface {
	Type() types.Type
	String() string
	coreExpr()
}

// Literal is a constant: a primitive value or a reference to a built-in
// operator (spec §3.3).
type Literal struct {
	Typ   types.Type
	Value interface{}
}

func (l *Literal) Type() types.Type { return l.Typ }
func (*Literal) coreExpr()          {}
func (l *Literal) String() string   { return fmt.Sprintf("%v", l.Value) }

// Id references a lexical binding by name.
type Id struct {
	Typ  types.Type
	Name string
}

func (i *Id) Type() types.Type { return i.Typ }
func (*Id) coreExpr()          {}
func (i *Id) String() string   { return i.Name }

// RecordSelector projects the Slot-th field of its record argument; it
// is itself a function value (spec §3.3).
type RecordSelector struct {
	Typ  types.Type // always a Func
	Slot int
}

func (r *RecordSelector) Type() types.Type { return r.Typ }
func (*RecordSelector) coreExpr()          {}
func (r *RecordSelector) String() string   { return fmt.Sprintf("#%d", r.Slot) }

// Tuple is an ordered sequence of expressions; it also represents
// records, whose fields have been canonicalised to positional order by
// the resolver (spec §3.3).
type Tuple struct {
	Typ   types.Type // a tuple/record Type
	Elems []Expr
}

func (t *Tuple) Type() types.Type { return t.Typ }
func (*Tuple) coreExpr()          {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Apply is function application.
type Apply struct {
	Typ  types.Type
	Fn   Expr
	Arg  Expr
}

func (a *Apply) Type() types.Type { return a.Typ }
func (*Apply) coreExpr()          {}
func (a *Apply) String() string   { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }

// FnMatch is one (pattern, body) clause.
type FnMatch struct {
	Pat  Pat
	Body Expr
}

// Fn is always single-argument (spec §3.3): multi-clause and multi-
// argument functions are desugared by the resolver into a single
// parameter matched with Case.
type Fn struct {
	Typ     types.Type // always a Func
	Matches []FnMatch
}

func (f *Fn) Type() types.Type { return f.Typ }
func (*Fn) coreExpr()          {}
func (f *Fn) String() string {
	parts := make([]string, len(f.Matches))
	for i, m := range f.Matches {
		parts[i] = fmt.Sprintf("%s => %s", m.Pat, m.Body)
	}
	return "fn " + strings.Join(parts, " | ")
}

// Case also encodes "if" (as a two-clause Case on bool patterns).
type Case struct {
	Typ       types.Type
	Scrutinee Expr
	Matches   []FnMatch
}

func (c *Case) Type() types.Type { return c.Typ }
func (*Case) coreExpr()          {}
func (c *Case) String() string {
	parts := make([]string, len(c.Matches))
	for i, m := range c.Matches {
		parts[i] = fmt.Sprintf("%s => %s", m.Pat, m.Body)
	}
	return fmt.Sprintf("case %s of %s", c.Scrutinee, strings.Join(parts, " | "))
}

// Decl is either a value declaration or a datatype declaration, the
// only two kinds Let can carry (spec §3.3).
type Decl interface {
	declNode()
}

// ValBinding pairs a core pattern with its right-hand-side code.
type ValBinding struct {
	Pat Pat
	Rhs Expr
}

// ValDecl is a (possibly recursive) value declaration.
type ValDecl struct {
	Rec      bool
	Bindings []ValBinding
}

func (*ValDecl) declNode() {}

// DatatypeDecl is purely compile-time bookkeeping: it introduces no
// runtime code (spec §4.3 "datatypes are purely compile-time").
type DatatypeDecl struct {
	Datatype *types.Datatype
}

func (*DatatypeDecl) declNode() {}

// Let carries a single declaration plus the body that sees it; the
// resolver right-associates a surface "let d1; d2; ... in e end" into a
// chain of these (spec §4.2).
type Let struct {
	Typ  types.Type
	Decl Decl
	Body Expr
}

func (l *Let) Type() types.Type { return l.Typ }
func (*Let) coreExpr()          {}
func (l *Let) String() string   { return fmt.Sprintf("let ... in %s end", l.Body) }

// From is the relational comprehension primitive (spec §3.3, §4.5).
type FromSource struct {
	Pat Pat
	Exp Expr
}

type FromStepKind int

const (
	FromWhere FromStepKind = iota
	FromGroup
	FromOrder
)

type FromAggregate struct {
	Name string
	Fn   string
	Arg  Expr // nil for count
}

type FromOrderItem struct {
	Exp  Expr
	Desc bool
}

type FromStep struct {
	Kind FromStepKind

	Pred Expr // FromWhere

	GroupKeys  []Expr // FromGroup
	GroupNames []string
	Aggregates []FromAggregate

	OrderItems []FromOrderItem // FromOrder
}

type From struct {
	Typ     types.Type // always a List
	Sources []FromSource
	Steps   []FromStep
	Yield   Expr
}

func (f *From) Type() types.Type { return f.Typ }
func (*From) coreExpr()          {}
func (f *From) String() string   { return "from ... yield " + f.Yield.String() }

// Program is a sequence of top-level core declarations/expressions.
type Program struct {
	Decls []Expr
}
