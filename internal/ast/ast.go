package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Node is the base interface every surface AST node satisfies. NodeID is
// a stable per-node identifier assigned by the parser; the inferencer
// uses it as the key of its node→type map instead of embedding a type
// field directly, so this package stays independent of internal/types.
type Node interface {
	ID() uint64
	Pos() Pos
	Op() Op
	String() string
}

// Base is the embeddable common header every node carries: a stable
// identifier (for the inferencer's node→type map) and a source position.
type Base struct {
	NodeID uint64
	Posn   Pos
}

func (b Base) ID() uint64 { return b.NodeID }
func (b Base) Pos() Pos   { return b.Posn }

// NewBase constructs a Base for a freshly built node.
func NewBase(id uint64, pos Pos) Base {
	return Base{NodeID: id, Posn: pos}
}

// Expr is any surface expression node.
type Expr interface {
	Node
	exprNode()
}

// --- Literals ---

type LitKind int

const (
	LitUnit LitKind = iota
	LitBool
	LitChar
	LitInt
	LitReal
	LitString
)

type Literal struct {
	Base
	Kind  LitKind
	Value interface{}
}

func (*Literal) exprNode() {}
func (*Literal) Op() Op    { return OpLiteral }
func (l *Literal) String() string {
	return fmt.Sprintf("%v", l.Value)
}

// --- Identifier ---

type Ident struct {
	Base
	Name string
}

func (*Ident) exprNode() {}
func (*Ident) Op() Op    { return OpIdent }
func (i *Ident) String() string { return i.Name }

// --- If ---

type If struct {
	Base
	Cond, Then, Else Expr
}

func (*If) exprNode() {}
func (*If) Op() Op    { return OpIf }
func (n *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", n.Cond, n.Then, n.Else)
}

// --- Fn (possibly multi-clause) ---

type Match struct {
	Pat  Pat
	Body Expr
}

type Fn struct {
	Base
	Matches []Match
}

func (*Fn) exprNode() {}
func (*Fn) Op() Op    { return OpFn }
func (n *Fn) String() string {
	parts := make([]string, len(n.Matches))
	for i, m := range n.Matches {
		parts[i] = fmt.Sprintf("%s => %s", m.Pat, m.Body)
	}
	return "fn " + strings.Join(parts, " | ")
}

// --- Case ---

type Case struct {
	Base
	Scrutinee Expr
	Matches   []Match
}

func (*Case) exprNode() {}
func (*Case) Op() Op    { return OpCase }
func (n *Case) String() string {
	parts := make([]string, len(n.Matches))
	for i, m := range n.Matches {
		parts[i] = fmt.Sprintf("%s => %s", m.Pat, m.Body)
	}
	return fmt.Sprintf("case %s of %s", n.Scrutinee, strings.Join(parts, " | "))
}

// --- Let ---

type Let struct {
	Base
	Decls []Decl
	Body  Expr
}

func (*Let) exprNode() {}
func (*Let) Op() Op    { return OpLet }
func (n *Let) String() string {
	parts := make([]string, len(n.Decls))
	for i, d := range n.Decls {
		parts[i] = d.String()
	}
	return fmt.Sprintf("let %s in %s end", strings.Join(parts, "; "), n.Body)
}

// --- Apply ---

type Apply struct {
	Base
	Fn, Arg Expr
}

func (*Apply) exprNode() {}
func (*Apply) Op() Op    { return OpApply }
func (n *Apply) String() string {
	return fmt.Sprintf("(%s %s)", n.Fn, n.Arg)
}

// --- Tuple ---

type Tuple struct {
	Base
	Elems []Expr
}

func (*Tuple) exprNode() {}
func (*Tuple) Op() Op    { return OpTuple }
func (n *Tuple) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// --- Record ---

type RecordField struct {
	Label string
	Value Expr
}

type Record struct {
	Base
	Fields []RecordField
}

func (*Record) exprNode() {}
func (*Record) Op() Op    { return OpRecord }
func (n *Record) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = fmt.Sprintf("%s = %s", f.Label, f.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SortedFields returns the record's fields in SML's canonical label
// order: numeric labels first (in numeric order), then the remaining
// labels lexicographically. This is the same ordering types.SortLabels
// uses for record types, kept in sync so {b=2,a=1} and the type
// {a:int,b:int} agree on field order.
func (n *Record) SortedFields() []RecordField {
	out := make([]RecordField, len(n.Fields))
	copy(out, n.Fields)
	sort.SliceStable(out, func(i, j int) bool {
		return LabelLess(out[i].Label, out[j].Label)
	})
	return out
}

// LabelLess implements ML's canonical record-label ordering: numeric
// labels ("1","2",...,"10") sort before any non-numeric label, and sort
// numerically among themselves; non-numeric labels sort lexicographically.
func LabelLess(a, b string) bool {
	an, aok := numericLabel(a)
	bn, bok := numericLabel(b)
	if aok && bok {
		return an < bn
	}
	if aok != bok {
		return aok // numeric labels sort first
	}
	return a < b
}

func numericLabel(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// --- List ---

type List struct {
	Base
	Elems []Expr
}

func (*List) exprNode() {}
func (*List) Op() Op    { return OpList }
func (n *List) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// --- Infix ---

type Infix struct {
	Base
	Operator    string
	Left, Right Expr
}

func (*Infix) exprNode() {}
func (*Infix) Op() Op    { return OpInfix }
func (n *Infix) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Operator, n.Right)
}

// --- From query ---

type FromSource struct {
	Pat Pat
	Exp Expr
}

type StepKind int

const (
	StepWhere StepKind = iota
	StepGroup
	StepOrder
)

type Aggregate struct {
	Name string // bound name, e.g. "c" in "compute c = count"
	Fn   string // "count", "sum", "min", "max", "avg"
	Arg  Expr   // nil for count
}

type OrderItem struct {
	Exp  Expr
	Desc bool
}

type Step struct {
	Kind StepKind

	// StepWhere
	Pred Expr

	// StepGroup
	GroupKeys  []Expr // key expressions (usually Idents naming a source field)
	GroupNames []string
	Aggregates []Aggregate

	// StepOrder
	OrderItems []OrderItem
}

type From struct {
	Base
	Sources []FromSource
	Steps   []Step
	Yield   Expr // nil => default yield (record of all bound names)
}

func (*From) exprNode() {}
func (*From) Op() Op    { return OpFrom }
func (n *From) String() string {
	var b strings.Builder
	b.WriteString("from ")
	for i, s := range n.Sources {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s in %s", s.Pat, s.Exp)
	}
	for _, st := range n.Steps {
		switch st.Kind {
		case StepWhere:
			fmt.Fprintf(&b, " where %s", st.Pred)
		case StepGroup:
			b.WriteString(" group ...")
		case StepOrder:
			b.WriteString(" order ...")
		}
	}
	if n.Yield != nil {
		fmt.Fprintf(&b, " yield %s", n.Yield)
	}
	return b.String()
}
