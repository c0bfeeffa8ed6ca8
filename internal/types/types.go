// Package types implements the closed type universe of spec §3.2:
// primitives, functions, tuples/records, lists, datatypes and type
// variables, plus Hindley-Milner-style inference (Algorithm W) over the
// surface AST (spec §4.1).
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sml-lang/interp/internal/ast"
)

// Type is any member of the closed type universe. Every type has a
// canonical textual Moniker (used as the interning key; structural
// equality becomes pointer equality once interned) and a Description
// used for user-facing output.
type Type interface {
	Moniker() string
	Description() string
}

// --- Primitives ---

type Prim struct{ Name string }

func (p *Prim) Moniker() string     { return p.Name }
func (p *Prim) Description() string { return p.Name }

var (
	Unit   = &Prim{"unit"}
	Bool   = &Prim{"bool"}
	Char   = &Prim{"char"}
	Int    = &Prim{"int"}
	Real   = &Prim{"real"}
	String = &Prim{"string"}
)

// --- Function ---

type Func struct {
	Param  Type
	Result Type
}

func (f *Func) Moniker() string {
	return fmt.Sprintf("%s -> %s", parenIfFunc(f.Param), f.Result.Moniker())
}
func (f *Func) Description() string {
	return fmt.Sprintf("%s -> %s", parenIfFuncDesc(f.Param), f.Result.Description())
}

func parenIfFunc(t Type) string {
	if _, ok := t.(*Func); ok {
		return "(" + t.Moniker() + ")"
	}
	return t.Moniker()
}
func parenIfFuncDesc(t Type) string {
	if _, ok := t.(*Func); ok {
		return "(" + t.Description() + ")"
	}
	return t.Description()
}

// --- Tuple / Record ---
//
// A tuple is just a record whose labels are "1","2",...,"n" — spec §3.2
// is explicit about this, so Tuple is implemented as a thin constructor
// over Record rather than a distinct representation.

type Record struct {
	// Labels is the sorted label order (spec §3.2: "numeric first then
	// lexicographic", see ast.LabelLess). Fields keys by label.
	Labels []string
	Fields map[string]Type
}

func NewRecord(fields map[string]Type) *Record {
	labels := make([]string, 0, len(fields))
	for l := range fields {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return ast.LabelLess(labels[i], labels[j]) })
	return &Record{Labels: labels, Fields: fields}
}

// IsTuple reports whether this record's labels are exactly "1".."n".
func (r *Record) IsTuple() bool {
	for i, l := range r.Labels {
		if l != fmt.Sprintf("%d", i+1) {
			return false
		}
	}
	return true
}

func NewTuple(elems []Type) *Record {
	fields := make(map[string]Type, len(elems))
	for i, t := range elems {
		fields[fmt.Sprintf("%d", i+1)] = t
	}
	return NewRecord(fields)
}

func (r *Record) Moniker() string {
	parts := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		parts[i] = fmt.Sprintf("%s:%s", l, r.Fields[l].Moniker())
	}
	if r.IsTuple() {
		tparts := make([]string, len(r.Labels))
		for i, l := range r.Labels {
			tparts[i] = r.Fields[l].Moniker()
		}
		return strings.Join(tparts, " * ")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (r *Record) Description() string {
	if r.IsTuple() {
		parts := make([]string, len(r.Labels))
		for i, l := range r.Labels {
			parts[i] = parenIfFuncDesc(r.Fields[l])
		}
		return strings.Join(parts, " * ")
	}
	parts := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		parts[i] = fmt.Sprintf("%s:%s", l, r.Fields[l].Description())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// --- List ---

type List struct{ Elem Type }

func (l *List) Moniker() string     { return l.Elem.Moniker() + " list" }
func (l *List) Description() string { return l.Elem.Description() + " list" }

// --- Type variable ---

type Var struct{ Name string }

func (v *Var) Moniker() string     { return v.Name }
func (v *Var) Description() string { return v.Name }

// --- Datatype ---

// Ctor is one value constructor of a datatype: a name and an optional
// argument type (nil for nullary constructors).
type Ctor struct {
	Name string
	Arg  Type // nil for nullary
}

// Datatype is a named, parameterised type with an immutable set of value
// constructors. Ctors is only mutated while the defining declaration is
// being built (see Temporary below); once construction completes it must
// never change (spec §3.2 invariant).
type Datatype struct {
	Name     string
	Params   []string
	Ctors    []Ctor
	ctorByNm map[string]*Ctor
}

func NewDatatype(name string, params []string) *Datatype {
	return &Datatype{Name: name, Params: params, ctorByNm: map[string]*Ctor{}}
}

// Finish locks in the constructor list. Called once, at the end of the
// datatype declaration's elaboration.
func (d *Datatype) Finish(ctors []Ctor) {
	d.Ctors = ctors
	d.ctorByNm = make(map[string]*Ctor, len(ctors))
	for i := range ctors {
		d.ctorByNm[ctors[i].Name] = &ctors[i]
	}
}

func (d *Datatype) Constructor(name string) (*Ctor, bool) {
	c, ok := d.ctorByNm[name]
	return c, ok
}

func (d *Datatype) Moniker() string     { return d.Name }
func (d *Datatype) Description() string { return d.Name }

// Temporary is a placeholder type object installed while a (possibly
// self-referential) datatype declaration is being elaborated; it is
// substituted for the real *Datatype once the declaration completes
// (spec §3.2, §9 "Cyclic datatype definitions"). No Temporary may
// survive past the declaration that created it.
type Temporary struct {
	Name string
	Real *Datatype // not set by Resolve, which returns the real datatype in the Temporary's place
}

func (t *Temporary) Moniker() string     { return t.Name }
func (t *Temporary) Description() string { return t.Name }

// Resolve walks t and replaces every reachable Temporary matching name
// with real, returning a structurally rewritten copy. Used once, at the
// end of a datatype declaration, to eliminate its own placeholder.
func Resolve(t Type, name string, real *Datatype) Type {
	switch v := t.(type) {
	case *Temporary:
		if v.Name == name {
			return real
		}
		return v
	case *Func:
		return &Func{Param: Resolve(v.Param, name, real), Result: Resolve(v.Result, name, real)}
	case *List:
		return &List{Elem: Resolve(v.Elem, name, real)}
	case *Record:
		fields := make(map[string]Type, len(v.Fields))
		for k, ft := range v.Fields {
			fields[k] = Resolve(ft, name, real)
		}
		return NewRecord(fields)
	default:
		return t
	}
}
