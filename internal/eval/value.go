package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/types"
)

// Value is any runtime value the evaluator produces.
type Value interface {
	String() string
	valueNode()
}

type UnitValue struct{}

func (UnitValue) valueNode()    {}
func (UnitValue) String() string { return "()" }

type BoolValue struct{ Value bool }

func (BoolValue) valueNode() {}
func (v BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

type IntValue struct{ Value int64 }

func (IntValue) valueNode() {}

// String renders with ML's tilde negation rather than a minus sign
// (spec §6: "~5", never "-5").
func (v IntValue) String() string { return tildeNegative(strconv.FormatInt(v.Value, 10)) }

type RealValue struct{ Value float64 }

func (RealValue) valueNode() {}
func (v RealValue) String() string {
	s := strconv.FormatFloat(v.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return tildeNegative(s)
}

// tildeNegative replaces a leading minus sign with ML's "~" negation
// marker.
func tildeNegative(s string) string {
	if strings.HasPrefix(s, "-") {
		return "~" + s[1:]
	}
	return s
}

type CharValue struct{ Value rune }

func (CharValue) valueNode()        {}
func (v CharValue) String() string { return "#\"" + string(v.Value) + "\"" }

type StringValue struct{ Value string }

func (StringValue) valueNode()        {}
func (v StringValue) String() string { return strconv.Quote(v.Value) }

// TupleValue represents both tuples and records: the resolver
// canonicalises record fields to positional order, so by the time a
// value exists there is no runtime distinction (spec §3.3/§4.2). The
// static record type (carried alongside in the core AST) supplies
// labels back when something needs to print field names.
type TupleValue struct{ Elems []Value }

func (TupleValue) valueNode() {}
func (v TupleValue) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ListValue is a Go slice under the hood; SML list semantics (cons,
// nil, pattern matching on both) are implemented over this shape by
// the pattern matcher rather than via a dedicated cons-cell value.
type ListValue struct{ Elems []Value }

func (ListValue) valueNode() {}
func (v ListValue) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ConstructorValue is a datatype value: Arg is nil for a 0-ary
// constructor.
type ConstructorValue struct {
	Name string
	Arg  Value
}

func (ConstructorValue) valueNode() {}
func (v ConstructorValue) String() string {
	if v.Arg == nil {
		return v.Name
	}
	return v.Name + " " + v.Arg.String()
}

// ClosureValue is a user-defined function: one or more match clauses
// plus the environment captured at creation time.
type ClosureValue struct {
	Matches []core.FnMatch
	Env     *Environment
}

func (*ClosureValue) valueNode()    {}
func (*ClosureValue) String() string { return "<fn>" }

// BuiltinFunc is a host-implemented function (arithmetic, list
// primitives, ...); it receives its argument already evaluated.
type BuiltinFunc struct {
	Name string
	Fn   func(arg Value) (Value, error)
}

func (*BuiltinFunc) valueNode()      {}
func (b *BuiltinFunc) String() string { return "<builtin " + b.Name + ">" }

// FormatTyped renders a value the way the REPL prints top-level results
// (spec §6: "val ⟨name⟩ = ⟨value⟩ : ⟨type⟩"), using t to recover record
// field labels that TupleValue alone cannot express and to print
// list/record element shapes recursively.
func FormatTyped(v Value, t types.Type) string {
	switch val := v.(type) {
	case *ClosureValue, *BuiltinFunc:
		// Spec §6 prints a function's value slot as the bare word "fn",
		// never the closure's captured environment or a builtin's name.
		return "fn"
	case TupleValue:
		if rec, ok := t.(*types.Record); ok && !rec.IsTuple() {
			parts := make([]string, len(rec.Labels))
			for i, l := range rec.Labels {
				parts[i] = fmt.Sprintf("%s = %s", l, FormatTyped(val.Elems[i], rec.Fields[l]))
			}
			return "{" + strings.Join(parts, ", ") + "}"
		}
		elemTypes := recordElemTypes(t, len(val.Elems))
		parts := make([]string, len(val.Elems))
		for i, e := range val.Elems {
			parts[i] = FormatTyped(e, elemTypes[i])
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ListValue:
		lt, _ := t.(*types.List)
		parts := make([]string, len(val.Elems))
		for i, e := range val.Elems {
			var et types.Type = types.Unit
			if lt != nil {
				et = lt.Elem
			}
			parts[i] = FormatTyped(e, et)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.String()
	}
}

func recordElemTypes(t types.Type, n int) []types.Type {
	rec, ok := t.(*types.Record)
	if !ok || len(rec.Labels) != n {
		out := make([]types.Type, n)
		for i := range out {
			out[i] = types.Unit
		}
		return out
	}
	out := make([]types.Type, n)
	for i, l := range rec.Labels {
		out[i] = rec.Fields[l]
	}
	return out
}
