// Package builtins is the fixed registry of names the interpreter
// provides outside the surface language: infix operators (consulted by
// the resolver when it lowers an ast.Infix to Apply(Literal(op), ...),
// spec §4.2) and ordinary prelude identifiers like List.map (consulted
// by the inferencer's bootstrap environment and, at the same names, by
// the evaluator's initial Environment), as a metadata-table of name,
// type, and implementation, simplified down to this interpreter's
// single (no module/effect system) namespace.
package builtins

import (
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

// entry pairs a builtin's type scheme (for the inferencer) with its
// runtime value (for the evaluator/resolver).
type entry struct {
	scheme *types.Scheme
	value  *eval.BuiltinFunc
}

var registry = map[string]entry{}

func register(name string, scheme *types.Scheme, fn func(arg eval.Value) (eval.Value, error)) {
	registry[name] = entry{scheme: scheme, value: &eval.BuiltinFunc{Name: name, Fn: fn}}
}

// Scheme returns the bootstrap type scheme for a builtin name, for
// internal/types.Env construction.
func Scheme(name string) (*types.Scheme, bool) {
	e, ok := registry[name]
	if !ok {
		return nil, false
	}
	return e.scheme, true
}

// Lookup implements internal/resolver.BuiltinLookup: it returns the
// eval.Value (as interface{}, to avoid resolver importing this
// package) backing a builtin name, or nil if it isn't one.
func Lookup(name string) interface{} {
	e, ok := registry[name]
	if !ok {
		return nil
	}
	return e.value
}

// Env builds the inferencer's bootstrap environment: every registered
// prelude name (not the infix operators, which the inferencer types by
// direct case-dispatch in internal/types/infer_infix.go rather than by
// environment lookup) bound to its scheme.
func Env() *types.Env {
	var env *types.Env
	for name, e := range registry {
		if isOperatorName(name) {
			continue
		}
		env = env.Bind(name, e.scheme)
	}
	return env
}

// Environment builds the evaluator's bootstrap Environment the same
// way, so "List.map"/"hd"/"tl"/... resolve without the resolver having
// needed to inline them as Apply(Literal(...), ...) the way infix
// operators are.
func Environment() *eval.Environment {
	env := eval.NewEnvironment()
	for name, e := range registry {
		if isOperatorName(name) {
			continue
		}
		env.Set(name, e.value)
	}
	return env
}

func isOperatorName(name string) bool {
	for _, op := range operatorNames {
		if op == name {
			return true
		}
	}
	return false
}
