// Package eval executes a compiled core program: closures, pattern
// matching, and the from-query runtime (spec §4.4/§4.5).
package eval

import (
	"fmt"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/compiler"
	"github.com/sml-lang/interp/internal/core"
)

// Evaluator walks a core program against a mutable Environment.
type Evaluator struct {
	env *Environment
}

func NewEvaluator(env *Environment) *Evaluator {
	return &Evaluator{env: env}
}

// Env exposes the evaluator's persistent top-level environment, so a
// driver (REPL, pipeline) can look up the value a just-evaluated
// declaration bound a name to.
func (e *Evaluator) Env() *Environment {
	return e.env
}

// EvalDecl installs decl's bindings directly into the evaluator's own
// environment rather than a child scope, for top-level declarations
// that must remain visible to whatever is evaluated next (spec §5
// ordering guarantee). Contrast evalLet, which is for a nested
// "let ... in ... end" and rightly discards its scope once the body is
// evaluated.
func (e *Evaluator) EvalDecl(decl core.Decl) (Value, error) {
	return e.evalDecl(decl)
}

// EvalProgram evaluates every top-level declaration of a compiled
// program in order, returning the value of the last one. Each
// declaration is the resolver's Let{Decl, Body: Literal(unit)} wrapping
// (internal/resolver.ResolveProgram) — the binding is installed at top
// level via EvalDecl rather than through the generic nested-let path, so
// later declarations in the same program see earlier ones.
func (e *Evaluator) EvalProgram(prog *compiler.CompiledProgram) (Value, error) {
	var last Value = UnitValue{}
	for _, d := range prog.Decls {
		let, ok := d.(*core.Let)
		if !ok {
			v, err := e.Eval(d)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		v, err := e.EvalDecl(let.Decl)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// Eval evaluates a single core expression in the evaluator's current
// environment.
func (e *Evaluator) Eval(expr core.Expr) (Value, error) {
	switch n := expr.(type) {
	case *core.Literal:
		return e.evalLiteral(n)

	case *core.Id:
		v, ok := e.env.Get(n.Name)
		if !ok {
			return nil, coreerrors.NewEval(coreerrors.EVA001, fmt.Sprintf("unbound identifier %q", n.Name), ast.NoPos, nil)
		}
		return v, nil

	case *core.RecordSelector:
		return &BuiltinFunc{
			Name: fmt.Sprintf("#%d", n.Slot),
			Fn: func(arg Value) (Value, error) {
				tv, ok := arg.(TupleValue)
				if !ok || n.Slot < 1 || n.Slot > len(tv.Elems) {
					return nil, coreerrors.NewEval(coreerrors.EVA102, "record selector out of range", ast.NoPos, nil)
				}
				return tv.Elems[n.Slot-1], nil
			},
		}, nil

	case *core.Tuple:
		elems := make([]Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := e.Eval(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return TupleValue{Elems: elems}, nil

	case *core.Apply:
		fn, err := e.Eval(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := e.Eval(n.Arg)
		if err != nil {
			return nil, err
		}
		return e.apply(fn, arg)

	case *core.Fn:
		return &ClosureValue{Matches: n.Matches, Env: e.env}, nil

	case *core.Case:
		return e.evalCase(n)

	case *core.Let:
		return e.evalLet(n)

	case *core.From:
		return e.evalFrom(n)

	default:
		return nil, fmt.Errorf("eval: unsupported core expression %T", expr)
	}
}

func (e *Evaluator) evalLiteral(n *core.Literal) (Value, error) {
	switch v := n.Value.(type) {
	case nil:
		return UnitValue{}, nil
	case bool:
		return BoolValue{Value: v}, nil
	case int64:
		return IntValue{Value: v}, nil
	case float64:
		return RealValue{Value: v}, nil
	case rune:
		return CharValue{Value: v}, nil
	case string:
		return StringValue{Value: v}, nil
	case Value:
		// A builtin-operator literal installed by the resolver already
		// carries its runtime value (spec §4.2's Apply(Literal(builtin), ...)).
		return v, nil
	default:
		return nil, fmt.Errorf("eval: literal of unexpected Go type %T", n.Value)
	}
}

// apply applies fn to arg, dispatching on whether fn is a user closure
// or a host builtin.
func (e *Evaluator) apply(fn, arg Value) (Value, error) {
	return Apply(fn, arg)
}

// Apply applies fn to arg. It is exported so internal/builtins can
// apply a function value it received as an argument (e.g. List.map's
// mapper) without needing an Evaluator of its own.
func Apply(fn, arg Value) (Value, error) {
	switch f := fn.(type) {
	case *ClosureValue:
		for _, m := range f.Matches {
			bindings, ok := matchPattern(m.Pat, arg)
			if !ok {
				continue
			}
			callEnv := f.Env.NewChild()
			for k, v := range bindings {
				callEnv.Set(k, v)
			}
			sub := &Evaluator{env: callEnv}
			return sub.Eval(m.Body)
		}
		return nil, coreerrors.NewEval(coreerrors.EVA001, "no clause matched the function's argument", ast.NoPos, nil)

	case *BuiltinFunc:
		return f.Fn(arg)

	default:
		return nil, fmt.Errorf("eval: value of type %T is not applicable", fn)
	}
}

func (e *Evaluator) evalCase(n *core.Case) (Value, error) {
	scrut, err := e.Eval(n.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, m := range n.Matches {
		bindings, ok := matchPattern(m.Pat, scrut)
		if !ok {
			continue
		}
		caseEnv := e.env.NewChild()
		for k, v := range bindings {
			caseEnv.Set(k, v)
		}
		sub := &Evaluator{env: caseEnv}
		return sub.Eval(m.Body)
	}
	return nil, coreerrors.NewEval(coreerrors.EVA001, "no clause matched the case scrutinee", ast.NoPos, nil)
}

// evalLet evaluates a single declaration then its body, threading any
// new bindings through a child environment (spec §4.2: the resolver has
// already right-associated multi-declaration lets into a chain of
// these).
func (e *Evaluator) evalLet(n *core.Let) (Value, error) {
	letEnv := e.env.NewChild()
	sub := &Evaluator{env: letEnv}
	if _, err := sub.evalDecl(n.Decl); err != nil {
		return nil, err
	}
	return sub.Eval(n.Body)
}

// evalDecl installs a declaration's bindings into the evaluator's
// current environment (mutating it in place) and returns the value of
// its (tuple-shaped, after the resolver's simultaneous-binding rewrite)
// right-hand side.
func (e *Evaluator) evalDecl(decl core.Decl) (Value, error) {
	switch d := decl.(type) {
	case *core.ValDecl:
		return e.evalValDecl(d)
	case *core.DatatypeDecl:
		// Purely compile-time (spec §4.3); nothing to install at runtime.
		return UnitValue{}, nil
	default:
		return nil, fmt.Errorf("eval: unsupported declaration %T", decl)
	}
}

func (e *Evaluator) evalValDecl(d *core.ValDecl) (Value, error) {
	var last Value = UnitValue{}
	for _, b := range d.Bindings {
		var rhs Value
		var err error
		if d.Rec {
			rhs, err = e.evalRecBinding(b)
		} else {
			rhs, err = e.Eval(b.Rhs)
		}
		if err != nil {
			return nil, err
		}
		if !bindPatternInto(e.env, b.Pat, rhs) {
			return nil, coreerrors.NewEval(coreerrors.EVA001, "pattern match failure in val binding", ast.NoPos, nil)
		}
		last = rhs
	}
	return last, nil
}

// evalRecBinding implements "val rec" (spec §4.3): identifier patterns
// (or tuples of identifiers, after the resolver's rewrite) are bound to
// a placeholder before the right-hand side is evaluated, so a closure
// literal on the right-hand side can capture its own binding, via the
// same two-pass placeholder/fill trick used for LetRec bindings.
func (e *Evaluator) evalRecBinding(b core.ValBinding) (Value, error) {
	names, err := preBindPlaceholders(e.env, b.Pat)
	if err != nil {
		return nil, err
	}
	_ = names
	rhs, err := e.Eval(b.Rhs)
	if err != nil {
		return nil, err
	}
	return rhs, nil
}

// preBindPlaceholders walks an identifier or tuple-of-identifiers
// pattern, installing a UnitValue placeholder for each bound name so a
// closure created while evaluating the right-hand side can resolve a
// forward self-reference through the shared environment cell. Any
// other pattern shape cannot recurse (spec §4.3's restriction).
func preBindPlaceholders(env *Environment, pat core.Pat) ([]string, error) {
	switch p := pat.(type) {
	case *core.PatIdent:
		env.Set(p.Name, UnitValue{})
		return []string{p.Name}, nil
	case *core.PatTuple:
		var names []string
		for _, e2 := range p.Elems {
			ns, err := preBindPlaceholders(env, e2)
			if err != nil {
				return nil, err
			}
			names = append(names, ns...)
		}
		return names, nil
	default:
		return nil, coreerrors.NewCompile(coreerrors.CMP003, "val rec left-hand side must bind an identifier or a tuple of identifiers", ast.NoPos, nil)
	}
}

// bindPatternInto matches value against pat and, on success, installs
// every binding it introduces into env; it mutates the same cells
// preBindPlaceholders created for a recursive binding; for tuples that
// contain a closure capturing this same environment, the closure will
// see the final value on its next call since it resolves the name
// through the shared Environment, not a captured copy.
func bindPatternInto(env *Environment, pat core.Pat, value Value) bool {
	bindings, ok := matchPattern(pat, value)
	if !ok {
		return false
	}
	for k, v := range bindings {
		env.Set(k, v)
	}
	return true
}
