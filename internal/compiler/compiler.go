// Package compiler sits between internal/optimize and internal/eval: it
// statically validates a core program before a single expression of it
// ever runs. The core AST's own node set (Literal/Id/Apply/Tuple/Fn/
// Case/Let/From) is already the combinator form spec §3.3 describes —
// internal/resolver built it to be directly executable — so there is no
// separate bytecode or closure-tree stage to generate here. What the
// compiler adds is the work that has to happen once, up front, rather
// than be rediscovered on every evaluation: rejecting val rec bindings
// whose left-hand pattern can never support the forward-reference trick
// (spec §4.3).
package compiler

import (
	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/core"
)

// CompiledProgram is a core.Program that has passed compile-time
// validation. It carries no extra code representation: Decls is the
// same combinator tree internal/eval walks directly.
type CompiledProgram struct {
	Decls []core.Expr
}

// Compile validates prog and, on success, returns a CompiledProgram
// wrapping its declarations unchanged.
func Compile(prog *core.Program) (*CompiledProgram, error) {
	for _, d := range prog.Decls {
		if err := checkExpr(d); err != nil {
			return nil, err
		}
	}
	return &CompiledProgram{Decls: prog.Decls}, nil
}

// checkExpr walks expr looking for val rec declarations, the only
// construct with a compile-time-checkable shape restriction (spec
// §4.3): everything else core carries has already been validated by
// the type checker or the resolver.
func checkExpr(expr core.Expr) error {
	switch n := expr.(type) {
	case *core.Tuple:
		for _, el := range n.Elems {
			if err := checkExpr(el); err != nil {
				return err
			}
		}
	case *core.Apply:
		if err := checkExpr(n.Fn); err != nil {
			return err
		}
		return checkExpr(n.Arg)
	case *core.Fn:
		for _, m := range n.Matches {
			if err := checkExpr(m.Body); err != nil {
				return err
			}
		}
	case *core.Case:
		if err := checkExpr(n.Scrutinee); err != nil {
			return err
		}
		for _, m := range n.Matches {
			if err := checkExpr(m.Body); err != nil {
				return err
			}
		}
	case *core.Let:
		if err := checkDecl(n.Decl); err != nil {
			return err
		}
		return checkExpr(n.Body)
	case *core.From:
		for _, s := range n.Sources {
			if err := checkExpr(s.Exp); err != nil {
				return err
			}
		}
		for i := range n.Steps {
			step := &n.Steps[i]
			if step.Pred != nil {
				if err := checkExpr(step.Pred); err != nil {
					return err
				}
			}
			for _, k := range step.GroupKeys {
				if err := checkExpr(k); err != nil {
					return err
				}
			}
			for _, agg := range step.Aggregates {
				if agg.Arg != nil {
					if err := checkExpr(agg.Arg); err != nil {
						return err
					}
				}
			}
			for _, o := range step.OrderItems {
				if err := checkExpr(o.Exp); err != nil {
					return err
				}
			}
		}
		return checkExpr(n.Yield)
	}
	return nil
}

func checkDecl(decl core.Decl) error {
	d, ok := decl.(*core.ValDecl)
	if !ok {
		return nil
	}
	for _, b := range d.Bindings {
		if d.Rec {
			if !isLinkablePat(b.Pat) {
				return coreerrors.NewCompile(coreerrors.CMP003,
					"val rec left-hand side must bind an identifier or a tuple of identifiers", ast.NoPos, nil)
			}
		}
		if err := checkExpr(b.Rhs); err != nil {
			return err
		}
	}
	return nil
}

// isLinkablePat reports whether pat is shaped so the evaluator's
// placeholder-then-fill forward-reference trick (spec §4.3) can bind it
// before its right-hand side runs: an identifier, or a tuple composed
// recursively of the same.
func isLinkablePat(pat core.Pat) bool {
	switch p := pat.(type) {
	case *core.PatIdent:
		return true
	case *core.PatTuple:
		for _, el := range p.Elems {
			if !isLinkablePat(el) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
