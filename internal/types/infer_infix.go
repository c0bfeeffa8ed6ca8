package types

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
)

// inferInfix type-checks a surface infix operator (one of the seventeen
// in ast.InfixOps, which the resolver later rewrites to
// Apply(FnLiteral(op), Tuple(l,r))). Typing happens here, before that
// rewrite, because the resolver runs after inference in the pipeline.
// Arithmetic is typed by unifying both operands and the result together
// rather than through a full type-class mechanism — numeric overloading
// beyond int/real is a declared non-goal (spec §1). The operand type is
// not restricted to int or real here.
func (inf *Inferencer) inferInfix(env *Env, n *ast.Infix) (Type, error) {
	lt, err := inf.inferExpr(env, n.Left)
	if err != nil {
		return nil, err
	}
	rt, err := inf.inferExpr(env, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+", "-", "*", "/", "div", "mod":
		if err := inf.subst.Unify(lt, rt, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, lt), nil

	case "^":
		if err := inf.subst.Unify(lt, String, n.Pos()); err != nil {
			return nil, err
		}
		if err := inf.subst.Unify(rt, String, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, String), nil

	case "=", "<>", "<", ">", "<=", ">=":
		if err := inf.subst.Unify(lt, rt, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, Bool), nil

	case "::":
		if err := inf.subst.Unify(rt, &List{Elem: lt}, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, rt), nil

	case "@":
		if err := inf.subst.Unify(lt, rt, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, lt), nil

	case "andalso", "orelse":
		if err := inf.subst.Unify(lt, Bool, n.Pos()); err != nil {
			return nil, err
		}
		if err := inf.subst.Unify(rt, Bool, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, Bool), nil

	default:
		return nil, fmt.Errorf("unknown infix operator %q", n.Operator)
	}
}
