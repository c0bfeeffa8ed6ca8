package types

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
)

// inferFrom types a relational comprehension (spec §4.5). Each source
// must be a list; its pattern binds against the element type. where
// steps must be bool. A group step resets the visible bindings to just
// the group keys and the bound aggregate results (spec: "group resets
// the binding set"). order steps change no bindings. The overall result
// is a list of the yield expression's type, or of the default record of
// every binding visible at that point if no yield is given.
func (inf *Inferencer) inferFrom(env *Env, n *ast.From) (Type, error) {
	cur := env
	var visible []string
	for _, src := range n.Sources {
		st, err := inf.inferExpr(env, src.Exp)
		if err != nil {
			return nil, err
		}
		elemT := Type(inf.freshVar())
		if err := inf.subst.Unify(st, &List{Elem: elemT}, src.Exp.Pos()); err != nil {
			return nil, err
		}
		cur, err = inf.bindPattern(cur, src.Pat, elemT)
		if err != nil {
			return nil, err
		}
		visible = append(visible, ast.Names(src.Pat)...)
	}

	for i := range n.Steps {
		step := &n.Steps[i]
		switch step.Kind {
		case ast.StepWhere:
			pt, err := inf.inferExpr(cur, step.Pred)
			if err != nil {
				return nil, err
			}
			if err := inf.subst.Unify(pt, Bool, step.Pred.Pos()); err != nil {
				return nil, err
			}

		case ast.StepGroup:
			next := env
			visible = nil
			for gi, key := range step.GroupKeys {
				kt, err := inf.inferExpr(cur, key)
				if err != nil {
					return nil, err
				}
				next = next.Bind(step.GroupNames[gi], Mono(kt))
				visible = append(visible, step.GroupNames[gi])
			}
			for _, agg := range step.Aggregates {
				at, err := inf.inferAggregate(cur, agg)
				if err != nil {
					return nil, err
				}
				next = next.Bind(agg.Name, Mono(at))
				visible = append(visible, agg.Name)
			}
			cur = next

		case ast.StepOrder:
			for _, item := range step.OrderItems {
				if _, err := inf.inferExpr(cur, item.Exp); err != nil {
					return nil, err
				}
			}
		}
	}

	var yieldT Type
	if n.Yield != nil {
		t, err := inf.inferExpr(cur, n.Yield)
		if err != nil {
			return nil, err
		}
		yieldT = t
	} else {
		// Default yield: the record of every currently-bound source/group
		// field (spec §4.5 step 3).
		fields := map[string]Type{}
		for _, name := range visible {
			scheme, ok := cur.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("internal: default yield field %q not bound", name)
			}
			fields[name] = Instantiate(scheme, inf.freshVar)
		}
		yieldT = NewRecord(fields)
	}
	return inf.record(n, &List{Elem: yieldT}), nil
}

func (inf *Inferencer) inferAggregate(env *Env, agg ast.Aggregate) (Type, error) {
	switch agg.Fn {
	case "count":
		return Int, nil
	case "sum", "min", "max", "avg":
		if agg.Arg == nil {
			return nil, fmt.Errorf("aggregate %q requires an argument expression", agg.Fn)
		}
		t, err := inf.inferExpr(env, agg.Arg)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown aggregate %q", agg.Fn)
	}
}
