package resolver

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/types"
)

// resolveFrom lowers a relational comprehension. Sources, where/order
// steps and aggregates carry over structurally; a nil Yield (spec §4.5
// "default yield is a record of every currently bound name") is made
// explicit here as a record literal built from the visible names in
// their canonical label order, since by this stage there is no later
// pass that could still synthesise it.
func (r *Resolver) resolveFrom(n *ast.From) (core.Expr, error) {
	sources := make([]core.FromSource, len(n.Sources))
	for i, src := range n.Sources {
		pat, err := r.resolvePat(src.Pat)
		if err != nil {
			return nil, err
		}
		exp, err := r.resolveExpr(src.Exp)
		if err != nil {
			return nil, err
		}
		sources[i] = core.FromSource{Pat: pat, Exp: exp}
	}

	steps := make([]core.FromStep, len(n.Steps))
	for i, st := range n.Steps {
		switch st.Kind {
		case ast.StepWhere:
			pred, err := r.resolveExpr(st.Pred)
			if err != nil {
				return nil, err
			}
			steps[i] = core.FromStep{Kind: core.FromWhere, Pred: pred}

		case ast.StepGroup:
			keys := make([]core.Expr, len(st.GroupKeys))
			for gi, k := range st.GroupKeys {
				ck, err := r.resolveExpr(k)
				if err != nil {
					return nil, err
				}
				keys[gi] = ck
			}
			aggs := make([]core.FromAggregate, len(st.Aggregates))
			for ai, agg := range st.Aggregates {
				var arg core.Expr
				if agg.Arg != nil {
					a, err := r.resolveExpr(agg.Arg)
					if err != nil {
						return nil, err
					}
					arg = a
				}
				aggs[ai] = core.FromAggregate{Name: agg.Name, Fn: agg.Fn, Arg: arg}
			}
			steps[i] = core.FromStep{
				Kind:       core.FromGroup,
				GroupKeys:  keys,
				GroupNames: append([]string(nil), st.GroupNames...),
				Aggregates: aggs,
			}

		case ast.StepOrder:
			items := make([]core.FromOrderItem, len(st.OrderItems))
			for oi, it := range st.OrderItems {
				ce, err := r.resolveExpr(it.Exp)
				if err != nil {
					return nil, err
				}
				items[oi] = core.FromOrderItem{Exp: ce, Desc: it.Desc}
			}
			steps[i] = core.FromStep{Kind: core.FromOrder, OrderItems: items}

		default:
			return nil, fmt.Errorf("resolver: unsupported from-step kind %v", st.Kind)
		}
	}

	listT, ok := r.typeOf(n).(*types.List)
	if !ok {
		return nil, fmt.Errorf("resolver: from node's inferred type is not a list (%s)", r.typeOf(n).Moniker())
	}

	var yield core.Expr
	if n.Yield != nil {
		y, err := r.resolveExpr(n.Yield)
		if err != nil {
			return nil, err
		}
		yield = y
	} else {
		rec, ok := listT.Elem.(*types.Record)
		if !ok {
			return nil, fmt.Errorf("resolver: default from-yield type is not a record (%s)", listT.Elem.Moniker())
		}
		elems := make([]core.Expr, len(rec.Labels))
		for i, l := range rec.Labels {
			elems[i] = &core.Id{Typ: rec.Fields[l], Name: l}
		}
		yield = &core.Tuple{Typ: rec, Elems: elems}
	}

	return &core.From{Typ: listT, Sources: sources, Steps: steps, Yield: yield}, nil
}
