package builtins

import (
	"fmt"

	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

func comparisonScheme() *types.Scheme {
	a := &types.Var{Name: "a"}
	return &types.Scheme{Vars: []string{"a"}, Type: &types.Func{
		Param:  types.NewTuple([]types.Type{a, a}),
		Result: types.Bool,
	}}
}

func registerComparison() {
	register("=", comparisonScheme(), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		eq, err := valuesEqual(l, r)
		if err != nil {
			return nil, err
		}
		return eval.BoolValue{Value: eq}, nil
	})
	register("<>", comparisonScheme(), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		eq, err := valuesEqual(l, r)
		if err != nil {
			return nil, err
		}
		return eval.BoolValue{Value: !eq}, nil
	})
	register("<", comparisonScheme(), orderedOp(func(c int) bool { return c < 0 }))
	register(">", comparisonScheme(), orderedOp(func(c int) bool { return c > 0 }))
	register("<=", comparisonScheme(), orderedOp(func(c int) bool { return c <= 0 }))
	register(">=", comparisonScheme(), orderedOp(func(c int) bool { return c >= 0 }))
}

func orderedOp(accept func(c int) bool) func(arg eval.Value) (eval.Value, error) {
	return func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		c, err := eval.Compare(l, r)
		if err != nil {
			return nil, err
		}
		return eval.BoolValue{Value: accept(c)}, nil
	}
}

// valuesEqual implements structural equality over the value shapes the
// surface language can actually produce (non-goal: no equality on
// function values).
func valuesEqual(a, b eval.Value) (bool, error) {
	switch av := a.(type) {
	case eval.IntValue:
		bv, ok := b.(eval.IntValue)
		return ok && av.Value == bv.Value, nil
	case eval.RealValue:
		bv, ok := b.(eval.RealValue)
		return ok && av.Value == bv.Value, nil
	case eval.BoolValue:
		bv, ok := b.(eval.BoolValue)
		return ok && av.Value == bv.Value, nil
	case eval.CharValue:
		bv, ok := b.(eval.CharValue)
		return ok && av.Value == bv.Value, nil
	case eval.StringValue:
		bv, ok := b.(eval.StringValue)
		return ok && av.Value == bv.Value, nil
	case eval.UnitValue:
		_, ok := b.(eval.UnitValue)
		return ok, nil
	case eval.TupleValue:
		bv, ok := b.(eval.TupleValue)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false, nil
		}
		for i := range av.Elems {
			eq, err := valuesEqual(av.Elems[i], bv.Elems[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case eval.ListValue:
		bv, ok := b.(eval.ListValue)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false, nil
		}
		for i := range av.Elems {
			eq, err := valuesEqual(av.Elems[i], bv.Elems[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case eval.ConstructorValue:
		bv, ok := b.(eval.ConstructorValue)
		if !ok || av.Name != bv.Name {
			return false, nil
		}
		if av.Arg == nil || bv.Arg == nil {
			return av.Arg == nil && bv.Arg == nil, nil
		}
		return valuesEqual(av.Arg, bv.Arg)
	default:
		return false, fmt.Errorf("builtins: value of type %T does not support equality", a)
	}
}
