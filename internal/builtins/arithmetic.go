package builtins

import (
	"fmt"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

// numericScheme gives '+','-','*' the scheme (('a * 'a) -> 'a); the
// inferencer never instantiates it (spec's inferInfix types these
// operators by direct dispatch rather than environment lookup, per the
// non-goal "numeric overloading beyond int/real"), but runtime still
// needs a single dispatch point per symbol, which registering one
// scheme + one impl per name gives it.
func numericScheme() *types.Scheme {
	a := &types.Var{Name: "a"}
	return &types.Scheme{Vars: []string{"a"}, Type: &types.Func{
		Param:  types.NewTuple([]types.Type{a, a}),
		Result: a,
	}}
}

func pair(arg eval.Value) (eval.Value, eval.Value, error) {
	tv, ok := arg.(eval.TupleValue)
	if !ok || len(tv.Elems) != 2 {
		return nil, nil, fmt.Errorf("builtins: expected a 2-tuple argument, got %T", arg)
	}
	return tv.Elems[0], tv.Elems[1], nil
}

func registerArithmetic() {
	register("+", numericScheme(), func(arg eval.Value) (eval.Value, error) {
		return numericOp(arg, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	})
	register("-", numericScheme(), func(arg eval.Value) (eval.Value, error) {
		return numericOp(arg, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	})
	register("*", numericScheme(), func(arg eval.Value) (eval.Value, error) {
		return numericOp(arg, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	})
	register("/", types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{types.Real, types.Real}),
		Result: types.Real,
	}), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		lv, lok := l.(eval.RealValue)
		rv, rok := r.(eval.RealValue)
		if !lok || !rok {
			return nil, fmt.Errorf("builtins: \"/\" expects two reals")
		}
		if rv.Value == 0 {
			return nil, coreerrors.NewEval(coreerrors.EVA100, "division by zero", ast.NoPos, nil)
		}
		return eval.RealValue{Value: lv.Value / rv.Value}, nil
	})
	register("div", types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{types.Int, types.Int}),
		Result: types.Int,
	}), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		lv, lok := l.(eval.IntValue)
		rv, rok := r.(eval.IntValue)
		if !lok || !rok {
			return nil, fmt.Errorf("builtins: \"div\" expects two ints")
		}
		if rv.Value == 0 {
			return nil, coreerrors.NewEval(coreerrors.EVA100, "division by zero", ast.NoPos, nil)
		}
		return eval.IntValue{Value: floorDiv(lv.Value, rv.Value)}, nil
	})
	register("mod", types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{types.Int, types.Int}),
		Result: types.Int,
	}), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		lv, lok := l.(eval.IntValue)
		rv, rok := r.(eval.IntValue)
		if !lok || !rok {
			return nil, fmt.Errorf("builtins: \"mod\" expects two ints")
		}
		if rv.Value == 0 {
			return nil, coreerrors.NewEval(coreerrors.EVA100, "division by zero", ast.NoPos, nil)
		}
		return eval.IntValue{Value: lv.Value - floorDiv(lv.Value, rv.Value)*rv.Value}, nil
	})
}

// floorDiv implements SML's div, which rounds toward negative infinity
// (unlike Go's truncating /).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func numericOp(arg eval.Value, foldInt func(a, b int64) int64, foldReal func(a, b float64) float64) (eval.Value, error) {
	l, r, err := pair(arg)
	if err != nil {
		return nil, err
	}
	switch lv := l.(type) {
	case eval.IntValue:
		rv, ok := r.(eval.IntValue)
		if !ok {
			return nil, fmt.Errorf("builtins: mixed int/real operands")
		}
		return eval.IntValue{Value: foldInt(lv.Value, rv.Value)}, nil
	case eval.RealValue:
		rv, ok := r.(eval.RealValue)
		if !ok {
			return nil, fmt.Errorf("builtins: mixed int/real operands")
		}
		return eval.RealValue{Value: foldReal(lv.Value, rv.Value)}, nil
	default:
		return nil, fmt.Errorf("builtins: arithmetic operand is not numeric (%T)", l)
	}
}
