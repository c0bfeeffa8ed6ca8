package builtins

import (
	"fmt"

	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

// registerBoolean registers andalso/orelse. The resolver lowers both to
// the same Apply(Literal(op), Tuple(l, r)) shape as every other infix
// operator (spec §4.2 names them in ast.InfixOps without exception), so
// both operands are evaluated strictly before this function ever runs;
// short-circuiting is not preserved.
func registerBoolean() {
	boolBool := types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{types.Bool, types.Bool}),
		Result: types.Bool,
	})
	register("andalso", boolBool, func(arg eval.Value) (eval.Value, error) {
		l, r, err := boolPair(arg)
		if err != nil {
			return nil, err
		}
		return eval.BoolValue{Value: l && r}, nil
	})
	register("orelse", boolBool, func(arg eval.Value) (eval.Value, error) {
		l, r, err := boolPair(arg)
		if err != nil {
			return nil, err
		}
		return eval.BoolValue{Value: l || r}, nil
	})
}

func boolPair(arg eval.Value) (bool, bool, error) {
	l, r, err := pair(arg)
	if err != nil {
		return false, false, err
	}
	lv, lok := l.(eval.BoolValue)
	rv, rok := r.(eval.BoolValue)
	if !lok || !rok {
		return false, false, fmt.Errorf("builtins: boolean operator expects two bools")
	}
	return lv.Value, rv.Value, nil
}
