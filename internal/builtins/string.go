package builtins

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

// registerString registers "^" (string concatenation) and the
// String.size prelude function. Strings are normalised to NFC before
// any builtin touches them, matching the normalisation the lexer
// applies to source identifiers/string literals (spec §3.1 is silent
// on Unicode equivalence; this keeps both ends of the pipeline using
// the same x/text/unicode/norm form).
func registerString() {
	register("^", types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{types.String, types.String}),
		Result: types.String,
	}), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		lv, lok := l.(eval.StringValue)
		rv, rok := r.(eval.StringValue)
		if !lok || !rok {
			return nil, fmt.Errorf("builtins: \"^\" expects two strings")
		}
		return eval.StringValue{Value: norm.NFC.String(lv.Value + rv.Value)}, nil
	})

	register("String.size", types.Mono(&types.Func{Param: types.String, Result: types.Int}),
		func(arg eval.Value) (eval.Value, error) {
			sv, ok := arg.(eval.StringValue)
			if !ok {
				return nil, fmt.Errorf("builtins: String.size expects a string")
			}
			return eval.IntValue{Value: int64(utf8.RuneCountInString(sv.Value))}, nil
		})
}
