package builtins

import (
	"fmt"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

func registerList() {
	a := &types.Var{Name: "a"}

	// Z_LIST is the resolver's list-literal target (spec §4.2): it is
	// never looked up by surface name, only installed as a core.Literal
	// value by internal/resolver.resolveList, so its "scheme" here only
	// documents intent and is unused by the inferencer.
	register("Z_LIST", types.Mono(&types.Func{Param: types.Unit, Result: &types.List{Elem: a}}),
		func(arg eval.Value) (eval.Value, error) {
			tv, ok := arg.(eval.TupleValue)
			if !ok {
				return nil, fmt.Errorf("builtins: Z_LIST expects a tuple of elements")
			}
			return eval.ListValue{Elems: tv.Elems}, nil
		})

	register("::", types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{a, &types.List{Elem: a}}),
		Result: &types.List{Elem: a},
	}), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		lv, ok := r.(eval.ListValue)
		if !ok {
			return nil, fmt.Errorf("builtins: \"::\" expects a list on the right")
		}
		elems := make([]eval.Value, 0, len(lv.Elems)+1)
		elems = append(elems, l)
		elems = append(elems, lv.Elems...)
		return eval.ListValue{Elems: elems}, nil
	})

	register("@", types.Mono(&types.Func{
		Param:  types.NewTuple([]types.Type{&types.List{Elem: a}, &types.List{Elem: a}}),
		Result: &types.List{Elem: a},
	}), func(arg eval.Value) (eval.Value, error) {
		l, r, err := pair(arg)
		if err != nil {
			return nil, err
		}
		lv, lok := l.(eval.ListValue)
		rv, rok := r.(eval.ListValue)
		if !lok || !rok {
			return nil, fmt.Errorf("builtins: \"@\" expects two lists")
		}
		elems := make([]eval.Value, 0, len(lv.Elems)+len(rv.Elems))
		elems = append(elems, lv.Elems...)
		elems = append(elems, rv.Elems...)
		return eval.ListValue{Elems: elems}, nil
	})

	register("hd", types.Mono(&types.Func{Param: &types.List{Elem: a}, Result: a}),
		func(arg eval.Value) (eval.Value, error) {
			lv, ok := arg.(eval.ListValue)
			if !ok || len(lv.Elems) == 0 {
				return nil, coreerrors.NewEval(coreerrors.EVA101, "hd of an empty list", ast.NoPos, nil)
			}
			return lv.Elems[0], nil
		})

	register("tl", types.Mono(&types.Func{Param: &types.List{Elem: a}, Result: &types.List{Elem: a}}),
		func(arg eval.Value) (eval.Value, error) {
			lv, ok := arg.(eval.ListValue)
			if !ok || len(lv.Elems) == 0 {
				return nil, coreerrors.NewEval(coreerrors.EVA101, "tl of an empty list", ast.NoPos, nil)
			}
			return eval.ListValue{Elems: lv.Elems[1:]}, nil
		})

	register("null", types.Mono(&types.Func{Param: &types.List{Elem: a}, Result: types.Bool}),
		func(arg eval.Value) (eval.Value, error) {
			lv, ok := arg.(eval.ListValue)
			if !ok {
				return nil, fmt.Errorf("builtins: null expects a list")
			}
			return eval.BoolValue{Value: len(lv.Elems) == 0}, nil
		})

	register("length", types.Mono(&types.Func{Param: &types.List{Elem: a}, Result: types.Int}),
		func(arg eval.Value) (eval.Value, error) {
			lv, ok := arg.(eval.ListValue)
			if !ok {
				return nil, fmt.Errorf("builtins: length expects a list")
			}
			return eval.IntValue{Value: int64(len(lv.Elems))}, nil
		})

	registerListMap()
}

// registerListMap registers List.map : ('a -> 'b) -> 'a list -> 'b list
// as a curried function of the mapper, so "List.map f xs" still reads
// as two ordinary applications at the surface (spec §3.3 keeps Apply
// single-argument; List.map's own implementation just closes over its
// first argument rather than relying on tupling).
func registerListMap() {
	a := &types.Var{Name: "a"}
	b := &types.Var{Name: "b"}
	scheme := &types.Scheme{Vars: []string{"a", "b"}, Type: &types.Func{
		Param: &types.Func{Param: a, Result: b},
		Result: &types.Func{
			Param:  &types.List{Elem: a},
			Result: &types.List{Elem: b},
		},
	}}
	register("List.map", scheme, func(mapperV eval.Value) (eval.Value, error) {
		return &eval.BuiltinFunc{
			Name: "List.map(f)",
			Fn: func(listV eval.Value) (eval.Value, error) {
				lv, ok := listV.(eval.ListValue)
				if !ok {
					return nil, fmt.Errorf("builtins: List.map expects a list as its second argument")
				}
				out := make([]eval.Value, len(lv.Elems))
				for i, e := range lv.Elems {
					v, err := eval.Apply(mapperV, e)
					if err != nil {
						return nil, err
					}
					out[i] = v
				}
				return eval.ListValue{Elems: out}, nil
			},
		}, nil
	})
}
