package eval

import (
	"testing"

	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/types"
)

func TestEvalApplyIdentityClosure(t *testing.T) {
	env := NewEnvironment()
	e := NewEvaluator(env)

	// fn x => x
	fn := &core.Fn{
		Typ: &types.Func{Param: types.Int, Result: types.Int},
		Matches: []core.FnMatch{
			{Pat: &core.PatIdent{Typ: types.Int, Name: "x"}, Body: &core.Id{Typ: types.Int, Name: "x"}},
		},
	}
	apply := &core.Apply{
		Typ: types.Int,
		Fn:  fn,
		Arg: &core.Literal{Typ: types.Int, Value: int64(7)},
	}

	v, err := e.Eval(apply)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	iv, ok := v.(IntValue)
	if !ok || iv.Value != 7 {
		t.Fatalf("expected IntValue{7}, got %#v", v)
	}
}

func TestEvalValRecFactorial(t *testing.T) {
	env := NewEnvironment()
	e := NewEvaluator(env)

	// val rec fact = fn n => case n of 0 => 1 | n => n * fact (n-1)
	// Modelled directly with builtin closures standing in for "*" and "-"
	// (the 0 case is a literal pattern) so the test exercises the rec-binding/self-reference path
	// without depending on internal/builtins.
	minus := &BuiltinFunc{Name: "-", Fn: func(arg Value) (Value, error) {
		tv := arg.(TupleValue)
		return IntValue{Value: tv.Elems[0].(IntValue).Value - tv.Elems[1].(IntValue).Value}, nil
	}}
	times := &BuiltinFunc{Name: "*", Fn: func(arg Value) (Value, error) {
		tv := arg.(TupleValue)
		return IntValue{Value: tv.Elems[0].(IntValue).Value * tv.Elems[1].(IntValue).Value}, nil
	}}
	env.Set("-", minus)
	env.Set("*", times)

	body := &core.Case{
		Typ:       types.Int,
		Scrutinee: &core.Id{Typ: types.Int, Name: "n"},
		Matches: []core.FnMatch{
			{Pat: &core.PatLiteral{Typ: types.Int, Value: int64(0)}, Body: &core.Literal{Typ: types.Int, Value: int64(1)}},
			{
				Pat: &core.PatIdent{Typ: types.Int, Name: "n"},
				Body: &core.Apply{
					Typ: types.Int,
					Fn:  &core.Id{Typ: &types.Func{Param: types.Int, Result: types.Int}, Name: "*"},
					Arg: &core.Tuple{Typ: types.NewTuple([]types.Type{types.Int, types.Int}), Elems: []core.Expr{
						&core.Id{Typ: types.Int, Name: "n"},
						&core.Apply{
							Typ: types.Int,
							Fn:  &core.Id{Typ: &types.Func{Param: types.Int, Result: types.Int}, Name: "fact"},
							Arg: &core.Apply{
								Typ: types.Int,
								Fn:  &core.Id{Typ: &types.Func{Param: types.Int, Result: types.Int}, Name: "-"},
								Arg: &core.Tuple{Typ: types.NewTuple([]types.Type{types.Int, types.Int}), Elems: []core.Expr{
									&core.Id{Typ: types.Int, Name: "n"},
									&core.Literal{Typ: types.Int, Value: int64(1)},
								}},
							},
						},
					}},
				},
			},
		},
	}

	decl := &core.ValDecl{
		Rec: true,
		Bindings: []core.ValBinding{
			{
				Pat: &core.PatIdent{Typ: &types.Func{Param: types.Int, Result: types.Int}, Name: "fact"},
				Rhs: &core.Fn{
					Typ:     &types.Func{Param: types.Int, Result: types.Int},
					Matches: []core.FnMatch{{Pat: &core.PatIdent{Typ: types.Int, Name: "n"}, Body: body}},
				},
			},
		},
	}

	let := &core.Let{
		Typ:  types.Int,
		Decl: decl,
		Body: &core.Apply{
			Typ: types.Int,
			Fn:  &core.Id{Typ: &types.Func{Param: types.Int, Result: types.Int}, Name: "fact"},
			Arg: &core.Literal{Typ: types.Int, Value: int64(5)},
		},
	}

	v, err := e.Eval(let)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	iv, ok := v.(IntValue)
	if !ok || iv.Value != 120 {
		t.Fatalf("expected IntValue{120}, got %#v", v)
	}
}

func TestEvalFromWhereYield(t *testing.T) {
	env := NewEnvironment()
	e := NewEvaluator(env)

	nums := ListValue{Elems: []Value{
		IntValue{Value: 1}, IntValue{Value: 2}, IntValue{Value: 3}, IntValue{Value: 4},
	}}
	env.Set("nums", nums)

	lt := &BuiltinFunc{Name: "<", Fn: func(arg Value) (Value, error) {
		tv := arg.(TupleValue)
		return BoolValue{Value: tv.Elems[0].(IntValue).Value < tv.Elems[1].(IntValue).Value}, nil
	}}
	env.Set("<", lt)

	from := &core.From{
		Typ: &types.List{Elem: types.Int},
		Sources: []core.FromSource{
			{Pat: &core.PatIdent{Typ: types.Int, Name: "x"}, Exp: &core.Id{Typ: &types.List{Elem: types.Int}, Name: "nums"}},
		},
		Steps: []core.FromStep{
			{
				Kind: core.FromWhere,
				Pred: &core.Apply{
					Typ: types.Bool,
					Fn:  &core.Id{Typ: &types.Func{Param: types.NewTuple([]types.Type{types.Int, types.Int}), Result: types.Bool}, Name: "<"},
					Arg: &core.Tuple{Typ: types.NewTuple([]types.Type{types.Int, types.Int}), Elems: []core.Expr{
						&core.Id{Typ: types.Int, Name: "x"},
						&core.Literal{Typ: types.Int, Value: int64(3)},
					}},
				},
			},
		},
		Yield: &core.Id{Typ: types.Int, Name: "x"},
	}

	v, err := e.Eval(from)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	lv, ok := v.(ListValue)
	if !ok || len(lv.Elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	if lv.Elems[0].(IntValue).Value != 1 || lv.Elems[1].(IntValue).Value != 2 {
		t.Fatalf("unexpected elements: %v", lv.Elems)
	}
}
