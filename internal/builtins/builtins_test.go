package builtins

import (
	"testing"

	"github.com/sml-lang/interp/internal/eval"
)

func applyOp(t *testing.T, name string, args ...eval.Value) eval.Value {
	t.Helper()
	v := Lookup(name)
	if v == nil {
		t.Fatalf("builtin %q not registered", name)
	}
	fn, ok := v.(*eval.BuiltinFunc)
	if !ok {
		t.Fatalf("builtin %q is not a BuiltinFunc", name)
	}
	var arg eval.Value
	if len(args) == 1 {
		arg = args[0]
	} else {
		arg = eval.TupleValue{Elems: args}
	}
	out, err := fn.Fn(arg)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return out
}

func TestArithmetic(t *testing.T) {
	v := applyOp(t, "+", eval.IntValue{Value: 2}, eval.IntValue{Value: 3})
	if v.(eval.IntValue).Value != 5 {
		t.Fatalf("expected 5, got %v", v)
	}
}

func TestFloorDivAndMod(t *testing.T) {
	v := applyOp(t, "div", eval.IntValue{Value: -7}, eval.IntValue{Value: 2})
	if v.(eval.IntValue).Value != -4 {
		t.Fatalf("expected -7 div 2 = -4, got %v", v)
	}
	v = applyOp(t, "mod", eval.IntValue{Value: -7}, eval.IntValue{Value: 2})
	if v.(eval.IntValue).Value != 1 {
		t.Fatalf("expected -7 mod 2 = 1, got %v", v)
	}
}

func TestDivisionByZero(t *testing.T) {
	v := Lookup("div")
	fn := v.(*eval.BuiltinFunc)
	_, err := fn.Fn(eval.TupleValue{Elems: []eval.Value{eval.IntValue{Value: 1}, eval.IntValue{Value: 0}}})
	if err == nil {
		t.Fatalf("expected division-by-zero error")
	}
}

func TestConsAndAppend(t *testing.T) {
	list := eval.ListValue{Elems: []eval.Value{eval.IntValue{Value: 2}, eval.IntValue{Value: 3}}}
	v := applyOp(t, "::", eval.IntValue{Value: 1}, list)
	lv := v.(eval.ListValue)
	if len(lv.Elems) != 3 || lv.Elems[0].(eval.IntValue).Value != 1 {
		t.Fatalf("unexpected cons result: %v", lv)
	}

	v = applyOp(t, "@", list, list)
	lv = v.(eval.ListValue)
	if len(lv.Elems) != 4 {
		t.Fatalf("expected append to yield 4 elements, got %d", len(lv.Elems))
	}
}

func TestEqualityAndOrdering(t *testing.T) {
	v := applyOp(t, "=", eval.StringValue{Value: "ab"}, eval.StringValue{Value: "ab"})
	if !v.(eval.BoolValue).Value {
		t.Fatalf("expected equal strings to compare equal")
	}
	v = applyOp(t, "<", eval.IntValue{Value: 1}, eval.IntValue{Value: 2})
	if !v.(eval.BoolValue).Value {
		t.Fatalf("expected 1 < 2")
	}
}

func TestStringConcatAndSize(t *testing.T) {
	v := applyOp(t, "^", eval.StringValue{Value: "foo"}, eval.StringValue{Value: "bar"})
	if v.(eval.StringValue).Value != "foobar" {
		t.Fatalf("unexpected concat result: %v", v)
	}
	v = applyOp(t, "String.size", eval.StringValue{Value: "hello"})
	if v.(eval.IntValue).Value != 5 {
		t.Fatalf("expected size 5, got %v", v)
	}
}

func TestListMap(t *testing.T) {
	double := &eval.BuiltinFunc{Name: "double", Fn: func(v eval.Value) (eval.Value, error) {
		return eval.IntValue{Value: v.(eval.IntValue).Value * 2}, nil
	}}
	mapFn := Lookup("List.map").(*eval.BuiltinFunc)
	partial, err := mapFn.Fn(double)
	if err != nil {
		t.Fatalf("List.map(f): %v", err)
	}
	listFn := partial.(*eval.BuiltinFunc)
	out, err := listFn.Fn(eval.ListValue{Elems: []eval.Value{eval.IntValue{Value: 1}, eval.IntValue{Value: 2}}})
	if err != nil {
		t.Fatalf("List.map(f)(xs): %v", err)
	}
	lv := out.(eval.ListValue)
	if lv.Elems[0].(eval.IntValue).Value != 2 || lv.Elems[1].(eval.IntValue).Value != 4 {
		t.Fatalf("unexpected map result: %v", lv)
	}
}
