package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/builtins"
	"github.com/sml-lang/interp/internal/parser"
	"github.com/sml-lang/interp/internal/types"
)

// monikerComparer treats two types as equal for comparison purposes
// whenever their canonical textual monikers agree, sidestepping the
// fact that a hand-written expected type and an inferred, interned one
// are never the same Go pointer.
var monikerComparer = cmp.Comparer(func(a, b types.Type) bool {
	return a.Moniker() == b.Moniker()
})

func inferSingle(t *testing.T, src string) types.Type {
	t.Helper()
	prog, err := parser.ParseProgram([]byte(src), "test.sml")
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	inf := types.NewInferencer(types.NewStore(), types.NewDataRegistry())
	result, err := inf.InferProgram(builtins.Env(), prog)
	if err != nil {
		t.Fatalf("InferProgram(%q): %v", src, err)
	}
	vd, ok := prog.Decls[len(prog.Decls)-1].(*ast.ValDecl)
	if !ok || len(vd.Bindings) == 0 {
		t.Fatalf("last declaration of %q is not a single value binding", src)
	}
	rhs := vd.Bindings[len(vd.Bindings)-1].Exp
	ty, ok := result.TypeMap[rhs.ID()]
	if !ok {
		t.Fatalf("no inferred type recorded for the last declaration of %q", src)
	}
	return ty
}

func TestInferArithmeticIsInt(t *testing.T) {
	got := inferSingle(t, "1 + 2")
	if diff := cmp.Diff(types.Type(types.Int), got, monikerComparer); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}
}

func TestInferListLiteralElementType(t *testing.T) {
	got := inferSingle(t, "[1,2,3]")
	want := &types.List{Elem: types.Int}
	if diff := cmp.Diff(types.Type(want), got, monikerComparer); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}
}

func TestInferFunctionLiteralType(t *testing.T) {
	got := inferSingle(t, "fn x => x + 1")
	want := &types.Func{Param: types.Int, Result: types.Int}
	if diff := cmp.Diff(types.Type(want), got, monikerComparer); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}
}

func TestInferRecordLiteralFieldOrder(t *testing.T) {
	got := inferSingle(t, "{b = 1, a = true}")
	if got.Moniker() != "{a:bool, b:int}" {
		t.Fatalf("got moniker %q, want labels sorted lexicographically", got.Moniker())
	}
}
