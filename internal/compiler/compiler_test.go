package compiler

import (
	"testing"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/types"
)

func TestCompileAcceptsIdentValRec(t *testing.T) {
	prog := &core.Program{
		Decls: []core.Expr{
			&core.Let{
				Typ: types.Unit,
				Decl: &core.ValDecl{
					Rec: true,
					Bindings: []core.ValBinding{
						{Pat: &core.PatIdent{Typ: types.Int, Name: "fact"}, Rhs: &core.Literal{Typ: types.Int, Value: int64(1)}},
					},
				},
				Body: &core.Literal{Typ: types.Unit, Value: nil},
			},
		},
	}
	out, err := Compile(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(out.Decls))
	}
}

func TestCompileRejectsNonLinkableValRec(t *testing.T) {
	prog := &core.Program{
		Decls: []core.Expr{
			&core.Let{
				Typ: types.Unit,
				Decl: &core.ValDecl{
					Rec: true,
					Bindings: []core.ValBinding{
						{Pat: &core.PatWildcard{Typ: types.Int}, Rhs: &core.Literal{Typ: types.Int, Value: int64(1)}},
					},
				},
				Body: &core.Literal{Typ: types.Unit, Value: nil},
			},
		},
	}
	_, err := Compile(prog)
	if err == nil {
		t.Fatalf("expected an error for a non-linkable val rec pattern")
	}
	rep, ok := coreerrors.AsReport(err)
	if !ok {
		t.Fatalf("expected a *Report-carrying error, got %v", err)
	}
	if rep.Code != coreerrors.CMP003 {
		t.Fatalf("expected code %s, got %s", coreerrors.CMP003, rep.Code)
	}
}

func TestCompileAcceptsLinkableTuple(t *testing.T) {
	prog := &core.Program{
		Decls: []core.Expr{
			&core.Let{
				Typ: types.Unit,
				Decl: &core.ValDecl{
					Rec: true,
					Bindings: []core.ValBinding{
						{
							Pat: &core.PatTuple{
								Typ: types.NewTuple([]types.Type{types.Int, types.Int}),
								Elems: []core.Pat{
									&core.PatIdent{Typ: types.Int, Name: "isEven"},
									&core.PatIdent{Typ: types.Int, Name: "isOdd"},
								},
							},
							Rhs: &core.Tuple{
								Typ:   types.NewTuple([]types.Type{types.Int, types.Int}),
								Elems: []core.Expr{&core.Literal{Typ: types.Int, Value: int64(1)}, &core.Literal{Typ: types.Int, Value: int64(2)}},
							},
						},
					},
				},
				Body: &core.Literal{Typ: types.Unit, Value: nil},
			},
		},
	}
	if _, err := Compile(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
