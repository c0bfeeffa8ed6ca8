// Package resolver normalises the surface AST into the core AST (spec
// §4.2): it eliminates syntactic sugar (if -> case; infix operators ->
// application of a built-in function literal; multi-clause "val ... and
// ..." -> one tuple-valued binding; multi-clause fn -> fn x => case x of
// ...), canonicalises record patterns to positional order, and attaches
// a concrete type (read from the inferencer's type map) to every node.
// It is a total, semantics-preserving function: core-shaped input maps
// back to itself (spec §8 "Resolver is idempotent on core-shaped
// inputs").
package resolver

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/types"
)

// Resolver owns the monotonically increasing fresh-name counter (spec
// §4.2 "Name generation"): generated names are "v0", "v1", ... and are
// guaranteed distinct from any source identifier because the lexer
// rejects any identifier that begins with 'v' followed by a digit.
type Resolver struct {
	typeMap   map[uint64]types.Type
	datatypes *types.DataRegistry
	builtins  BuiltinLookup
	fresh     int
}

// BuiltinLookup resolves an infix operator symbol to the core literal
// value representing its implementation, so the resolver can build
// Apply(Literal(builtin), Tuple(l, r)) without depending on
// internal/builtins directly; the caller supplies the lookup.
type BuiltinLookup func(symbol string) interface{}

func New(typeMap map[uint64]types.Type, datatypes *types.DataRegistry, builtins BuiltinLookup) *Resolver {
	return &Resolver{typeMap: typeMap, datatypes: datatypes, builtins: builtins}
}

func (r *Resolver) freshName() string {
	name := fmt.Sprintf("v%d", r.fresh)
	r.fresh++
	return name
}

func (r *Resolver) typeOf(n ast.Node) types.Type {
	if t, ok := r.typeMap[n.ID()]; ok {
		return t
	}
	return types.Unit
}

// ResolveProgram lowers every declaration of a surface program in order.
func (r *Resolver) ResolveProgram(prog *ast.Program) (*core.Program, error) {
	out := &core.Program{}
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.ValDecl:
			cd, err := r.resolveValDecl(decl)
			if err != nil {
				return nil, err
			}
			out.Decls = append(out.Decls, &core.Let{
				Typ:  bindingsResultType(cd),
				Decl: cd,
				Body: &core.Literal{Typ: types.Unit, Value: nil},
			})
		case *ast.DatatypeDecl:
			// The inferencer already declared decl (inferDatatypeDecl)
			// to type its constructors; reuse that *Datatype rather than
			// building a second one, so core.DatatypeDecl and every
			// constructor type the inferencer recorded point at the
			// same object.
			dt, ok := r.datatypes.ByName(decl.Name)
			if !ok {
				var err error
				dt, err = r.datatypes.Declare(decl)
				if err != nil {
					return nil, err
				}
			}
			out.Decls = append(out.Decls, &core.Let{
				Typ:  types.Unit,
				Decl: &core.DatatypeDecl{Datatype: dt},
				Body: &core.Literal{Typ: types.Unit, Value: nil},
			})
		default:
			return nil, fmt.Errorf("resolver: unsupported declaration %T", d)
		}
	}
	return out, nil
}

func bindingsResultType(d *core.ValDecl) types.Type {
	if len(d.Bindings) == 0 {
		return types.Unit
	}
	return d.Bindings[len(d.Bindings)-1].Rhs.Type()
}

// resolveValDecl implements spec §4.2's simultaneous-binding rewrite:
// "val x1=e1 and x2=e2 and ..." becomes "val (x1,x2,...) = (e1,e2,...)",
// with Rec set if any clause was recursive.
func (r *Resolver) resolveValDecl(decl *ast.ValDecl) (*core.ValDecl, error) {
	if len(decl.Bindings) == 1 {
		pat, err := r.resolvePat(decl.Bindings[0].Pat)
		if err != nil {
			return nil, err
		}
		rhs, err := r.resolveExpr(decl.Bindings[0].Exp)
		if err != nil {
			return nil, err
		}
		return &core.ValDecl{Rec: decl.Rec, Bindings: []core.ValBinding{{Pat: pat, Rhs: rhs}}}, nil
	}

	pats := make([]core.Pat, len(decl.Bindings))
	rhss := make([]core.Expr, len(decl.Bindings))
	patTypes := make([]types.Type, len(decl.Bindings))
	for i, b := range decl.Bindings {
		p, err := r.resolvePat(b.Pat)
		if err != nil {
			return nil, err
		}
		e, err := r.resolveExpr(b.Exp)
		if err != nil {
			return nil, err
		}
		pats[i] = p
		rhss[i] = e
		patTypes[i] = p.Type()
	}
	tuplePat := &core.PatTuple{Typ: types.NewTuple(patTypes), Elems: pats}
	tupleRhsTypes := make([]types.Type, len(rhss))
	for i, e := range rhss {
		tupleRhsTypes[i] = e.Type()
	}
	tupleRhs := &core.Tuple{Typ: types.NewTuple(tupleRhsTypes), Elems: rhss}
	return &core.ValDecl{Rec: decl.Rec, Bindings: []core.ValBinding{{Pat: tuplePat, Rhs: tupleRhs}}}, nil
}
