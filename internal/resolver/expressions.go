package resolver

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/types"
)

func (r *Resolver) resolveExpr(e ast.Expr) (core.Expr, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return &core.Literal{Typ: r.typeOf(n), Value: n.Value}, nil

	case *ast.Ident:
		if _, ctor, ok := r.datatypes.ByConstructor(n.Name); ok {
			return r.resolveConstructorRef(n, ctor)
		}
		return &core.Id{Typ: r.typeOf(n), Name: n.Name}, nil

	case *ast.If:
		return r.resolveIf(n)

	case *ast.Fn:
		return r.resolveFn(n)

	case *ast.Case:
		return r.resolveCase(n)

	case *ast.Let:
		return r.resolveLet(n)

	case *ast.Apply:
		fn, err := r.resolveExpr(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := r.resolveExpr(n.Arg)
		if err != nil {
			return nil, err
		}
		return &core.Apply{Typ: r.typeOf(n), Fn: fn, Arg: arg}, nil

	case *ast.Tuple:
		elems := make([]core.Expr, len(n.Elems))
		for i, el := range n.Elems {
			ce, err := r.resolveExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = ce
		}
		return &core.Tuple{Typ: r.typeOf(n), Elems: elems}, nil

	case *ast.Record:
		return r.resolveRecord(n)

	case *ast.List:
		return r.resolveList(n)

	case *ast.Infix:
		return r.resolveInfix(n)

	case *ast.From:
		return r.resolveFrom(n)

	default:
		return nil, fmt.Errorf("resolver: unsupported expression %T", e)
	}
}

// resolveIf implements "if c then a else b" => Case(c, [(true,a),(_,b)])
// (spec §4.2).
func (r *Resolver) resolveIf(n *ast.If) (core.Expr, error) {
	cond, err := r.resolveExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	thenE, err := r.resolveExpr(n.Then)
	if err != nil {
		return nil, err
	}
	elseE, err := r.resolveExpr(n.Else)
	if err != nil {
		return nil, err
	}
	matches := []core.FnMatch{
		{Pat: &core.PatLiteral{Typ: types.Bool, Value: true}, Body: thenE},
		{Pat: &core.PatWildcard{Typ: types.Bool}, Body: elseE},
	}
	return &core.Case{Typ: r.typeOf(n), Scrutinee: cond, Matches: matches}, nil
}

// resolveFn implements spec §4.2: a single clause with an identifier
// pattern stays a direct Fn; any other shape (multiple clauses, or one
// non-identifier pattern) becomes "fn v => case v of p1 => e1 | ...",
// where v is a fresh name.
func (r *Resolver) resolveFn(n *ast.Fn) (core.Expr, error) {
	if len(n.Matches) == 1 {
		if id, ok := n.Matches[0].Pat.(*ast.PatIdent); ok {
			body, err := r.resolveExpr(n.Matches[0].Body)
			if err != nil {
				return nil, err
			}
			argT := r.typeOf(id)
			return &core.Fn{
				Typ:     r.typeOf(n),
				Matches: []core.FnMatch{{Pat: &core.PatIdent{Typ: argT, Name: id.Name}, Body: body}},
			}, nil
		}
	}

	fnT, ok := r.typeMap[n.ID()].(*types.Func)
	if !ok {
		return nil, fmt.Errorf("resolver: fn node missing inferred function type")
	}
	vName := r.freshName()
	matches := make([]core.FnMatch, len(n.Matches))
	for i, m := range n.Matches {
		pat, err := r.resolvePat(m.Pat)
		if err != nil {
			return nil, err
		}
		body, err := r.resolveExpr(m.Body)
		if err != nil {
			return nil, err
		}
		matches[i] = core.FnMatch{Pat: pat, Body: body}
	}
	caseExpr := &core.Case{
		Typ:       fnT.Result,
		Scrutinee: &core.Id{Typ: fnT.Param, Name: vName},
		Matches:   matches,
	}
	return &core.Fn{
		Typ:     fnT,
		Matches: []core.FnMatch{{Pat: &core.PatIdent{Typ: fnT.Param, Name: vName}, Body: caseExpr}},
	}, nil
}

func (r *Resolver) resolveCase(n *ast.Case) (core.Expr, error) {
	scrut, err := r.resolveExpr(n.Scrutinee)
	if err != nil {
		return nil, err
	}
	matches := make([]core.FnMatch, len(n.Matches))
	for i, m := range n.Matches {
		pat, err := r.resolvePat(m.Pat)
		if err != nil {
			return nil, err
		}
		body, err := r.resolveExpr(m.Body)
		if err != nil {
			return nil, err
		}
		matches[i] = core.FnMatch{Pat: pat, Body: body}
	}
	return &core.Case{Typ: r.typeOf(n), Scrutinee: scrut, Matches: matches}, nil
}

// resolveLet right-associates "let d1; d2; ...; dn in e end" into a
// chain of single-declaration Lets (spec §4.2).
func (r *Resolver) resolveLet(n *ast.Let) (core.Expr, error) {
	body, err := r.resolveExpr(n.Body)
	if err != nil {
		return nil, err
	}
	for i := len(n.Decls) - 1; i >= 0; i-- {
		switch decl := n.Decls[i].(type) {
		case *ast.ValDecl:
			cd, err := r.resolveValDecl(decl)
			if err != nil {
				return nil, err
			}
			body = &core.Let{Typ: body.Type(), Decl: cd, Body: body}
		case *ast.DatatypeDecl:
			dt, err := r.datatypes.Declare(decl)
			if err != nil {
				return nil, err
			}
			body = &core.Let{Typ: body.Type(), Decl: &core.DatatypeDecl{Datatype: dt}, Body: body}
		default:
			return nil, fmt.Errorf("resolver: unsupported let-declaration %T", decl)
		}
	}
	return body, nil
}

// resolveRecord converts a record expression to a Tuple over the
// record's canonical label order (spec §4.2).
func (r *Resolver) resolveRecord(n *ast.Record) (core.Expr, error) {
	sorted := n.SortedFields()
	elems := make([]core.Expr, len(sorted))
	for i, f := range sorted {
		ce, err := r.resolveExpr(f.Value)
		if err != nil {
			return nil, err
		}
		elems[i] = ce
	}
	return &core.Tuple{Typ: r.typeOf(n), Elems: elems}, nil
}

// Z_LIST is the builtin symbol the resolver targets for list-expression
// construction (spec §4.2: "[e1,e2,...] => Apply(FnLiteral(Z_LIST),
// Tuple(e1,e2,...))").
const Z_LIST = "Z_LIST"

func (r *Resolver) resolveList(n *ast.List) (core.Expr, error) {
	elems := make([]core.Expr, len(n.Elems))
	elemTypes := make([]types.Type, len(n.Elems))
	for i, el := range n.Elems {
		ce, err := r.resolveExpr(el)
		if err != nil {
			return nil, err
		}
		elems[i] = ce
		elemTypes[i] = ce.Type()
	}
	listT := r.typeOf(n)
	tupleT := types.NewTuple(elemTypes)
	fnT := &types.Func{Param: tupleT, Result: listT}
	lit := &core.Literal{Typ: fnT, Value: r.builtins(Z_LIST)}
	return &core.Apply{
		Typ: listT,
		Fn:  lit,
		Arg: &core.Tuple{Typ: tupleT, Elems: elems},
	}, nil
}

// resolveConstructorRef lowers a bare reference to a datatype
// constructor (spec §3.2) to a Literal carrying the runtime value
// patterns.go's PatCon0/PatCon1 match against directly: a 0-ary
// constructor's value is a ready-made ConstructorValue, an n-ary one's
// is a BuiltinFunc that builds a ConstructorValue from its argument when
// applied, the same "Literal holds a pre-built runtime value" shape
// resolveInfix and resolveList use for operators and Z_LIST.
func (r *Resolver) resolveConstructorRef(n *ast.Ident, ctor *types.Ctor) (core.Expr, error) {
	typ := r.typeOf(n)
	if ctor.Arg == nil {
		return &core.Literal{Typ: typ, Value: eval.ConstructorValue{Name: n.Name}}, nil
	}
	name := n.Name
	fn := &eval.BuiltinFunc{
		Name: name,
		Fn: func(arg eval.Value) (eval.Value, error) {
			return eval.ConstructorValue{Name: name, Arg: arg}, nil
		},
	}
	return &core.Literal{Typ: typ, Value: fn}, nil
}

// resolveInfix implements spec §4.2: "e1 ⊕ e2 => Apply(FnLiteral(⊕),
// Tuple(e1,e2))" for every operator in ast.InfixOps.
func (r *Resolver) resolveInfix(n *ast.Infix) (core.Expr, error) {
	left, err := r.resolveExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := r.resolveExpr(n.Right)
	if err != nil {
		return nil, err
	}
	resultT := r.typeOf(n)
	tupleT := types.NewTuple([]types.Type{left.Type(), right.Type()})
	fnT := &types.Func{Param: tupleT, Result: resultT}
	lit := &core.Literal{Typ: fnT, Value: r.builtins(n.Operator)}
	return &core.Apply{
		Typ: resultT,
		Fn:  lit,
		Arg: &core.Tuple{Typ: tupleT, Elems: []core.Expr{left, right}},
	}, nil
}
