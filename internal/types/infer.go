package types

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
)

// Inferencer is the type inferencer (spec §4.1); InferProgram is its
// entry point. Given an
// environment of name -> Scheme bindings (primitives plus whatever a
// previous REPL statement bound) and a parsed program, it produces a
// TypeMap from every expression/pattern node ID to its inferred type,
// and the environment extended with this program's new top-level
// bindings (generalized per the value restriction).
type Inferencer struct {
	store     *Store
	subst     *Subst
	typeMap   map[uint64]Type
	fresh     int
	datatypes *DataRegistry
}

func NewInferencer(store *Store, datatypes *DataRegistry) *Inferencer {
	return &Inferencer{
		store:     store,
		subst:     NewSubst(),
		typeMap:   map[uint64]Type{},
		datatypes: datatypes,
	}
}

func (inf *Inferencer) freshVar() *Var {
	inf.fresh++
	return &Var{Name: fmt.Sprintf("'t%d", inf.fresh)}
}

// Result is what a completed inference pass hands back.
type Result struct {
	TypeMap map[uint64]Type // node ID -> defaulted, interned type
	Env     *Env            // environment extended with this program's bindings
}

// InferProgram type-checks every declaration of prog in order, threading
// the environment so each binding sees the ones that precede it (spec
// §5 ordering guarantee).
func (inf *Inferencer) InferProgram(env *Env, prog *ast.Program) (*Result, error) {
	for _, d := range prog.Decls {
		var err error
		env, err = inf.inferDecl(env, d)
		if err != nil {
			return nil, err
		}
	}
	defaulted := map[uint64]Type{}
	for id, t := range inf.typeMap {
		defaulted[id] = inf.store.Intern(DefaultUnbound(inf.subst, t))
	}
	return &Result{TypeMap: defaulted, Env: env}, nil
}

func (inf *Inferencer) record(n ast.Node, t Type) Type {
	inf.typeMap[n.ID()] = t
	return t
}

func (inf *Inferencer) inferDecl(env *Env, d ast.Decl) (*Env, error) {
	switch decl := d.(type) {
	case *ast.ValDecl:
		return inf.inferValDecl(env, decl)
	case *ast.DatatypeDecl:
		return inf.inferDatatypeDecl(env, decl)
	default:
		return env, fmt.Errorf("unsupported declaration %T", d)
	}
}

// inferValDecl handles "val [rec] p1=e1 and p2=e2 and ...". Per the
// value restriction (spec §4.1), a binding only generalizes if its
// right-hand side is a syntactic value (literal, identifier, fn, or a
// tuple/record/list of values) — otherwise it stays monomorphic even if
// its inferred type contains free variables. Every application,
// including a constructor application, counts as a non-value here.
func (inf *Inferencer) inferValDecl(env *Env, decl *ast.ValDecl) (*Env, error) {
	if decl.Rec {
		return inf.inferRecValDecl(env, decl)
	}
	result := env
	for _, b := range decl.Bindings {
		t, err := inf.inferExpr(env, b.Exp)
		if err != nil {
			return nil, err
		}
		bindEnv, err := inf.bindPattern(result, b.Pat, t)
		if err != nil {
			return nil, err
		}
		if isSyntacticValue(b.Exp) {
			result = inf.generalizePatternBindings(env, bindEnv, b.Pat)
		} else {
			result = bindEnv
		}
	}
	return result, nil
}

func (inf *Inferencer) inferRecValDecl(env *Env, decl *ast.ValDecl) (*Env, error) {
	// Install monomorphic placeholders for every bound name first so
	// the right-hand sides can refer to them (mutual recursion).
	placeholders := map[string]Type{}
	pre := env
	for _, b := range decl.Bindings {
		for _, name := range ast.Names(b.Pat) {
			v := inf.freshVar()
			placeholders[name] = v
			pre = pre.Bind(name, Mono(v))
		}
	}
	for _, b := range decl.Bindings {
		t, err := inf.inferExpr(pre, b.Exp)
		if err != nil {
			return nil, err
		}
		if err := inf.bindPatternAgainst(pre, b.Pat, t, placeholders); err != nil {
			return nil, err
		}
	}
	result := env
	for name, v := range placeholders {
		result = result.Bind(name, Generalize(env, inf.subst.Apply(v)))
	}
	return result, nil
}

// bindPatternAgainst unifies each identifier-pattern placeholder with the
// matching slot of t (only identifier and tuple-of-identifier patterns
// are supported recursive shapes, matching the compiler's own
// restriction on val rec linking — spec §4.3).
func (inf *Inferencer) bindPatternAgainst(env *Env, p ast.Pat, t Type, placeholders map[string]Type) error {
	switch pat := p.(type) {
	case *ast.PatIdent:
		v := placeholders[pat.Name]
		return inf.subst.Unify(v, t, pat.Pos())
	case *ast.PatTuple:
		rec, ok := inf.subst.Walk(t).(*Record)
		if !ok || !rec.IsTuple() || len(rec.Labels) != len(pat.Elems) {
			tup := make([]Type, len(pat.Elems))
			for i := range tup {
				tup[i] = inf.freshVar()
			}
			if err := inf.subst.Unify(t, NewTuple(tup), pat.Pos()); err != nil {
				return err
			}
			for i, e := range pat.Elems {
				if err := inf.bindPatternAgainst(env, e, tup[i], placeholders); err != nil {
					return err
				}
			}
			return nil
		}
		for i, e := range pat.Elems {
			if err := inf.bindPatternAgainst(env, e, rec.Fields[rec.Labels[i]], placeholders); err != nil {
				return err
			}
		}
		return nil
	default:
		return &Error{Pos: p.Pos(), Message: "val rec binding pattern must be an identifier or tuple of identifiers"}
	}
}

func (inf *Inferencer) generalizePatternBindings(outerEnv, bindEnv *Env, p ast.Pat) *Env {
	result := outerEnv
	for _, name := range ast.Names(p) {
		scheme, _ := bindEnv.Lookup(name)
		result = result.Bind(name, Generalize(outerEnv, inf.subst.Apply(scheme.Type)))
	}
	return result
}

func isSyntacticValue(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Literal, *ast.Fn, *ast.Ident:
		return true
	case *ast.Tuple:
		for _, el := range v.Elems {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.List:
		for _, el := range v.Elems {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.Record:
		for _, f := range v.Fields {
			if !isSyntacticValue(f.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (inf *Inferencer) inferExpr(env *Env, e ast.Expr) (Type, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return inf.record(n, litType(n.Kind)), nil

	case *ast.Ident:
		scheme, ok := env.Lookup(n.Name)
		if !ok {
			return nil, errUnbound(n.Pos(), n.Name)
		}
		return inf.record(n, Instantiate(scheme, inf.freshVar)), nil

	case *ast.If:
		ct, err := inf.inferExpr(env, n.Cond)
		if err != nil {
			return nil, err
		}
		if err := inf.subst.Unify(ct, Bool, n.Cond.Pos()); err != nil {
			return nil, err
		}
		tt, err := inf.inferExpr(env, n.Then)
		if err != nil {
			return nil, err
		}
		et, err := inf.inferExpr(env, n.Else)
		if err != nil {
			return nil, err
		}
		if err := inf.subst.Unify(tt, et, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, tt), nil

	case *ast.Fn:
		return inf.inferMatches(env, n, n.Matches)

	case *ast.Case:
		st, err := inf.inferExpr(env, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		return inf.inferCaseMatches(env, n, st, n.Matches)

	case *ast.Let:
		cur := env
		for _, d := range n.Decls {
			var err error
			cur, err = inf.inferDecl(cur, d)
			if err != nil {
				return nil, err
			}
		}
		bt, err := inf.inferExpr(cur, n.Body)
		if err != nil {
			return nil, err
		}
		return inf.record(n, bt), nil

	case *ast.Apply:
		ft, err := inf.inferExpr(env, n.Fn)
		if err != nil {
			return nil, err
		}
		at, err := inf.inferExpr(env, n.Arg)
		if err != nil {
			return nil, err
		}
		rt := inf.freshVar()
		if err := inf.subst.Unify(ft, &Func{Param: at, Result: rt}, n.Pos()); err != nil {
			return nil, err
		}
		return inf.record(n, rt), nil

	case *ast.Tuple:
		elems := make([]Type, len(n.Elems))
		for i, el := range n.Elems {
			t, err := inf.inferExpr(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return inf.record(n, NewTuple(elems)), nil

	case *ast.Record:
		fields := map[string]Type{}
		for _, f := range n.Fields {
			t, err := inf.inferExpr(env, f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Label] = t
		}
		return inf.record(n, NewRecord(fields)), nil

	case *ast.List:
		elemT := Type(inf.freshVar())
		for _, el := range n.Elems {
			t, err := inf.inferExpr(env, el)
			if err != nil {
				return nil, err
			}
			if err := inf.subst.Unify(elemT, t, el.Pos()); err != nil {
				return nil, err
			}
		}
		return inf.record(n, &List{Elem: elemT}), nil

	case *ast.Infix:
		return inf.inferInfix(env, n)

	case *ast.From:
		return inf.inferFrom(env, n)

	default:
		return nil, fmt.Errorf("inference not implemented for %T", e)
	}
}

func litType(k ast.LitKind) Type {
	switch k {
	case ast.LitUnit:
		return Unit
	case ast.LitBool:
		return Bool
	case ast.LitChar:
		return Char
	case ast.LitInt:
		return Int
	case ast.LitReal:
		return Real
	case ast.LitString:
		return String
	default:
		return Unit
	}
}

func (inf *Inferencer) inferMatches(env *Env, n ast.Node, matches []ast.Match) (Type, error) {
	argT := Type(inf.freshVar())
	resT := Type(inf.freshVar())
	for _, m := range matches {
		clauseEnv, err := inf.bindPattern(env, m.Pat, argT)
		if err != nil {
			return nil, err
		}
		bt, err := inf.inferExpr(clauseEnv, m.Body)
		if err != nil {
			return nil, err
		}
		if err := inf.subst.Unify(resT, bt, m.Body.Pos()); err != nil {
			return nil, err
		}
	}
	return inf.record(n, &Func{Param: argT, Result: resT}), nil
}

func (inf *Inferencer) inferCaseMatches(env *Env, n ast.Node, scrutT Type, matches []ast.Match) (Type, error) {
	resT := Type(inf.freshVar())
	for _, m := range matches {
		clauseEnv, err := inf.bindPattern(env, m.Pat, scrutT)
		if err != nil {
			return nil, err
		}
		bt, err := inf.inferExpr(clauseEnv, m.Body)
		if err != nil {
			return nil, err
		}
		if err := inf.subst.Unify(resT, bt, m.Body.Pos()); err != nil {
			return nil, err
		}
	}
	return inf.record(n, resT), nil
}

// bindPattern type-checks p against t, returning env extended with p's
// bindings (spec §4.4 pattern binding table, typed).
func (inf *Inferencer) bindPattern(env *Env, p ast.Pat, t Type) (*Env, error) {
	switch pat := p.(type) {
	case *ast.PatWildcard:
		inf.typeMap[pat.ID()] = t
		return env, nil

	case *ast.PatIdent:
		inf.typeMap[pat.ID()] = t
		return env.Bind(pat.Name, Mono(t)), nil

	case *ast.PatLiteral:
		inf.typeMap[pat.ID()] = t
		return env, inf.subst.Unify(t, litType(pat.Kind), pat.Pos())

	case *ast.PatCon:
		return inf.bindConPattern(env, pat, t)

	case *ast.PatTuple:
		elems := make([]Type, len(pat.Elems))
		for i := range elems {
			elems[i] = inf.freshVar()
		}
		if err := inf.subst.Unify(t, NewTuple(elems), pat.Pos()); err != nil {
			return nil, err
		}
		cur := env
		for i, e := range pat.Elems {
			var err error
			cur, err = inf.bindPattern(cur, e, elems[i])
			if err != nil {
				return nil, err
			}
		}
		inf.typeMap[pat.ID()] = t
		return cur, nil

	case *ast.PatList:
		elemT := Type(inf.freshVar())
		if err := inf.subst.Unify(t, &List{Elem: elemT}, pat.Pos()); err != nil {
			return nil, err
		}
		cur := env
		for _, e := range pat.Elems {
			var err error
			cur, err = inf.bindPattern(cur, e, elemT)
			if err != nil {
				return nil, err
			}
		}
		inf.typeMap[pat.ID()] = t
		return cur, nil

	case *ast.PatCons:
		elemT := Type(inf.freshVar())
		if err := inf.subst.Unify(t, &List{Elem: elemT}, pat.Pos()); err != nil {
			return nil, err
		}
		cur, err := inf.bindPattern(env, pat.Head, elemT)
		if err != nil {
			return nil, err
		}
		cur, err = inf.bindPattern(cur, pat.Tail, t)
		if err != nil {
			return nil, err
		}
		inf.typeMap[pat.ID()] = t
		return cur, nil

	case *ast.PatRecord:
		return inf.bindRecordPattern(env, pat, t)

	default:
		return nil, fmt.Errorf("pattern inference not implemented for %T", p)
	}
}

func (inf *Inferencer) bindRecordPattern(env *Env, pat *ast.PatRecord, t Type) (*Env, error) {
	fields := map[string]Type{}
	for _, f := range pat.Fields {
		fields[f.Label] = inf.freshVar()
	}
	if pat.Ellipsis {
		if err := inf.subst.Unify(t, &OpenRecord{Fields: fields}, pat.Pos()); err != nil {
			return nil, err
		}
	} else {
		if err := inf.subst.Unify(t, NewRecord(fields), pat.Pos()); err != nil {
			return nil, err
		}
	}
	cur := env
	for _, f := range pat.Fields {
		var err error
		cur, err = inf.bindPattern(cur, f.Pat, fields[f.Label])
		if err != nil {
			return nil, err
		}
	}
	inf.typeMap[pat.ID()] = t
	return cur, nil
}

func (inf *Inferencer) bindConPattern(env *Env, pat *ast.PatCon, t Type) (*Env, error) {
	dt, ctor, ok := inf.datatypes.ByConstructor(pat.Name)
	if !ok {
		return nil, &Error{Pos: pat.Pos(), Message: fmt.Sprintf("unknown constructor %q", pat.Name)}
	}
	if err := inf.subst.Unify(t, dt, pat.Pos()); err != nil {
		return nil, err
	}
	inf.typeMap[pat.ID()] = t
	if ctor.Arg == nil {
		if pat.Arg != nil {
			return nil, errArity(pat.Pos(), pat.Name, 0, 1)
		}
		return env, nil
	}
	if pat.Arg == nil {
		return nil, errArity(pat.Pos(), pat.Name, 1, 0)
	}
	return inf.bindPattern(env, pat.Arg, ctor.Arg)
}

func (inf *Inferencer) inferDatatypeDecl(env *Env, decl *ast.DatatypeDecl) (*Env, error) {
	dt, err := inf.datatypes.Declare(decl)
	if err != nil {
		return nil, err
	}
	result := env
	for _, c := range dt.Ctors {
		var scheme *Scheme
		if c.Arg == nil {
			scheme = Generalize(env, dt)
		} else {
			scheme = Generalize(env, &Func{Param: c.Arg, Result: dt})
		}
		result = result.Bind(c.Name, scheme)
	}
	return result, nil
}
