package resolver

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/types"
)

// resolvePat lowers a surface pattern to a core pattern. Record patterns
// are expanded to one sub-pattern per label of the pattern's record
// type, in the type's canonical order (spec §4.2); any surface field
// omitted by an ellipsis is filled with a wildcard.
func (r *Resolver) resolvePat(p ast.Pat) (core.Pat, error) {
	switch n := p.(type) {
	case *ast.PatWildcard:
		return &core.PatWildcard{Typ: r.typeOf(n)}, nil

	case *ast.PatIdent:
		return &core.PatIdent{Typ: r.typeOf(n), Name: n.Name}, nil

	case *ast.PatLiteral:
		return &core.PatLiteral{Typ: r.typeOf(n), Value: n.Value}, nil

	case *ast.PatCon:
		dt, ctor, ok := r.datatypes.ByConstructor(n.Name)
		if !ok {
			return nil, fmt.Errorf("resolver: unknown constructor %q", n.Name)
		}
		if n.Arg == nil {
			return &core.PatCon0{Typ: dt, Name: n.Name}, nil
		}
		arg, err := r.resolvePat(n.Arg)
		if err != nil {
			return nil, err
		}
		_ = ctor
		return &core.PatCon1{Typ: dt, Name: n.Name, Arg: arg}, nil

	case *ast.PatTuple:
		elems := make([]core.Pat, len(n.Elems))
		for i, e := range n.Elems {
			ce, err := r.resolvePat(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ce
		}
		return &core.PatTuple{Typ: r.typeOf(n), Elems: elems}, nil

	case *ast.PatList:
		elems := make([]core.Pat, len(n.Elems))
		for i, e := range n.Elems {
			ce, err := r.resolvePat(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ce
		}
		return &core.PatList{Typ: r.typeOf(n), Elems: elems}, nil

	case *ast.PatCons:
		head, err := r.resolvePat(n.Head)
		if err != nil {
			return nil, err
		}
		tail, err := r.resolvePat(n.Tail)
		if err != nil {
			return nil, err
		}
		return &core.PatCons{Typ: r.typeOf(n), Head: head, Tail: tail}, nil

	case *ast.PatRecord:
		return r.resolveRecordPat(n)

	default:
		return nil, fmt.Errorf("resolver: unsupported pattern %T", p)
	}
}

// resolveRecordPat expands a possibly-elliptical surface record pattern
// into a core.PatRecord with exactly one sub-pattern per label of the
// pattern's inferred record type, in that type's canonical order (spec
// §4.1/§4.4): labels the surface pattern named keep their sub-pattern,
// any label only the ellipsis covers gets a wildcard.
func (r *Resolver) resolveRecordPat(n *ast.PatRecord) (core.Pat, error) {
	typ := r.typeOf(n)
	rec, ok := typ.(*types.Record)
	if !ok {
		return nil, fmt.Errorf("resolver: record pattern's inferred type is not a record (%s)", typ.Moniker())
	}

	named := make(map[string]ast.Pat, len(n.Fields))
	for _, f := range n.Fields {
		named[f.Label] = f.Pat
	}

	labels := rec.Labels
	pats := make([]core.Pat, len(labels))
	for i, l := range labels {
		fieldT := rec.Fields[l]
		sp, ok := named[l]
		if !ok {
			if !n.Ellipsis {
				return nil, fmt.Errorf("resolver: record pattern missing label %q", l)
			}
			pats[i] = &core.PatWildcard{Typ: fieldT}
			continue
		}
		cp, err := r.resolvePat(sp)
		if err != nil {
			return nil, err
		}
		pats[i] = cp
	}

	return &core.PatRecord{Typ: rec, Labels: labels, Pats: pats}, nil
}
