package types

import "github.com/sml-lang/interp/internal/ast"

// Subst is the mutable substitution threaded through a single inference
// session (spec §4.1 "unify as structural constraints are discovered").
// It is a map from type-variable name to the type it has been bound to.
type Subst struct {
	m map[string]Type
}

func NewSubst() *Subst { return &Subst{m: map[string]Type{}} }

// Walk follows t through the substitution until it reaches a type that
// either isn't a Var or is an unbound Var.
func (s *Subst) Walk(t Type) Type {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		bound, ok := s.m[v.Name]
		if !ok {
			return v
		}
		t = bound
	}
}

// Apply fully substitutes every variable in t.
func (s *Subst) Apply(t Type) Type {
	t = s.Walk(t)
	switch v := t.(type) {
	case *Func:
		return &Func{Param: s.Apply(v.Param), Result: s.Apply(v.Result)}
	case *List:
		return &List{Elem: s.Apply(v.Elem)}
	case *Record:
		fields := make(map[string]Type, len(v.Fields))
		for k, ft := range v.Fields {
			fields[k] = s.Apply(ft)
		}
		return NewRecord(fields)
	case *OpenRecord:
		fields := make(map[string]Type, len(v.Fields))
		for k, ft := range v.Fields {
			fields[k] = s.Apply(ft)
		}
		return &OpenRecord{Fields: fields}
	default:
		return t
	}
}

// OpenRecord models a partial record type with a pending tail (spec
// §4.1: "a partial record type ... is modelled as a row with a pending
// tail; the tail must unify with a concrete record type before the
// declaration finishes, else fail"). It only ever appears bound to a
// type variable during inference. Finalize reports one that remains,
// but the inferencer does not call Finalize, so an ellipsis pattern
// whose row never meets a concrete record is not rejected.
type OpenRecord struct {
	Fields map[string]Type
}

func (o *OpenRecord) Moniker() string     { return "{...}" }
func (o *OpenRecord) Description() string { return "{...}" }

// openVarName reports the name of t when t is a Var bound (after walking)
// to an OpenRecord, so Unify can rebind it once that row resolves against
// a concrete Record rather than leaving it stuck on the stale row type.
func openVarName(t Type, s *Subst) (string, bool) {
	v, ok := t.(*Var)
	if !ok {
		return "", false
	}
	if _, ok := s.Walk(v).(*OpenRecord); ok {
		return v.Name, true
	}
	return "", false
}

func (s *Subst) bind(name string, t Type, pos ast.Pos) error {
	if occurs(name, t, s) {
		return &Error{Pos: pos, Message: "occurs check failed: infinite type"}
	}
	s.m[name] = t
	return nil
}

func occurs(name string, t Type, s *Subst) bool {
	t = s.Walk(t)
	switch v := t.(type) {
	case *Var:
		return v.Name == name
	case *Func:
		return occurs(name, v.Param, s) || occurs(name, v.Result, s)
	case *List:
		return occurs(name, v.Elem, s)
	case *Record:
		for _, ft := range v.Fields {
			if occurs(name, ft, s) {
				return true
			}
		}
		return false
	case *OpenRecord:
		for _, ft := range v.Fields {
			if occurs(name, ft, s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unify unifies a and b under s, extending s in place. pos is used only
// for error reporting.
func (s *Subst) Unify(a, b Type, pos ast.Pos) error {
	// Remember whether a/b were variables bound (possibly through one
	// hop) to an OpenRecord, so that once that row resolves against a
	// concrete Record below we can rebind the variable directly to the
	// concrete type — otherwise later lookups would keep seeing the
	// stale OpenRecord instead of the record it was resolved against.
	aVar, aWasOpenVar := openVarName(a, s)
	bVar, bWasOpenVar := openVarName(b, s)

	a = s.Walk(a)
	b = s.Walk(b)

	if av, ok := a.(*Var); ok {
		if bv, ok := b.(*Var); ok && av.Name == bv.Name {
			return nil
		}
		return s.bind(av.Name, b, pos)
	}
	if bv, ok := b.(*Var); ok {
		return s.bind(bv.Name, a, pos)
	}

	if ax, ok := a.(*OpenRecord); ok {
		if by, ok := b.(*Record); ok {
			if err := s.unifyOpen(ax, by, pos); err != nil {
				return err
			}
			if aWasOpenVar {
				s.m[aVar] = by
			}
			return nil
		}
	}
	if bx, ok := b.(*OpenRecord); ok {
		if ay, ok := a.(*Record); ok {
			if err := s.unifyOpen(bx, ay, pos); err != nil {
				return err
			}
			if bWasOpenVar {
				s.m[bVar] = ay
			}
			return nil
		}
	}

	switch x := a.(type) {
	case *Prim:
		y, ok := b.(*Prim)
		if !ok || x.Name != y.Name {
			return errUnify(pos, a, b)
		}
		return nil
	case *Func:
		y, ok := b.(*Func)
		if !ok {
			return errUnify(pos, a, b)
		}
		if err := s.Unify(x.Param, y.Param, pos); err != nil {
			return err
		}
		return s.Unify(x.Result, y.Result, pos)
	case *List:
		y, ok := b.(*List)
		if !ok {
			return errUnify(pos, a, b)
		}
		return s.Unify(x.Elem, y.Elem, pos)
	case *Record:
		return s.unifyRecord(x, b, pos)
	case *OpenRecord:
		return s.unifyOpen(x, b, pos)
	case *Datatype:
		y, ok := b.(*Datatype)
		if !ok || x.Name != y.Name {
			return errUnify(pos, a, b)
		}
		return nil
	case *Temporary:
		y, ok := b.(*Temporary)
		if !ok || x.Name != y.Name {
			return errUnify(pos, a, b)
		}
		return nil
	default:
		return errUnify(pos, a, b)
	}
}

func (s *Subst) unifyRecord(x *Record, b Type, pos ast.Pos) error {
	switch y := b.(type) {
	case *Record:
		if len(x.Labels) != len(y.Labels) {
			return errUnify(pos, x, y)
		}
		for i, l := range x.Labels {
			if y.Labels[i] != l {
				return errUnify(pos, x, y)
			}
			if err := s.Unify(x.Fields[l], y.Fields[l], pos); err != nil {
				return err
			}
		}
		return nil
	case *OpenRecord:
		return s.unifyOpen(y, x, pos)
	default:
		return errUnify(pos, x, b)
	}
}

// unifyOpen unifies a partial record (from an ellipsis pattern) against
// b. If b is a concrete Record it must be a superset of x's fields
// (spec §4.4 record pattern rule); if b is another OpenRecord the two
// field sets are merged. A still-open result stays bound in the
// substitution; nothing rejects it when the declaration ends.
func (s *Subst) unifyOpen(x *OpenRecord, b Type, pos ast.Pos) error {
	switch y := b.(type) {
	case *Record:
		for label, ft := range x.Fields {
			rt, ok := y.Fields[label]
			if !ok {
				return errRecordField(pos, label)
			}
			if err := s.Unify(ft, rt, pos); err != nil {
				return err
			}
		}
		return nil
	case *OpenRecord:
		merged := map[string]Type{}
		for k, v := range x.Fields {
			merged[k] = v
		}
		for k, v := range y.Fields {
			if existing, ok := merged[k]; ok {
				if err := s.Unify(existing, v, pos); err != nil {
					return err
				}
			} else {
				merged[k] = v
			}
		}
		// Record the merged field set in both rows so later
		// unifications with either x or y see the combined requirement.
		for k, v := range merged {
			x.Fields[k] = v
			y.Fields[k] = v
		}
		return nil
	default:
		return errUnify(pos, x, b)
	}
}

// Finalize rejects any type that, after substitution, is still an
// unresolved OpenRecord — i.e. an ellipsis pattern whose tail never met
// a concrete record type (spec §4.1). Only the outermost type is
// checked, and the inferencer does not call it.
func (s *Subst) Finalize(t Type, pos ast.Pos) (Type, error) {
	resolved := s.Apply(t)
	if _, ok := resolved.(*OpenRecord); ok {
		return nil, &Error{Pos: pos, Message: "ellipsis pattern's record type was never resolved"}
	}
	return resolved, nil
}
