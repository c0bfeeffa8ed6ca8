package types

// Scheme is a polymorphic type: a monomorphic Type wrapped in the set of
// type variables bound over it (spec GLOSSARY "Type scheme"). A Scheme
// with no Vars is just a monomorphic type.
type Scheme struct {
	Vars []string
	Type Type
}

// Mono wraps a type with no bound variables.
func Mono(t Type) *Scheme { return &Scheme{Type: t} }

// freeVars collects the free type-variable names of t.
func freeVars(t Type, out map[string]bool) {
	switch v := t.(type) {
	case *Var:
		out[v.Name] = true
	case *Func:
		freeVars(v.Param, out)
		freeVars(v.Result, out)
	case *List:
		freeVars(v.Elem, out)
	case *Record:
		for _, l := range v.Labels {
			freeVars(v.Fields[l], out)
		}
	}
}

// Generalize produces a scheme over every free variable of t that is not
// also free in env (spec §4.1: "Generalise only at let boundaries").
func Generalize(env *Env, t Type) *Scheme {
	free := map[string]bool{}
	freeVars(t, free)
	for name := range env.freeVars() {
		delete(free, name)
	}
	vars := make([]string, 0, len(free))
	for v := range free {
		vars = append(vars, v)
	}
	return &Scheme{Vars: vars, Type: t}
}

// Instantiate replaces a scheme's bound variables with fresh ones,
// returning the resulting monomorphic type.
func Instantiate(s *Scheme, fresh func() *Var) Type {
	if len(s.Vars) == 0 {
		return s.Type
	}
	subst := make(map[string]Type, len(s.Vars))
	for _, v := range s.Vars {
		subst[v] = fresh()
	}
	return Substitute(s.Type, subst)
}

// Substitute applies a variable->type map to t.
func Substitute(t Type, subst map[string]Type) Type {
	switch v := t.(type) {
	case *Var:
		if r, ok := subst[v.Name]; ok {
			return r
		}
		return v
	case *Func:
		return &Func{Param: Substitute(v.Param, subst), Result: Substitute(v.Result, subst)}
	case *List:
		return &List{Elem: Substitute(v.Elem, subst)}
	case *Record:
		fields := make(map[string]Type, len(v.Fields))
		for k, ft := range v.Fields {
			fields[k] = Substitute(ft, subst)
		}
		return NewRecord(fields)
	default:
		return t
	}
}
