package types

// Env is a persistent, ordered name -> Scheme environment (spec §3.4),
// used by the inferencer. Extension returns a new Env sharing structure
// with its parent, so a reference held by one unification branch is
// unaffected by bindings made along a sibling branch.
type Env struct {
	name   string
	scheme *Scheme
	parent *Env
}

// NewEnv returns an empty environment.
func NewEnv() *Env { return nil }

// Bind returns a new environment extending e with name -> scheme.
func (e *Env) Bind(name string, scheme *Scheme) *Env {
	return &Env{name: name, scheme: scheme, parent: e}
}

// Lookup finds the nearest (innermost) binding for name.
func (e *Env) Lookup(name string) (*Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.scheme, true
		}
	}
	return nil, false
}

// freeVars collects the free type variables of every scheme reachable
// through e — used by Generalize to avoid generalizing a variable that
// is still free in an enclosing binding.
func (e *Env) freeVars() map[string]bool {
	out := map[string]bool{}
	for cur := e; cur != nil; cur = cur.parent {
		free := map[string]bool{}
		freeVars(cur.scheme.Type, free)
		for _, v := range cur.scheme.Vars {
			delete(free, v)
		}
		for v := range free {
			out[v] = true
		}
	}
	return out
}
