package types

// Store is the type system's interning table: one insert-only map keyed
// by moniker, so that structural equality between two ground types
// becomes pointer equality once both have passed through Intern (spec
// §3.2, §5 "exclusively owned by one compilation session"). A Store must
// not be shared between concurrent inference sessions.
type Store struct {
	byMoniker map[string]Type
}

func NewStore() *Store {
	return &Store{byMoniker: make(map[string]Type)}
}

// Intern returns the canonical instance for t's moniker, inserting t if
// this moniker has not been seen before. Type variables and Temporary
// placeholders are never interned — they are session-local and must
// stay distinguishable by identity while unresolved.
func (s *Store) Intern(t Type) Type {
	switch t.(type) {
	case *Var, *Temporary:
		return t
	}
	m := t.Moniker()
	if existing, ok := s.byMoniker[m]; ok {
		return existing
	}
	s.byMoniker[m] = t
	return t
}

// Lookup returns the interned type for a moniker, if any.
func (s *Store) Lookup(moniker string) (Type, bool) {
	t, ok := s.byMoniker[moniker]
	return t, ok
}

// Same reports whether a and b are the same interned type. Ground types
// (no free variables) that have both been through Intern compare equal
// exactly when Equal(a,b) would — this is the pointer-equality shortcut
// spec §3.2 describes.
func Same(a, b Type) bool {
	return a == b
}
