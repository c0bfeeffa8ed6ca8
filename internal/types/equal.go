package types

// Equal reports structural equality of two (possibly non-interned)
// types. Interned ground types can also be compared with Same (pointer
// equality); Equal is the general structural comparison. Unification
// does its own structural matching and does not call it.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Prim:
		y, ok := b.(*Prim)
		return ok && x.Name == y.Name
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *Func:
		y, ok := b.(*Func)
		return ok && Equal(x.Param, y.Param) && Equal(x.Result, y.Result)
	case *List:
		y, ok := b.(*List)
		return ok && Equal(x.Elem, y.Elem)
	case *Record:
		y, ok := b.(*Record)
		if !ok || len(x.Labels) != len(y.Labels) {
			return false
		}
		for i, l := range x.Labels {
			if y.Labels[i] != l || !Equal(x.Fields[l], y.Fields[l]) {
				return false
			}
		}
		return true
	case *Datatype:
		y, ok := b.(*Datatype)
		return ok && x.Name == y.Name
	case *Temporary:
		y, ok := b.(*Temporary)
		return ok && x.Name == y.Name
	default:
		return false
	}
}
