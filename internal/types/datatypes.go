package types

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
)

// DataRegistry owns every datatype declared in a session: the name ->
// *Datatype map used by type annotations, and the constructor name ->
// *Datatype map used by pattern/expression inference. It is the single
// place both the type inferencer and (later) the resolver consult, per
// spec §6's "fixed registry each stage consults".
type DataRegistry struct {
	byName    map[string]*Datatype
	byCtor    map[string]*Datatype
	idCounter int
}

func NewDataRegistry() *DataRegistry {
	return &DataRegistry{
		byName: map[string]*Datatype{},
		byCtor: map[string]*Datatype{},
	}
}

func (r *DataRegistry) ByConstructor(name string) (*Datatype, *Ctor, bool) {
	dt, ok := r.byCtor[name]
	if !ok {
		return nil, nil, false
	}
	ctor, _ := dt.Constructor(name)
	return dt, ctor, true
}

func (r *DataRegistry) ByName(name string) (*Datatype, bool) {
	dt, ok := r.byName[name]
	return dt, ok
}

// Declare elaborates a datatype declaration: a Temporary placeholder is
// installed first so self-referential constructor arguments (e.g.
// "datatype tree = Leaf | Node of tree * tree") can unify with it, then
// argument types are resolved and the placeholder is substituted for the
// real *Datatype throughout (spec §3.2, §9).
func (r *DataRegistry) Declare(decl *ast.DatatypeDecl) (*Datatype, error) {
	tmp := &Temporary{Name: decl.Name}
	dt := NewDatatype(decl.Name, decl.TypeParams)

	ctors := make([]Ctor, len(decl.Constructors))
	for i, c := range decl.Constructors {
		var argT Type
		if c.Arg != nil {
			var err error
			argT, err = r.resolveTypeExpr(c.Arg, tmp)
			if err != nil {
				return nil, err
			}
		}
		ctors[i] = Ctor{Name: c.Name, Arg: argT}
	}
	// Substitute the real datatype for every Temporary reference the
	// constructor argument types picked up.
	for i := range ctors {
		if ctors[i].Arg != nil {
			ctors[i].Arg = Resolve(ctors[i].Arg, decl.Name, dt)
		}
	}
	dt.Finish(ctors)

	r.byName[decl.Name] = dt
	for i := range ctors {
		r.byCtor[ctors[i].Name] = dt
	}
	return dt, nil
}

func (r *DataRegistry) resolveTypeExpr(te *ast.TypeExpr, self *Temporary) (Type, error) {
	if len(te.Args) == 0 {
		switch te.Name {
		case "unit":
			return Unit, nil
		case "bool":
			return Bool, nil
		case "char":
			return Char, nil
		case "int":
			return Int, nil
		case "real":
			return Real, nil
		case "string":
			return String, nil
		}
		if te.Name == self.Name {
			return self, nil
		}
		if te.Name[0] == '\'' {
			return &Var{Name: te.Name}, nil
		}
		if dt, ok := r.byName[te.Name]; ok {
			return dt, nil
		}
		return nil, fmt.Errorf("unknown type %q", te.Name)
	}
	if te.Name == "list" && len(te.Args) == 1 {
		elem, err := r.resolveTypeExpr(te.Args[0], self)
		if err != nil {
			return nil, err
		}
		return &List{Elem: elem}, nil
	}
	if te.Name == "*" {
		elems := make([]Type, len(te.Args))
		for i, a := range te.Args {
			t, err := r.resolveTypeExpr(a, self)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return NewTuple(elems), nil
	}
	return nil, fmt.Errorf("unsupported type constructor %q", te.Name)
}
