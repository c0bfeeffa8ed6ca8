package core

import (
	"fmt"
	"strings"

	"github.com/sml-lang/interp/internal/types"
)

// Pat mirrors the core expression shapes (spec §3.3: "Patterns mirror
// the same structure"). Every pattern carries its type; a record pattern
// is always fully expanded, one sub-pattern per label in the record
// type's canonical order, wildcards filling any field the surface
// pattern omitted.
type Pat interface {
	Type() types.Type
	String() string
	patNode()
}

type PatIdent struct {
	Typ  types.Type
	Name string
}

func (p *PatIdent) Type() types.Type { return p.Typ }
func (*PatIdent) patNode()           {}
func (p *PatIdent) String() string   { return p.Name }

type PatWildcard struct {
	Typ types.Type
}

func (p *PatWildcard) Type() types.Type { return p.Typ }
func (*PatWildcard) patNode()           {}
func (p *PatWildcard) String() string   { return "_" }

type PatLiteral struct {
	Typ   types.Type
	Value interface{}
}

func (p *PatLiteral) Type() types.Type { return p.Typ }
func (*PatLiteral) patNode()           {}
func (p *PatLiteral) String() string   { return fmt.Sprintf("%v", p.Value) }

// PatCon0 is a 0-ary constructor pattern.
type PatCon0 struct {
	Typ  types.Type
	Name string
}

func (p *PatCon0) Type() types.Type { return p.Typ }
func (*PatCon0) patNode()           {}
func (p *PatCon0) String() string   { return p.Name }

// PatCon1 is a 1-ary constructor pattern.
type PatCon1 struct {
	Typ  types.Type
	Name string
	Arg  Pat
}

func (p *PatCon1) Type() types.Type { return p.Typ }
func (*PatCon1) patNode()           {}
func (p *PatCon1) String() string   { return fmt.Sprintf("%s %s", p.Name, p.Arg) }

type PatTuple struct {
	Typ   types.Type
	Elems []Pat
}

func (p *PatTuple) Type() types.Type { return p.Typ }
func (*PatTuple) patNode()           {}
func (p *PatTuple) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type PatList struct {
	Typ   types.Type
	Elems []Pat
}

func (p *PatList) Type() types.Type { return p.Typ }
func (*PatList) patNode()           {}
func (p *PatList) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type PatCons struct {
	Typ        types.Type
	Head, Tail Pat
}

func (p *PatCons) Type() types.Type { return p.Typ }
func (*PatCons) patNode()           {}
func (p *PatCons) String() string   { return fmt.Sprintf("%s :: %s", p.Head, p.Tail) }

// PatRecord is always fully expanded: one sub-pattern per label of Typ,
// in Typ's canonical order (spec §3.3 invariant, established by
// internal/resolver when it builds the pattern; nothing re-checks it
// later).
type PatRecord struct {
	Typ    types.Type
	Labels []string
	Pats   []Pat
}

func (p *PatRecord) Type() types.Type { return p.Typ }
func (*PatRecord) patNode()           {}
func (p *PatRecord) String() string {
	parts := make([]string, len(p.Labels))
	for i, l := range p.Labels {
		parts[i] = fmt.Sprintf("%s=%s", l, p.Pats[i])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
