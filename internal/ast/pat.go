package ast

import (
	"fmt"
	"strings"
)

// Pat is a surface pattern. Patterns mirror the expression grammar:
// identifier, literal, wildcard, 0-ary/1-ary constructor, tuple, list,
// cons and record (possibly with a trailing "..." ellipsis).
type Pat interface {
	Node
	patNode()
}

type PatWildcard struct {
	Base
}

func (*PatWildcard) patNode() {}
func (*PatWildcard) Op() Op   { return OpIdent }
func (*PatWildcard) String() string { return "_" }

type PatIdent struct {
	Base
	Name string
}

func (*PatIdent) patNode()        {}
func (*PatIdent) Op() Op          { return OpIdent }
func (p *PatIdent) String() string { return p.Name }

type PatLiteral struct {
	Base
	Kind  LitKind
	Value interface{}
}

func (*PatLiteral) patNode() {}
func (*PatLiteral) Op() Op   { return OpLiteral }
func (p *PatLiteral) String() string { return fmt.Sprintf("%v", p.Value) }

// PatCon is a 0-ary or 1-ary value-constructor pattern ("C" or "C p").
type PatCon struct {
	Base
	Name string
	Arg  Pat // nil for 0-ary constructors
}

func (*PatCon) patNode() {}
func (*PatCon) Op() Op   { return OpApply }
func (p *PatCon) String() string {
	if p.Arg == nil {
		return p.Name
	}
	return fmt.Sprintf("%s %s", p.Name, p.Arg)
}

type PatTuple struct {
	Base
	Elems []Pat
}

func (*PatTuple) patNode() {}
func (*PatTuple) Op() Op   { return OpTuple }
func (p *PatTuple) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type PatList struct {
	Base
	Elems []Pat
}

func (*PatList) patNode() {}
func (*PatList) Op() Op   { return OpList }
func (p *PatList) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PatCons is "head :: tail".
type PatCons struct {
	Base
	Head, Tail Pat
}

func (*PatCons) patNode() {}
func (*PatCons) Op() Op   { return OpInfix }
func (p *PatCons) String() string {
	return fmt.Sprintf("%s :: %s", p.Head, p.Tail)
}

type PatRecordField struct {
	Label string
	Pat   Pat
}

// PatRecord is a record pattern, e.g. {a, b=p, ...}. Ellipsis indicates
// the pattern does not name every label of the scrutinee's record type;
// the resolver expands it to a fully ordered pattern (spec §4.2).
type PatRecord struct {
	Base
	Fields   []PatRecordField
	Ellipsis bool
}

func (*PatRecord) patNode() {}
func (*PatRecord) Op() Op   { return OpRecord }
func (p *PatRecord) String() string {
	parts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		parts[i] = fmt.Sprintf("%s=%s", f.Label, f.Pat)
	}
	if p.Ellipsis {
		parts = append(parts, "...")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Names returns, in left-to-right pattern order, every identifier this
// pattern binds. The resolver/typechecker use this to reject a name
// appearing twice within one pattern (spec §4.4).
func Names(p Pat) []string {
	switch n := p.(type) {
	case *PatIdent:
		return []string{n.Name}
	case *PatWildcard, *PatLiteral:
		return nil
	case *PatCon:
		if n.Arg == nil {
			return nil
		}
		return Names(n.Arg)
	case *PatTuple:
		var out []string
		for _, e := range n.Elems {
			out = append(out, Names(e)...)
		}
		return out
	case *PatList:
		var out []string
		for _, e := range n.Elems {
			out = append(out, Names(e)...)
		}
		return out
	case *PatCons:
		return append(Names(n.Head), Names(n.Tail)...)
	case *PatRecord:
		var out []string
		for _, f := range n.Fields {
			out = append(out, Names(f.Pat)...)
		}
		return out
	default:
		return nil
	}
}
