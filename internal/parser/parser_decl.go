package parser

import (
	"strings"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/lexer"
)

// parseValDecl parses "val [rec] p1 = e1 [and p2 = e2 ...]".
func (p *Parser) parseValDecl() (ast.Decl, error) {
	base := p.base()
	if _, err := p.expect(lexer.VAL); err != nil {
		return nil, err
	}
	rec := false
	if p.cur.Type == lexer.REC {
		rec = true
		p.next()
	}

	var bindings []ast.ValBinding
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		exp, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.ValBinding{Pat: pat, Exp: exp})
		if p.cur.Type != lexer.AND {
			break
		}
		p.next()
	}
	return &ast.ValDecl{Base: base, Rec: rec, Bindings: bindings}, nil
}

// parseDatatypeDecl parses "datatype ['a] name = C1 [of ty] | C2 ...".
func (p *Parser) parseDatatypeDecl() (ast.Decl, error) {
	base := p.base()
	if _, err := p.expect(lexer.DATATYPE); err != nil {
		return nil, err
	}

	var typeParams []string
	if p.cur.Type == lexer.IDENT && strings.HasPrefix(p.cur.Literal, "'") {
		typeParams = append(typeParams, p.cur.Literal)
		p.next()
	}

	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, p.errorf(coreerrors.PAR004, "expected a datatype name, found %q", p.cur.Literal)
	}
	if err := p.expectOp("="); err != nil {
		return nil, err
	}

	var ctors []ast.Constructor
	for {
		c, err := p.parseConstructor()
		if err != nil {
			return nil, err
		}
		ctors = append(ctors, c)
		if p.cur.Type != lexer.BAR {
			break
		}
		p.next()
	}
	return &ast.DatatypeDecl{Base: base, Name: name.Literal, TypeParams: typeParams, Constructors: ctors}, nil
}

func (p *Parser) parseConstructor() (ast.Constructor, error) {
	name, err := p.expect(lexer.CONID)
	if err != nil {
		return ast.Constructor{}, p.errorf(coreerrors.PAR004, "expected a capitalised constructor name, found %q", p.cur.Literal)
	}
	var arg *ast.TypeExpr
	if p.cur.Type == lexer.OF {
		p.next()
		arg, err = p.parseTypeExpr()
		if err != nil {
			return ast.Constructor{}, err
		}
	}
	return ast.Constructor{Name: name.Literal, Arg: arg}, nil
}

// parseTypeExpr parses a type annotation: right-associative "->",
// "*"-joined tuples, then postfix type-constructor application
// ("int list", "'a t"), following ML's usual type grammar.
func (p *Parser) parseTypeExpr() (*ast.TypeExpr, error) {
	left, err := p.parseTupleType()
	if err != nil {
		return nil, err
	}
	if p.isOp("->") {
		p.next()
		right, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return &ast.TypeExpr{Name: "->", Args: []*ast.TypeExpr{left, right}}, nil
	}
	return left, nil
}

func (p *Parser) parseTupleType() (*ast.TypeExpr, error) {
	first, err := p.parseAppType()
	if err != nil {
		return nil, err
	}
	if !p.isOp("*") {
		return first, nil
	}
	elems := []*ast.TypeExpr{first}
	for p.isOp("*") {
		p.next()
		next, err := p.parseAppType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	return &ast.TypeExpr{Name: "*", Args: elems}, nil
}

func (p *Parser) parseAppType() (*ast.TypeExpr, error) {
	atom, err := p.parseAtomType()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.IDENT && !strings.HasPrefix(p.cur.Literal, "'") {
		atom = &ast.TypeExpr{Name: p.cur.Literal, Args: []*ast.TypeExpr{atom}}
		p.next()
	}
	return atom, nil
}

func (p *Parser) parseAtomType() (*ast.TypeExpr, error) {
	switch p.cur.Type {
	case lexer.IDENT:
		lit := p.cur.Literal
		p.next()
		return &ast.TypeExpr{Name: lit}, nil
	case lexer.LPAREN:
		p.next()
		t, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, p.errorf(coreerrors.PAR004, "expected a type, found %q", p.cur.Literal)
	}
}
