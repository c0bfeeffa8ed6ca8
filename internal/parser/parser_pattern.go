package parser

import (
	"strconv"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/lexer"
)

// parsePattern parses a pattern, with "::" (right-associative) as the
// only infix pattern form.
func (p *Parser) parsePattern() (ast.Pat, error) {
	head, err := p.parseAtomPattern()
	if err != nil {
		return nil, err
	}
	if p.isOp("::") {
		base := p.base()
		p.next()
		tail, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return &ast.PatCons{Base: base, Head: head, Tail: tail}, nil
	}
	return head, nil
}

func (p *Parser) parseAtomPattern() (ast.Pat, error) {
	base := p.base()
	switch p.cur.Type {
	case lexer.WILDCARD:
		p.next()
		return &ast.PatWildcard{Base: base}, nil

	case lexer.IDENT:
		lit := p.cur.Literal
		p.next()
		return &ast.PatIdent{Base: base, Name: lit}, nil

	case lexer.CONID:
		lit := p.cur.Literal
		p.next()
		var arg ast.Pat
		if p.startsAtomPattern() {
			a, err := p.parseAtomPattern()
			if err != nil {
				return nil, err
			}
			arg = a
		}
		return &ast.PatCon{Base: base, Name: lit, Arg: arg}, nil

	case lexer.INT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(coreerrors.PAR003, "invalid integer pattern %q", p.cur.Literal)
		}
		p.next()
		return &ast.PatLiteral{Base: base, Kind: ast.LitInt, Value: n}, nil

	case lexer.REAL:
		f, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, p.errorf(coreerrors.PAR003, "invalid real pattern %q", p.cur.Literal)
		}
		p.next()
		return &ast.PatLiteral{Base: base, Kind: ast.LitReal, Value: f}, nil

	case lexer.STRING:
		lit := p.cur.Literal
		p.next()
		return &ast.PatLiteral{Base: base, Kind: ast.LitString, Value: lit}, nil

	case lexer.CHAR:
		r := []rune(p.cur.Literal)
		p.next()
		var v rune
		if len(r) > 0 {
			v = r[0]
		}
		return &ast.PatLiteral{Base: base, Kind: ast.LitChar, Value: v}, nil

	case lexer.TRUE:
		p.next()
		return &ast.PatLiteral{Base: base, Kind: ast.LitBool, Value: true}, nil

	case lexer.FALSE:
		p.next()
		return &ast.PatLiteral{Base: base, Kind: ast.LitBool, Value: false}, nil

	case lexer.LPAREN:
		p.next()
		if p.cur.Type == lexer.RPAREN {
			p.next()
			return &ast.PatLiteral{Base: base, Kind: ast.LitUnit, Value: nil}, nil
		}
		first, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.COMMA {
			elems := []ast.Pat{first}
			for p.cur.Type == lexer.COMMA {
				p.next()
				e, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			return &ast.PatTuple{Base: base, Elems: elems}, nil
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return first, nil

	case lexer.LBRACKET:
		p.next()
		var elems []ast.Pat
		if p.cur.Type != lexer.RBRACKET {
			e, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			for p.cur.Type == lexer.COMMA {
				p.next()
				e, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.PatList{Base: base, Elems: elems}, nil

	case lexer.LBRACE:
		return p.parseRecordPattern(base)

	default:
		return nil, p.errorf(coreerrors.PAR003, "unexpected token %q in pattern", p.cur.Literal)
	}
}

func (p *Parser) startsAtomPattern() bool {
	switch p.cur.Type {
	case lexer.WILDCARD, lexer.IDENT, lexer.CONID, lexer.INT, lexer.REAL,
		lexer.STRING, lexer.CHAR, lexer.TRUE, lexer.FALSE,
		lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
		return true
	default:
		return false
	}
}

// parseRecordPattern parses "{a, b=p, ...}"; a bare label "a" is
// shorthand for "a=a" (spec §4.2's canonicalisation expects every label
// paired with a sub-pattern).
func (p *Parser) parseRecordPattern(base ast.Base) (ast.Pat, error) {
	p.next() // "{"
	var fields []ast.PatRecordField
	ellipsis := false
	if p.cur.Type != lexer.RBRACE {
		for {
			if p.cur.Type == lexer.ELLIPSIS {
				p.next()
				ellipsis = true
				break
			}
			label, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			var fp ast.Pat
			if p.isOp("=") {
				p.next()
				fp, err = p.parsePattern()
				if err != nil {
					return nil, err
				}
			} else {
				fp = &ast.PatIdent{Base: base, Name: label.Literal}
			}
			fields = append(fields, ast.PatRecordField{Label: label.Literal, Pat: fp})
			if p.cur.Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.PatRecord{Base: base, Fields: fields, Ellipsis: ellipsis}, nil
}
