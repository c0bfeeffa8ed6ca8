package parser

import (
	"strconv"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/lexer"
)

// infixLiteral reports the operator spelling of tok if it is usable as
// an infix operator, and whether it is. Keyword-spelled operators
// (div, mod, andalso, orelse) are included alongside symbolic ones.
func infixLiteral(tok lexer.Token) (string, bool) {
	switch tok.Type {
	case lexer.DIV:
		return "div", true
	case lexer.MOD:
		return "mod", true
	case lexer.ANDALSO:
		return "andalso", true
	case lexer.ORELSE:
		return "orelse", true
	case lexer.OPERATOR:
		if _, ok := ast.InfixPrec[tok.Literal]; ok {
			return tok.Literal, true
		}
	}
	return "", false
}

// parseExpr parses an expression via precedence climbing over
// ast.InfixPrec, accepting any infix operator whose left-binding power
// is at least minPrec.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseApply()
	if err != nil {
		return nil, err
	}
	for {
		lit, ok := infixLiteral(p.cur)
		if !ok {
			return left, nil
		}
		band := ast.InfixPrec[lit]
		if band.Left < minPrec {
			return left, nil
		}
		base := p.base()
		p.next()
		nextMin := band.Right + 1
		if band.Left > band.Right {
			// Right-associative band (e.g. "::", "@"): allow the same
			// operator to recur on the right without the +1 bump.
			nextMin = band.Right
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{Base: base, Operator: lit, Left: left, Right: right}
	}
}

// parseApply parses left-associative juxtaposition ("f x y" = "(f x) y").
func (p *Parser) parseApply() (ast.Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		base := p.base()
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = &ast.Apply{Base: base, Fn: left, Arg: arg}
	}
	return left, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur.Type {
	case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE,
		lexer.IDENT, lexer.CONID, lexer.INT, lexer.REAL, lexer.STRING, lexer.CHAR,
		lexer.TRUE, lexer.FALSE,
		lexer.IF, lexer.FN, lexer.CASE, lexer.LET, lexer.FROM:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	base := p.base()
	switch p.cur.Type {
	case lexer.INT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(coreerrors.PAR001, "invalid integer literal %q", p.cur.Literal)
		}
		p.next()
		return &ast.Literal{Base: base, Kind: ast.LitInt, Value: n}, nil

	case lexer.REAL:
		f, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, p.errorf(coreerrors.PAR001, "invalid real literal %q", p.cur.Literal)
		}
		p.next()
		return &ast.Literal{Base: base, Kind: ast.LitReal, Value: f}, nil

	case lexer.STRING:
		lit := p.cur.Literal
		p.next()
		return &ast.Literal{Base: base, Kind: ast.LitString, Value: lit}, nil

	case lexer.CHAR:
		r := []rune(p.cur.Literal)
		p.next()
		var v rune
		if len(r) > 0 {
			v = r[0]
		}
		return &ast.Literal{Base: base, Kind: ast.LitChar, Value: v}, nil

	case lexer.TRUE:
		p.next()
		return &ast.Literal{Base: base, Kind: ast.LitBool, Value: true}, nil

	case lexer.FALSE:
		p.next()
		return &ast.Literal{Base: base, Kind: ast.LitBool, Value: false}, nil

	case lexer.IDENT:
		lit := p.cur.Literal
		p.next()
		return &ast.Ident{Base: base, Name: lit}, nil

	case lexer.CONID:
		lit := p.cur.Literal
		p.next()
		return &ast.Ident{Base: base, Name: lit}, nil

	case lexer.LPAREN:
		return p.parseParenOrTuple(base)

	case lexer.LBRACKET:
		return p.parseListLit(base)

	case lexer.LBRACE:
		return p.parseRecordLit(base)

	case lexer.IF:
		return p.parseIf(base)

	case lexer.FN:
		return p.parseFn(base)

	case lexer.CASE:
		return p.parseCase(base)

	case lexer.LET:
		return p.parseLet(base)

	case lexer.FROM:
		return p.parseFrom(base)

	default:
		return nil, p.errorf(coreerrors.PAR001, "unexpected token %q", p.cur.Literal)
	}
}

func (p *Parser) parseParenOrTuple(base ast.Base) (ast.Expr, error) {
	p.next() // "("
	if p.cur.Type == lexer.RPAREN {
		p.next()
		return &ast.Literal{Base: base, Kind: ast.LitUnit, Value: nil}, nil
	}
	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.COMMA {
		elems := []ast.Expr{first}
		for p.cur.Type == lexer.COMMA {
			p.next()
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Tuple{Base: base, Elems: elems}, nil
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseListLit(base ast.Base) (ast.Expr, error) {
	p.next() // "["
	var elems []ast.Expr
	if p.cur.Type != lexer.RBRACKET {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		for p.cur.Type == lexer.COMMA {
			p.next()
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.List{Base: base, Elems: elems}, nil
}

// parseRecordLit parses "{a=e, b, ...}"; a bare label "b" is shorthand
// for "b=b" (the same punning parseRecordPattern accepts on the pattern
// side), used pervasively by from-query yield clauses (spec §4.5
// scenario: "yield {dept, c}").
func (p *Parser) parseRecordLit(base ast.Base) (ast.Expr, error) {
	p.next() // "{"
	var fields []ast.RecordField
	if p.cur.Type != lexer.RBRACE {
		for {
			label, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			var val ast.Expr
			if p.isOp("=") {
				p.next()
				val, err = p.parseExpr(0)
				if err != nil {
					return nil, err
				}
			} else {
				val = &ast.Ident{Base: base, Name: label.Literal}
			}
			fields = append(fields, ast.RecordField{Label: label.Literal, Value: val})
			if p.cur.Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Record{Base: base, Fields: fields}, nil
}

func (p *Parser) parseIf(base ast.Base) (ast.Expr, error) {
	p.next() // "if"
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.If{Base: base, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseFn(base ast.Base) (ast.Expr, error) {
	p.next() // "fn"
	matches, err := p.parseMatches()
	if err != nil {
		return nil, err
	}
	return &ast.Fn{Base: base, Matches: matches}, nil
}

func (p *Parser) parseCase(base ast.Base) (ast.Expr, error) {
	p.next() // "case"
	scrut, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.OF); err != nil {
		return nil, err
	}
	matches, err := p.parseMatches()
	if err != nil {
		return nil, err
	}
	return &ast.Case{Base: base, Scrutinee: scrut, Matches: matches}, nil
}

// parseMatches parses "p1 => e1 | p2 => e2 | ...".
func (p *Parser) parseMatches() ([]ast.Match, error) {
	var matches []ast.Match
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("=>"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		matches = append(matches, ast.Match{Pat: pat, Body: body})
		if p.cur.Type != lexer.BAR {
			return matches, nil
		}
		p.next()
	}
}

// parseLet parses "let d1 d2 ... in e end"; each decl recognized by
// its leading keyword, with an optional ";" between them.
func (p *Parser) parseLet(base ast.Base) (ast.Expr, error) {
	p.next() // "let"
	var decls []ast.Decl
	for p.cur.Type != lexer.IN {
		var d ast.Decl
		var err error
		switch p.cur.Type {
		case lexer.VAL:
			d, err = p.parseValDecl()
		case lexer.DATATYPE:
			d, err = p.parseDatatypeDecl()
		default:
			return nil, p.errorf(coreerrors.PAR001, "expected a declaration inside let, found %q", p.cur.Literal)
		}
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		for p.cur.Type == lexer.SEMI {
			p.next()
		}
	}
	p.next() // "in"
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return &ast.Let{Base: base, Decls: decls, Body: body}, nil
}
