// Package parser builds a surface internal/ast.Program from a token
// stream, by hand-rolled recursive descent plus precedence climbing
// over ast.InfixPrec for infix expressions. It is the external
// collaborator spec §1 treats as out of scope for the core pipeline,
// implemented anyway so the pipeline can run end to end from source
// text, as a hand-rolled parser rather than a generated one.
package parser

import (
	"fmt"

	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/lexer"
)

// Parser consumes tokens from a lexer.Lexer and builds ast nodes,
// stamping each with a stable NodeID from its own generator.
type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
	ids  *ast.IDGen
}

// New returns a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, ids: ast.NewIDGen()}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{File: p.cur.File, Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) base() ast.Base {
	return ast.NewBase(p.ids.Next(), p.pos())
}

func (p *Parser) errorf(code, format string, args ...interface{}) error {
	return coreerrors.NewParse(code, fmt.Sprintf(format, args...), p.pos(), map[string]interface{}{
		"token": p.cur.Literal,
	})
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur.Type != tt {
		return lexer.Token{}, p.errorf(coreerrors.PAR001, "expected %s, found %q", tt, p.cur.Literal)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

// expectOp requires the current token to be an OPERATOR with the given
// literal (e.g. "=" or "=>"), which the lexer cannot distinguish from
// other symbolic runs without the parser's grammatical context.
func (p *Parser) expectOp(lit string) error {
	if p.cur.Type != lexer.OPERATOR || p.cur.Literal != lit {
		return p.errorf(coreerrors.PAR001, "expected %q, found %q", lit, p.cur.Literal)
	}
	p.next()
	return nil
}

func (p *Parser) isOp(lit string) bool {
	return p.cur.Type == lexer.OPERATOR && p.cur.Literal == lit
}

// ParseProgram parses an entire source file: a sequence of top-level
// declarations or bare expressions, separated by optional ";".
func ParseProgram(src []byte, file string) (*ast.Program, error) {
	p := New(lexer.New(src, file))
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	var decls []ast.Decl
	for p.cur.Type != lexer.EOF {
		for p.cur.Type == lexer.SEMI {
			p.next()
		}
		if p.cur.Type == lexer.EOF {
			break
		}
		d, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		for p.cur.Type == lexer.SEMI {
			p.next()
		}
	}
	return &ast.Program{Decls: decls}, nil
}

func (p *Parser) parseTopLevel() (ast.Decl, error) {
	switch p.cur.Type {
	case lexer.VAL:
		return p.parseValDecl()
	case lexer.DATATYPE:
		return p.parseDatatypeDecl()
	default:
		base := p.base()
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		// A bare expression is sugar for "val it = e" (spec §6's
		// "val it = ..." REPL convention).
		return &ast.ValDecl{
			Base:     base,
			Bindings: []ast.ValBinding{{Pat: &ast.PatIdent{Base: base, Name: "it"}, Exp: e}},
		}, nil
	}
}
