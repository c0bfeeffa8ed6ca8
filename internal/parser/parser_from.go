package parser

import (
	coreerrors "github.com/sml-lang/interp/internal/errors"

	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/lexer"
)

// parseFrom parses "from p1 in e1, p2 in e2 ... where ... group ...
// order ... yield ..." (spec §3.3/§4.5). where/group/order steps may
// repeat, in any order, and are appended to Steps in source order;
// yield is optional (a default yield is synthesized by the resolver).
func (p *Parser) parseFrom(base ast.Base) (ast.Expr, error) {
	p.next() // "from"

	var sources []ast.FromSource
	src, err := p.parseFromSource()
	if err != nil {
		return nil, err
	}
	sources = append(sources, src)
	for p.cur.Type == lexer.COMMA {
		p.next()
		src, err := p.parseFromSource()
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	var steps []ast.Step
	for {
		switch p.cur.Type {
		case lexer.WHERE:
			p.next()
			pred, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			steps = append(steps, ast.Step{Kind: ast.StepWhere, Pred: pred})

		case lexer.GROUP:
			step, err := p.parseGroupStep()
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)

		case lexer.ORDER:
			step, err := p.parseOrderStep()
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)

		default:
			goto doneSteps
		}
	}
doneSteps:

	var yield ast.Expr
	if p.cur.Type == lexer.YIELD {
		p.next()
		yield, err = p.parseExpr(0)
		if err != nil {
			return nil, err
		}
	}

	return &ast.From{Base: base, Sources: sources, Steps: steps, Yield: yield}, nil
}

func (p *Parser) parseFromSource() (ast.FromSource, error) {
	pat, err := p.parsePattern()
	if err != nil {
		return ast.FromSource{}, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return ast.FromSource{}, err
	}
	exp, err := p.parseExpr(0)
	if err != nil {
		return ast.FromSource{}, err
	}
	return ast.FromSource{Pat: pat, Exp: exp}, nil
}

// parseGroupStep parses "group k1, k2 [compute a1 = fn1, a2 = fn2 ...]".
// Each group key must be a bare identifier, naming both the source
// field projected and the name it is rebound to after the group resets
// the visible binding set (spec §4.5).
func (p *Parser) parseGroupStep() (ast.Step, error) {
	p.next() // "group"
	var keys []ast.Expr
	var names []string

	k, name, err := p.parseGroupKey()
	if err != nil {
		return ast.Step{}, err
	}
	keys = append(keys, k)
	names = append(names, name)
	for p.cur.Type == lexer.COMMA {
		p.next()
		k, name, err := p.parseGroupKey()
		if err != nil {
			return ast.Step{}, err
		}
		keys = append(keys, k)
		names = append(names, name)
	}

	var aggs []ast.Aggregate
	if p.cur.Type == lexer.COMPUTE {
		p.next()
		for {
			agg, err := p.parseAggregate()
			if err != nil {
				return ast.Step{}, err
			}
			aggs = append(aggs, agg)
			if p.cur.Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}

	return ast.Step{Kind: ast.StepGroup, GroupKeys: keys, GroupNames: names, Aggregates: aggs}, nil
}

func (p *Parser) parseGroupKey() (ast.Expr, string, error) {
	ident, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, "", p.errorf(coreerrors.PAR005, "group key must name a bound field, found %q", p.cur.Literal)
	}
	base := ast.NewBase(p.ids.Next(), ast.Pos{File: ident.File, Line: ident.Line, Column: ident.Column})
	return &ast.Ident{Base: base, Name: ident.Literal}, ident.Literal, nil
}

// parseAggregate parses "name = fn" or "name = fn arg", where fn is one
// of count/sum/min/max/avg (count takes no argument).
func (p *Parser) parseAggregate() (ast.Aggregate, error) {
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return ast.Aggregate{}, err
	}
	if err := p.expectOp("="); err != nil {
		return ast.Aggregate{}, err
	}
	fn, err := p.expect(lexer.IDENT)
	if err != nil {
		return ast.Aggregate{}, p.errorf(coreerrors.PAR005, "expected an aggregate function, found %q", p.cur.Literal)
	}
	var arg ast.Expr
	if fn.Literal != "count" {
		arg, err = p.parseApply()
		if err != nil {
			return ast.Aggregate{}, err
		}
	}
	return ast.Aggregate{Name: name.Literal, Fn: fn.Literal, Arg: arg}, nil
}

// parseOrderStep parses "order e1 [asc|desc], e2 [asc|desc] ...".
func (p *Parser) parseOrderStep() (ast.Step, error) {
	p.next() // "order"
	var items []ast.OrderItem

	item, err := p.parseOrderItem()
	if err != nil {
		return ast.Step{}, err
	}
	items = append(items, item)
	for p.cur.Type == lexer.COMMA {
		p.next()
		item, err := p.parseOrderItem()
		if err != nil {
			return ast.Step{}, err
		}
		items = append(items, item)
	}
	return ast.Step{Kind: ast.StepOrder, OrderItems: items}, nil
}

func (p *Parser) parseOrderItem() (ast.OrderItem, error) {
	e, err := p.parseExpr(0)
	if err != nil {
		return ast.OrderItem{}, err
	}
	desc := false
	switch p.cur.Type {
	case lexer.DESC:
		desc = true
		p.next()
	case lexer.ASC:
		p.next()
	}
	return ast.OrderItem{Exp: e, Desc: desc}, nil
}
