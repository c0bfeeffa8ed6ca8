package ast

import (
	"fmt"
	"strings"
)

// Print renders an expression using the precedence bands in InfixPrec to
// decide when a child Infix needs parentheses, rather than the
// unconditional parenthesisation Infix.String uses. This mirrors the
// kind of "pretty vs debug" split between ast.Node.String() (debug)
// and a dedicated printer (display).
func Print(e Expr) string {
	return printPrec(e, 0)
}

func printPrec(e Expr, parentPrec int) string {
	inf, ok := e.(*Infix)
	if !ok {
		return e.String()
	}
	band, known := InfixPrec[inf.Operator]
	prec := 0
	if known {
		prec = band.Left
	}
	left := printPrec(inf.Left, prec)
	right := printPrec(inf.Right, prec+1) // left-assoc by default
	s := fmt.Sprintf("%s %s %s", left, inf.Operator, right)
	if known && prec < parentPrec {
		return "(" + s + ")"
	}
	return s
}

// PrintPat renders a pattern the way the surface syntax would show it,
// expanding nothing (used for diagnostics before resolver expansion).
func PrintPat(p Pat) string {
	return p.String()
}

// PrintProgram renders a whole program, one declaration per line.
func PrintProgram(p *Program) string {
	var b strings.Builder
	for i, d := range p.Decls {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.String())
	}
	return b.String()
}
