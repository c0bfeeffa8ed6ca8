package builtins

import (
	"github.com/sml-lang/interp/internal/ast"
)

// operatorNames lists every entry registered under an infix-operator
// symbol (ast.InfixOps) plus the resolver's list-literal target; these
// are never looked up by name from surface identifier position, so
// Env()/Environment() exclude them from the prelude bootstrap scope.
var operatorNames = append(append([]string{}, ast.InfixOps...), "Z_LIST")

func init() {
	registerArithmetic()
	registerComparison()
	registerBoolean()
	registerList()
	registerString()
}
