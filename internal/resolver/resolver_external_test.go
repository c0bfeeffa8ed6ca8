package resolver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sml-lang/interp/internal/builtins"
	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/parser"
	"github.com/sml-lang/interp/internal/resolver"
	"github.com/sml-lang/interp/internal/types"
)

// clauseSummary strips every node down to the shape that matters for
// these tests (what kind of pattern, what literal it carries, what kind
// of body) so cmp.Diff never has to reconcile two differently-allocated
// *types.Type values for an otherwise-identical tree.
type clauseSummary struct {
	PatKind  string
	PatValue interface{}
	BodyKind string
}

func resolveSingle(t *testing.T, src string) core.Expr {
	t.Helper()
	prog, err := parser.ParseProgram([]byte(src), "test.sml")
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	datatypes := types.NewDataRegistry()
	inf := types.NewInferencer(types.NewStore(), datatypes)
	infResult, err := inf.InferProgram(builtins.Env(), prog)
	if err != nil {
		t.Fatalf("InferProgram(%q): %v", src, err)
	}
	res := resolver.New(infResult.TypeMap, datatypes, builtins.Lookup)
	coreProg, err := res.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("ResolveProgram(%q): %v", src, err)
	}
	vd := coreProg.Decls[len(coreProg.Decls)-1].(*core.Let).Decl.(*core.ValDecl)
	return vd.Bindings[len(vd.Bindings)-1].Rhs
}

func summarize(t *testing.T, m core.FnMatch) clauseSummary {
	t.Helper()
	s := clauseSummary{BodyKind: kindOf(m.Body)}
	switch p := m.Pat.(type) {
	case *core.PatLiteral:
		s.PatKind = "literal"
		s.PatValue = p.Value
	case *core.PatWildcard:
		s.PatKind = "wildcard"
	default:
		t.Fatalf("unexpected pattern kind %T", p)
	}
	return s
}

func kindOf(e core.Expr) string {
	switch e.(type) {
	case *core.Literal:
		return "literal"
	case *core.Id:
		return "id"
	default:
		return "other"
	}
}

// TestResolveIfBecomesCase checks spec §4.2's "if -> case" rewrite: "if
// c then t else e" desugars to matching the condition against literal
// true, then a wildcard, grounded on resolver.resolveIf.
func TestResolveIfBecomesCase(t *testing.T) {
	rhs := resolveSingle(t, "if true then 1 else 2")
	c, ok := rhs.(*core.Case)
	if !ok {
		t.Fatalf("got %T, want *core.Case", rhs)
	}
	if _, ok := c.Scrutinee.(*core.Literal); !ok {
		t.Fatalf("scrutinee is %T, want *core.Literal", c.Scrutinee)
	}
	if len(c.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(c.Matches))
	}

	want := []clauseSummary{
		{PatKind: "literal", PatValue: true, BodyKind: "literal"},
		{PatKind: "wildcard", BodyKind: "literal"},
	}
	got := []clauseSummary{summarize(t, c.Matches[0]), summarize(t, c.Matches[1])}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("case clauses mismatch (-want +got):\n%s", diff)
	}
}

// TestResolveSimultaneousBindingBecomesTuple checks spec §4.2's "val
// x1=e1 and x2=e2" -> "val (x1,x2) = (e1,e2)" rewrite, grounded on
// resolver.resolveValDecl.
func TestResolveSimultaneousBindingBecomesTuple(t *testing.T) {
	prog, err := parser.ParseProgram([]byte("val x = 1 and y = 2"), "test.sml")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	datatypes := types.NewDataRegistry()
	inf := types.NewInferencer(types.NewStore(), datatypes)
	infResult, err := inf.InferProgram(builtins.Env(), prog)
	if err != nil {
		t.Fatalf("InferProgram: %v", err)
	}
	res := resolver.New(infResult.TypeMap, datatypes, builtins.Lookup)
	coreProg, err := res.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("ResolveProgram: %v", err)
	}
	vd := coreProg.Decls[0].(*core.Let).Decl.(*core.ValDecl)
	if len(vd.Bindings) != 1 {
		t.Fatalf("got %d bindings, want 1 (merged into a tuple)", len(vd.Bindings))
	}
	pat, ok := vd.Bindings[0].Pat.(*core.PatTuple)
	if !ok {
		t.Fatalf("pattern is %T, want *core.PatTuple", vd.Bindings[0].Pat)
	}
	names := core.PatNames(pat)
	if diff := cmp.Diff([]string{"x", "y"}, names); diff != "" {
		t.Fatalf("bound names mismatch (-want +got):\n%s", diff)
	}
}
