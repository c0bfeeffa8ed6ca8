package parser

import (
	"testing"

	"github.com/sml-lang/interp/internal/ast"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram([]byte(src), "test.sml")
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseArithmeticAsBareDecl(t *testing.T) {
	prog := parse(t, "1 + 2")
	if len(prog.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(prog.Decls))
	}
	vd, ok := prog.Decls[0].(*ast.ValDecl)
	if !ok {
		t.Fatalf("Decls[0] is %T, want *ast.ValDecl", prog.Decls[0])
	}
	if len(vd.Bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(vd.Bindings))
	}
	pid, ok := vd.Bindings[0].Pat.(*ast.PatIdent)
	if !ok || pid.Name != "it" {
		t.Fatalf("binding pattern is %#v, want PatIdent{Name: \"it\"}", vd.Bindings[0].Pat)
	}
	infix, ok := vd.Bindings[0].Exp.(*ast.Infix)
	if !ok {
		t.Fatalf("binding value is %T, want *ast.Infix", vd.Bindings[0].Exp)
	}
	if infix.Operator != "+" {
		t.Fatalf("got operator %q, want %q", infix.Operator, "+")
	}
}

func TestParseValList(t *testing.T) {
	prog := parse(t, "val xs = [1,2,3]")
	vd := prog.Decls[0].(*ast.ValDecl)
	if vd.Rec {
		t.Fatalf("got Rec=true, want false")
	}
	lst, ok := vd.Bindings[0].Exp.(*ast.List)
	if !ok {
		t.Fatalf("binding value is %T, want *ast.List", vd.Bindings[0].Exp)
	}
	if len(lst.Elems) != 3 {
		t.Fatalf("got %d elems, want 3", len(lst.Elems))
	}
}

func TestParseLetAndBinding(t *testing.T) {
	prog := parse(t, "let val x = 3 and y = 4 in x + y end")
	vd := prog.Decls[0].(*ast.ValDecl)
	let, ok := vd.Bindings[0].Exp.(*ast.Let)
	if !ok {
		t.Fatalf("body is %T, want *ast.Let", vd.Bindings[0].Exp)
	}
	if len(let.Decls) != 1 {
		t.Fatalf("got %d let-decls, want 1", len(let.Decls))
	}
	inner, ok := let.Decls[0].(*ast.ValDecl)
	if !ok {
		t.Fatalf("let decl is %T, want *ast.ValDecl", let.Decls[0])
	}
	if len(inner.Bindings) != 2 {
		t.Fatalf("got %d bindings in 'and' chain, want 2", len(inner.Bindings))
	}
	if _, ok := let.Body.(*ast.Infix); !ok {
		t.Fatalf("let body is %T, want *ast.Infix", let.Body)
	}
}

func TestParseValRecFactorial(t *testing.T) {
	prog := parse(t, "val rec fact = fn 0 => 1 | n => n * fact (n - 1); fact 5")
	if len(prog.Decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(prog.Decls))
	}
	vd, ok := prog.Decls[0].(*ast.ValDecl)
	if !ok || !vd.Rec {
		t.Fatalf("first decl is %#v, want a rec ValDecl", prog.Decls[0])
	}
	fn, ok := vd.Bindings[0].Exp.(*ast.Fn)
	if !ok {
		t.Fatalf("bound value is %T, want *ast.Fn", vd.Bindings[0].Exp)
	}
	if len(fn.Matches) != 2 {
		t.Fatalf("got %d fn clauses, want 2", len(fn.Matches))
	}
	if _, ok := fn.Matches[0].Pat.(*ast.PatLiteral); !ok {
		t.Fatalf("first clause pattern is %T, want *ast.PatLiteral", fn.Matches[0].Pat)
	}

	it, ok := prog.Decls[1].(*ast.ValDecl)
	if !ok {
		t.Fatalf("second decl is %T, want *ast.ValDecl", prog.Decls[1])
	}
	apply, ok := it.Bindings[0].Exp.(*ast.Apply)
	if !ok {
		t.Fatalf("second decl value is %T, want *ast.Apply", it.Bindings[0].Exp)
	}
	if fnName, ok := apply.Fn.(*ast.Ident); !ok || fnName.Name != "fact" {
		t.Fatalf("applied function is %#v, want Ident{fact}", apply.Fn)
	}
}

func TestParseFromGroupComputeYield(t *testing.T) {
	src := `from e in [{id=1,dept=10},{id=2,dept=10},{id=3,dept=20}] ` +
		`group dept compute c = count yield {dept, c}`
	prog := parse(t, src)
	vd := prog.Decls[0].(*ast.ValDecl)
	from, ok := vd.Bindings[0].Exp.(*ast.From)
	if !ok {
		t.Fatalf("value is %T, want *ast.From", vd.Bindings[0].Exp)
	}
	if len(from.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(from.Sources))
	}
	if pid, ok := from.Sources[0].Pat.(*ast.PatIdent); !ok || pid.Name != "e" {
		t.Fatalf("source pattern is %#v, want PatIdent{e}", from.Sources[0].Pat)
	}
	if len(from.Steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(from.Steps))
	}
	step := from.Steps[0]
	if step.Kind != ast.StepGroup {
		t.Fatalf("got step kind %v, want StepGroup", step.Kind)
	}
	if len(step.GroupNames) != 1 || step.GroupNames[0] != "dept" {
		t.Fatalf("got group names %v, want [dept]", step.GroupNames)
	}
	if len(step.Aggregates) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(step.Aggregates))
	}
	agg := step.Aggregates[0]
	if agg.Name != "c" || agg.Fn != "count" || agg.Arg != nil {
		t.Fatalf("got aggregate %#v, want {Name:c Fn:count Arg:nil}", agg)
	}
	rec, ok := from.Yield.(*ast.Record)
	if !ok {
		t.Fatalf("yield is %T, want *ast.Record", from.Yield)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Label != "dept" || rec.Fields[1].Label != "c" {
		t.Fatalf("got yield fields %#v, want [dept c]", rec.Fields)
	}
}

func TestParseConsPatternFn(t *testing.T) {
	prog := parse(t, "(fn (x::xs) => x) [10,20,30]")
	vd := prog.Decls[0].(*ast.ValDecl)
	apply, ok := vd.Bindings[0].Exp.(*ast.Apply)
	if !ok {
		t.Fatalf("value is %T, want *ast.Apply", vd.Bindings[0].Exp)
	}
	fn, ok := apply.Fn.(*ast.Fn)
	if !ok {
		t.Fatalf("applied fn is %T, want *ast.Fn", apply.Fn)
	}
	cons, ok := fn.Matches[0].Pat.(*ast.PatCons)
	if !ok {
		t.Fatalf("clause pattern is %T, want *ast.PatCons", fn.Matches[0].Pat)
	}
	if _, ok := cons.Head.(*ast.PatIdent); !ok {
		t.Fatalf("cons head is %T, want *ast.PatIdent", cons.Head)
	}
	if _, ok := apply.Arg.(*ast.List); !ok {
		t.Fatalf("applied arg is %T, want *ast.List", apply.Arg)
	}
}

func TestParseDatatypeDecl(t *testing.T) {
	prog := parse(t, "datatype 'a option = None | Some of 'a")
	dt, ok := prog.Decls[0].(*ast.DatatypeDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.DatatypeDecl", prog.Decls[0])
	}
	if dt.Name != "option" {
		t.Fatalf("got name %q, want %q", dt.Name, "option")
	}
	if len(dt.TypeParams) != 1 || dt.TypeParams[0] != "'a" {
		t.Fatalf("got type params %v, want ['a]", dt.TypeParams)
	}
	if len(dt.Constructors) != 2 {
		t.Fatalf("got %d constructors, want 2", len(dt.Constructors))
	}
	if dt.Constructors[0].Name != "None" || dt.Constructors[0].Arg != nil {
		t.Fatalf("got constructor 0 %#v, want nullary None", dt.Constructors[0])
	}
	if dt.Constructors[1].Name != "Some" || dt.Constructors[1].Arg == nil {
		t.Fatalf("got constructor 1 %#v, want Some of 'a", dt.Constructors[1])
	}
}

func TestParseRecordPatternEllipsis(t *testing.T) {
	prog := parse(t, "fn {a, b=y, ...} => a")
	vd := prog.Decls[0].(*ast.ValDecl)
	fn, ok := vd.Bindings[0].Exp.(*ast.Fn)
	if !ok {
		t.Fatalf("value is %T, want *ast.Fn", vd.Bindings[0].Exp)
	}
	rp, ok := fn.Matches[0].Pat.(*ast.PatRecord)
	if !ok {
		t.Fatalf("pattern is %T, want *ast.PatRecord", fn.Matches[0].Pat)
	}
	if !rp.Ellipsis {
		t.Fatalf("got Ellipsis=false, want true")
	}
	if len(rp.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(rp.Fields))
	}
	if rp.Fields[0].Label != "a" {
		t.Fatalf("got field 0 label %q, want %q", rp.Fields[0].Label, "a")
	}
	if shorthand, ok := rp.Fields[0].Pat.(*ast.PatIdent); !ok || shorthand.Name != "a" {
		t.Fatalf("got shorthand pattern %#v, want PatIdent{a}", rp.Fields[0].Pat)
	}
	if rp.Fields[1].Label != "b" {
		t.Fatalf("got field 1 label %q, want %q", rp.Fields[1].Label, "b")
	}
	if explicit, ok := rp.Fields[1].Pat.(*ast.PatIdent); !ok || explicit.Name != "y" {
		t.Fatalf("got explicit pattern %#v, want PatIdent{y}", rp.Fields[1].Pat)
	}
}

func TestParseMutualRecursionTuplePattern(t *testing.T) {
	prog := parse(t, "val rec (isEven, isOdd) = (fn n => n, fn n => n)")
	vd := prog.Decls[0].(*ast.ValDecl)
	if !vd.Rec {
		t.Fatalf("got Rec=false, want true")
	}
	tup, ok := vd.Bindings[0].Pat.(*ast.PatTuple)
	if !ok {
		t.Fatalf("pattern is %T, want *ast.PatTuple", vd.Bindings[0].Pat)
	}
	if len(tup.Elems) != 2 {
		t.Fatalf("got %d elems, want 2", len(tup.Elems))
	}
	a, ok := tup.Elems[0].(*ast.PatIdent)
	if !ok || a.Name != "isEven" {
		t.Fatalf("got elem 0 %#v, want PatIdent{isEven}", tup.Elems[0])
	}
	b, ok := tup.Elems[1].(*ast.PatIdent)
	if !ok || b.Name != "isOdd" {
		t.Fatalf("got elem 1 %#v, want PatIdent{isOdd}", tup.Elems[1])
	}
}

func TestParseInfixPrecedenceAndAssociativity(t *testing.T) {
	// "*" binds tighter than "+": 1 + 2 * 3 should parse as 1 + (2 * 3).
	prog := parse(t, "1 + 2 * 3")
	vd := prog.Decls[0].(*ast.ValDecl)
	top, ok := vd.Bindings[0].Exp.(*ast.Infix)
	if !ok || top.Operator != "+" {
		t.Fatalf("got top %#v, want Infix{+}", vd.Bindings[0].Exp)
	}
	if _, ok := top.Left.(*ast.Literal); !ok {
		t.Fatalf("left operand is %T, want *ast.Literal", top.Left)
	}
	mul, ok := top.Right.(*ast.Infix)
	if !ok || mul.Operator != "*" {
		t.Fatalf("right operand is %#v, want Infix{*}", top.Right)
	}
}

func TestParseConsRightAssociative(t *testing.T) {
	// "1 :: 2 :: xs" should parse as "1 :: (2 :: xs)".
	prog := parse(t, "1 :: 2 :: xs")
	vd := prog.Decls[0].(*ast.ValDecl)
	outer, ok := vd.Bindings[0].Exp.(*ast.Infix)
	if !ok || outer.Operator != "::" {
		t.Fatalf("got outer %#v, want Infix{::}", vd.Bindings[0].Exp)
	}
	if _, ok := outer.Left.(*ast.Literal); !ok {
		t.Fatalf("outer left is %T, want *ast.Literal", outer.Left)
	}
	inner, ok := outer.Right.(*ast.Infix)
	if !ok || inner.Operator != "::" {
		t.Fatalf("outer right is %#v, want Infix{::}", outer.Right)
	}
}

func TestParseNegativeLiteral(t *testing.T) {
	prog := parse(t, "~7")
	vd := prog.Decls[0].(*ast.ValDecl)
	lit, ok := vd.Bindings[0].Exp.(*ast.Literal)
	if !ok {
		t.Fatalf("value is %T, want *ast.Literal", vd.Bindings[0].Exp)
	}
	if n, ok := lit.Value.(int64); !ok || n != -7 {
		t.Fatalf("got value %#v, want int64(-7)", lit.Value)
	}
}

func TestParseCaseExpression(t *testing.T) {
	prog := parse(t, "case xs of [] => 0 | x::rest => x")
	vd := prog.Decls[0].(*ast.ValDecl)
	c, ok := vd.Bindings[0].Exp.(*ast.Case)
	if !ok {
		t.Fatalf("value is %T, want *ast.Case", vd.Bindings[0].Exp)
	}
	if len(c.Matches) != 2 {
		t.Fatalf("got %d clauses, want 2", len(c.Matches))
	}
	if _, ok := c.Matches[0].Pat.(*ast.PatList); !ok {
		t.Fatalf("first clause pattern is %T, want *ast.PatList", c.Matches[0].Pat)
	}
	if _, ok := c.Matches[1].Pat.(*ast.PatCons); !ok {
		t.Fatalf("second clause pattern is %T, want *ast.PatCons", c.Matches[1].Pat)
	}
}

func TestParseQualifiedIdentApply(t *testing.T) {
	prog := parse(t, "List.map (fn x => x) xs")
	vd := prog.Decls[0].(*ast.ValDecl)
	outer, ok := vd.Bindings[0].Exp.(*ast.Apply)
	if !ok {
		t.Fatalf("value is %T, want *ast.Apply", vd.Bindings[0].Exp)
	}
	inner, ok := outer.Fn.(*ast.Apply)
	if !ok {
		t.Fatalf("outer.Fn is %T, want *ast.Apply", outer.Fn)
	}
	ident, ok := inner.Fn.(*ast.Ident)
	if !ok || ident.Name != "List.map" {
		t.Fatalf("got innermost fn %#v, want Ident{List.map}", inner.Fn)
	}
}

func TestParseOrderStepWithDesc(t *testing.T) {
	prog := parse(t, "from e in xs order e desc, e.id yield e")
	vd := prog.Decls[0].(*ast.ValDecl)
	from := vd.Bindings[0].Exp.(*ast.From)
	if len(from.Steps) != 1 || from.Steps[0].Kind != ast.StepOrder {
		t.Fatalf("got steps %#v, want one StepOrder", from.Steps)
	}
	items := from.Steps[0].OrderItems
	if len(items) != 2 {
		t.Fatalf("got %d order items, want 2", len(items))
	}
	if !items[0].Desc {
		t.Fatalf("got items[0].Desc=false, want true")
	}
	if items[1].Desc {
		t.Fatalf("got items[1].Desc=true, want false (default ascending)")
	}
}

func TestParseWhereStep(t *testing.T) {
	prog := parse(t, "from e in xs where e > 0 yield e")
	vd := prog.Decls[0].(*ast.ValDecl)
	from := vd.Bindings[0].Exp.(*ast.From)
	if len(from.Steps) != 1 || from.Steps[0].Kind != ast.StepWhere {
		t.Fatalf("got steps %#v, want one StepWhere", from.Steps)
	}
	if _, ok := from.Steps[0].Pred.(*ast.Infix); !ok {
		t.Fatalf("pred is %T, want *ast.Infix", from.Steps[0].Pred)
	}
}
