package pipeline

import (
	"testing"

	"github.com/sml-lang/interp/internal/eval"
)

// line renders a Binding the way the REPL prints it: "val name = value : type".
func line(b Binding) string {
	return "val " + b.Name + " = " + eval.FormatTyped(b.Value, b.Type) + " : " + b.Type.Moniker()
}

func mustEval(t *testing.T, src string) []Result {
	t.Helper()
	p := New(nil)
	results, err := p.Eval(src, "test.sml")
	if err != nil {
		t.Fatalf("Eval(%q) returned error: %v", src, err)
	}
	return results
}

func onlyBinding(t *testing.T, results []Result) Binding {
	t.Helper()
	if len(results) != 1 || len(results[0].Bindings) != 1 {
		t.Fatalf("expected exactly one declaration with one binding, got %+v", results)
	}
	return results[0].Bindings[0]
}

func TestArithmeticBindsIt(t *testing.T) {
	b := onlyBinding(t, mustEval(t, "1 + 2;"))
	if got, want := line(b), "val it = 3 : int"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValListBinding(t *testing.T) {
	b := onlyBinding(t, mustEval(t, "val xs = [1,2,3];"))
	if b.Name != "xs" {
		t.Fatalf("expected binding named xs, got %q", b.Name)
	}
	if got, want := line(b), "val xs = [1, 2, 3] : int list"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLetAndBinding(t *testing.T) {
	b := onlyBinding(t, mustEval(t, "let val x = 3 and y = 4 in x + y end;"))
	if got, want := line(b), "val it = 7 : int"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRecFactorialPersistsAcrossDeclarations(t *testing.T) {
	results := mustEval(t, "val rec fact = fn 0 => 1 | n => n * fact (n - 1); fact 5;")
	if len(results) != 2 {
		t.Fatalf("expected two declarations, got %d", len(results))
	}

	fact := onlyBinding(t, results[:1])
	if got, want := line(fact), "val fact = fn : int -> int"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	it := onlyBinding(t, results[1:])
	if got, want := line(it), "val it = 120 : int"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestConsPatternFunctionApplication(t *testing.T) {
	b := onlyBinding(t, mustEval(t, "(fn (x::xs) => x) [10,20,30];"))
	if got, want := line(b), "val it = 10 : int"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromGroupComputeYield(t *testing.T) {
	src := `from e in [{id=1,dept=10},{id=2,dept=10},{id=3,dept=20}]
	         group dept compute c = count yield {dept, c};`
	b := onlyBinding(t, mustEval(t, src))
	if got, want := b.Type.Moniker(), "{c:int, dept:int} list"; got != want {
		t.Fatalf("got type %q, want %q", got, want)
	}

	lv, ok := b.Value.(eval.ListValue)
	if !ok {
		t.Fatalf("expected a ListValue, got %T", b.Value)
	}
	if len(lv.Elems) != 2 {
		t.Fatalf("expected two groups (dept=10, dept=20), got %d", len(lv.Elems))
	}
}

func TestMutualRecursionViaTupleBinding(t *testing.T) {
	src := `val rec (even, odd) = (fn 0 => true | n => odd (n-1), fn 0 => false | n => even (n-1));
	         even 4; odd 3; even 7;`
	results := mustEval(t, src)
	if len(results) != 4 {
		t.Fatalf("expected four declarations, got %d", len(results))
	}
	if got := onlyBinding(t, results[1:2]).Value.String(); got != "true" {
		t.Fatalf("even 4: got %q, want true", got)
	}
	if got := onlyBinding(t, results[2:3]).Value.String(); got != "true" {
		t.Fatalf("odd 3: got %q, want true", got)
	}
	if got := onlyBinding(t, results[3:4]).Value.String(); got != "false" {
		t.Fatalf("even 7: got %q, want false", got)
	}
}

func TestResetClearsBindings(t *testing.T) {
	p := New(nil)
	if _, err := p.Eval("val x = 5;", "test.sml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p = p.Reset()
	if _, err := p.Eval("x;", "test.sml"); err == nil {
		t.Fatalf("expected an unbound-identifier error after Reset, got none")
	}
}
