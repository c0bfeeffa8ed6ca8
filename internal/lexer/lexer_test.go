package lexer

import "testing"

func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	l := New([]byte(src), "test")
	var out []TokenType
	for _, tok := range l.TokenizeAll() {
		out = append(out, tok.Type)
	}
	return out
}

func TestLexSimpleArithmetic(t *testing.T) {
	types := tokenTypes(t, "1 + 2")
	want := []TokenType{INT, OPERATOR, INT, EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("at %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestLexValRecFactorial(t *testing.T) {
	src := "val rec fact = fn 0 => 1 | n => n * fact (n - 1)"
	l := New([]byte(src), "test")
	toks := l.TokenizeAll()
	if toks[0].Type != VAL || toks[1].Type != REC {
		t.Fatalf("expected VAL REC prefix, got %v %v", toks[0], toks[1])
	}
	foundArrow := false
	for _, tok := range toks {
		if tok.Type == OPERATOR && tok.Literal == "=>" {
			foundArrow = true
		}
	}
	if !foundArrow {
		t.Fatalf("expected a \"=>\" operator token among %v", toks)
	}
}

func TestLexNegativeLiteral(t *testing.T) {
	l := New([]byte("~7"), "test")
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "-7" {
		t.Fatalf("expected INT -7, got %v", tok)
	}
}

func TestLexQualifiedIdent(t *testing.T) {
	l := New([]byte("List.map"), "test")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "List.map" {
		t.Fatalf("expected IDENT List.map, got %v", tok)
	}
}

func TestLexStringAndChar(t *testing.T) {
	l := New([]byte(`"abc" #"x"`), "test")
	s := l.NextToken()
	if s.Type != STRING || s.Literal != "abc" {
		t.Fatalf("expected STRING abc, got %v", s)
	}
	c := l.NextToken()
	if c.Type != CHAR || c.Literal != "x" {
		t.Fatalf("expected CHAR x, got %v", c)
	}
}

func TestLexFromQueryKeywords(t *testing.T) {
	types := tokenTypes(t, "from e in xs group dept compute c = count yield e")
	want := []TokenType{FROM, IDENT, IN, IDENT, GROUP, IDENT, COMPUTE, IDENT, OPERATOR, IDENT, YIELD, IDENT, EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("at %d: got %s, want %s", i, types[i], want[i])
		}
	}
}
