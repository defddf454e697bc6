package lexer

import "testing"

func TestTokenizeSimpleArithmetic(t *testing.T) {
	tokens, err := Tokenize("1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []TokenType{NUMBER, PLUS, NUMBER, MULTIPLY, NUMBER, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: expected %s, got %s", i, tt, tokens[i].Type)
		}
	}
}

func TestTokenizeVariablesAndContext(t *testing.T) {
	tokens, err := Tokenize("$gross - @fxRate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tokens[0].Type != VARIABLE || tokens[0].Value != "gross" {
		t.Fatalf("expected VARIABLE(gross), got %v", tokens[0])
	}
	if tokens[2].Type != CONTEXT_VAR || tokens[2].Value != "fxRate" {
		t.Fatalf("expected CONTEXT_VAR(fxRate), got %v", tokens[2])
	}
}

func TestTokenizeEmptyVariableNameIsError(t *testing.T) {
	if _, err := Tokenize("$"); err == nil {
		t.Fatal("expected error for empty variable name")
	}
	if _, err := Tokenize("@"); err == nil {
		t.Fatal("expected error for empty context variable name")
	}
}

func TestTokenizeString(t *testing.T) {
	tokens, err := Tokenize(`"hello\nworld" + 'it''s'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Type != STRING || tokens[0].Value != "hello\nworld" {
		t.Fatalf("unexpected string token: %v", tokens[0])
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	if _, err := Tokenize(`"no closing quote`); err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestTokenizeNumberSuffixes(t *testing.T) {
	cases := []struct {
		input string
		kind  NumberKind
	}{
		{"1.5", NumberDecimal},
		{"1.5d", NumberDecimal},
		{"1.5D", NumberDecimal},
		{"1.5f", NumberFloat},
		{"1.5F", NumberFloat},
		{"1e10", NumberFloat},
		{"1.5e-3", NumberFloat},
	}

	for _, c := range cases {
		tokens, err := Tokenize(c.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.input, err)
		}
		if tokens[0].Kind != c.kind {
			t.Errorf("%s: expected kind %v, got %v", c.input, c.kind, tokens[0].Kind)
		}
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	tokens, err := Tokenize("a == b != c <= d >= e && f || !g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{
		IDENTIFIER, EQUAL, IDENTIFIER, NOT_EQUAL, IDENTIFIER, LESS_EQUAL,
		IDENTIFIER, GREATER_EQUAL, IDENTIFIER, AND, IDENTIFIER, OR, NOT, IDENTIFIER, EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: expected %s, got %s", i, tt, tokens[i].Type)
		}
	}
}

func TestTokenizeBareOperatorsAreErrors(t *testing.T) {
	for _, input := range []string{"a = b", "a & b", "a | b", "a ! b"} {
		if _, err := Tokenize(input); err == nil && input != "a ! b" {
			t.Errorf("%q: expected syntax error", input)
		}
	}
}

func TestTokenizeReservedKeywords(t *testing.T) {
	tokens, err := Tokenize("true AND false OR NOT null")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{BOOLEAN, AND, BOOLEAN, OR, NOT, NULL, EOF}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: expected %s, got %s", i, tt, tokens[i].Type)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("1 +\n  2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The '2' lands on line 2, column 3.
	num2 := tokens[2]
	if num2.Line != 2 || num2.Column != 3 {
		t.Errorf("expected 2:3, got %d:%d", num2.Line, num2.Column)
	}
}
