package lexer_test

import (
	"testing"

	"classcify/internal/lexer"
	"classcify/internal/token"
)

func collect(src string) []token.Token {
	lx := lexer.New([]byte(src))
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestKeywordsAndTypes(t *testing.T) {
	toks := collect("class method init super this new vardec while break if return println call true false Int Boolean Void")
	want := []token.Type{
		token.CLASS, token.METHOD, token.INIT, token.SUPER, token.THIS, token.NEW,
		token.VARDEC, token.WHILE, token.BREAK, token.IF, token.RETURN, token.PRINTLN,
		token.CALL, token.TRUE, token.FALSE, token.INT, token.BOOLEAN, token.VOID, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestIdentifierNotKeyword(t *testing.T) {
	toks := collect("classify")
	if toks[0].Type != token.IDENTIFIER || toks[0].Lexeme != "classify" {
		t.Fatalf("got %+v, want IDENTIFIER classify", toks[0])
	}
}

func TestPunctuationAndOperators(t *testing.T) {
	toks := collect("(){}.+-*/<;")
	want := []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.DOT,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.LESS, token.SEMI, token.EOF,
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestEqualsVsSingleEquals(t *testing.T) {
	toks := collect("= ==")
	if toks[0].Type != token.SINGLE_EQUAL {
		t.Errorf("got %s, want SINGLE_EQUAL", toks[0].Type)
	}
	if toks[1].Type != token.EQUALS {
		t.Errorf("got %s, want EQUALS", toks[1].Type)
	}
}

func TestIntLiteral(t *testing.T) {
	toks := collect("1234")
	if toks[0].Type != token.INT_LITERAL || toks[0].Lexeme != "1234" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestUnknownByte(t *testing.T) {
	toks := collect("@")
	if toks[0].Type != token.UNKNOWN {
		t.Fatalf("got %s, want UNKNOWN", toks[0].Type)
	}
}

func TestWhitespaceSkipped(t *testing.T) {
	toks := collect("  \t\n  x  \r\n  y ")
	if toks[0].Lexeme != "x" || toks[1].Lexeme != "y" {
		t.Fatalf("got %+v", toks[:2])
	}
}

// Totality: Next always makes progress and eventually reports EOF,
// even for input consisting entirely of unrecognized bytes.
func TestTotality(t *testing.T) {
	lx := lexer.New([]byte("$$$###"))
	count := 0
	for lx.PeekHasMore() {
		lx.Next()
		count++
		if count > 100 {
			t.Fatal("lexer did not make progress")
		}
	}
	if lx.Next().Type != token.EOF {
		t.Fatal("expected EOF after buffer exhausted")
	}
}

func TestEmptyInput(t *testing.T) {
	lx := lexer.New([]byte(""))
	if lx.PeekHasMore() {
		t.Fatal("empty input must report no more tokens")
	}
	if lx.Next().Type != token.EOF {
		t.Fatal("expected EOF on empty input")
	}
}
