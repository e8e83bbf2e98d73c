package lexer

import (
	"testing"

	"github.com/cwbudde/vanilla/internal/token"
)

func mustNext(t *testing.T, l *Lexer) token.Token {
	t.Helper()
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	return tok
}

func TestIntegerLiteralBases(t *testing.T) {
	tests := []struct {
		input        string
		expectedLit  string
		expectedBase token.IntBase
	}{
		{"123", "123", token.Base10},
		{"0", "0", token.Base10},
		{"0xFF", "0xFF", token.Base16},
		{"0X10", "0X10", token.Base16},
		{"0b1010", "0b1010", token.Base2},
		{"0B0", "0B0", token.Base2},
		{"017", "017", token.Base8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := mustNext(t, l)
			if tok.Type != token.INT {
				t.Fatalf("type wrong: expected INT, got %s", tok.Type)
			}
			if tok.Literal != tt.expectedLit {
				t.Fatalf("literal wrong: expected %q, got %q", tt.expectedLit, tok.Literal)
			}
			if tok.IntBase != tt.expectedBase {
				t.Fatalf("base wrong: expected %d, got %d", tt.expectedBase, tok.IntBase)
			}
		})
	}
}

func TestFloatLiterals(t *testing.T) {
	inputs := []string{"123.45", "0.5", "3.14"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			l := New(in)
			tok := mustNext(t, l)
			if tok.Type != token.FLOAT {
				t.Fatalf("type wrong: expected FLOAT, got %s", tok.Type)
			}
			if tok.Literal != in {
				t.Fatalf("literal wrong: expected %q, got %q", in, tok.Literal)
			}
		})
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := mustNext(t, l)
	if tok.Type != token.STRING {
		t.Fatalf("type wrong: expected STRING, got %s", tok.Type)
	}
	if tok.Literal != `hello\nworld` {
		t.Fatalf("literal wrong (raw, unescaped): got %q", tok.Literal)
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := `+ - * / ~ ( ) { } [ ] , ; ? : < <= > >= == != = function`
	expected := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.TILDE,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.SEMI,
		token.QUESTION, token.COLON, token.LT, token.LE, token.GT, token.GE,
		token.EQ, token.NEQ, token.ASSIGN, token.FUNCTION, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := mustNext(t, l)
		if tok.Type != want {
			t.Fatalf("token[%d]: expected %s, got %s (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "true false indeterminate lambda return if else elseif for while native from declared foo"
	expected := []token.Type{
		token.TRUE, token.FALSE, token.INDETERMINATE, token.LAMBDA, token.RETURN,
		token.IF, token.ELSE, token.ELSEIF, token.FOR, token.WHILE, token.NATIVE,
		token.FROM, token.DECLARED, token.IDENT, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := mustNext(t, l)
		if tok.Type != want {
			t.Fatalf("token[%d]: expected %s, got %s (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestBOMIsStripped(t *testing.T) {
	l := New("\xef\xbb\xbfx")
	tok := mustNext(t, l)
	if tok.Type != token.IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT x after BOM strip, got %s %q", tok.Type, tok.Literal)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok := mustNext(t, l)
		if tok.Type != token.EOF {
			t.Fatalf("call %d: expected repeated EOF, got %s", i, tok.Type)
		}
	}
}

func TestIllegalCharacterReportsPosition(t *testing.T) {
	l := New("x = @;")
	for {
		tok, err := l.Next()
		if err != nil {
			se, ok := err.(*ScanError)
			if !ok {
				t.Fatalf("expected *ScanError, got %T", err)
			}
			if se.Ch != '@' {
				t.Fatalf("expected offending rune '@', got %q", se.Ch)
			}
			if se.Pos.Column != 5 {
				t.Fatalf("expected column 5, got %d", se.Pos.Column)
			}
			return
		}
		if tok.Type == token.EOF {
			t.Fatal("expected a scan error before EOF")
		}
	}
}

func TestColumnCountingIsRuneAware(t *testing.T) {
	// "café" string literal: the 'é' is a single rune despite being multiple
	// UTF-8 bytes, so the following '=' must land at column 8, not 9.
	l := New(`"café" = 1`)
	tok := mustNext(t, l)
	if tok.Literal != "café" {
		t.Fatalf("expected string lexeme 'café', got %q", tok.Literal)
	}
	eq := mustNext(t, l)
	if eq.Type != token.ASSIGN || eq.Pos.Column != 8 {
		t.Fatalf("expected ASSIGN at column 8, got %s at column %d", eq.Type, eq.Pos.Column)
	}
}
