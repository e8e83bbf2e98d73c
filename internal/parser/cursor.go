package parser

import (
	"github.com/cwbudde/vanilla/internal/lexer"
	"github.com/cwbudde/vanilla/internal/token"
)

// tokenCursor is the random-access "token buffer" of spec.md §2.4: it
// drains the lexer into a growable slice and exposes accept/expect
// primitives over it, grounded on the teacher's parser.TokenCursor.
type tokenCursor struct {
	lex    *lexer.Lexer
	tokens []token.Token
	index  int
	err    error // first scan error encountered while filling the buffer
}

func newTokenCursor(l *lexer.Lexer) *tokenCursor {
	c := &tokenCursor{lex: l, tokens: make([]token.Token, 0, 32)}
	c.fillTo(0)
	return c
}

// fillTo ensures tokens[i] is populated, scanning further tokens from the
// lexer as needed. Scanning stops permanently at the first error or EOF.
func (c *tokenCursor) fillTo(i int) {
	for len(c.tokens) <= i {
		if c.err != nil {
			return
		}
		if n := len(c.tokens); n > 0 && c.tokens[n-1].Type == token.EOF {
			c.tokens = append(c.tokens, c.tokens[n-1])
			continue
		}
		tok, err := c.lex.Next()
		if err != nil {
			c.err = err
			return
		}
		c.tokens = append(c.tokens, tok)
	}
}

// current returns the token at the cursor's position.
func (c *tokenCursor) current() token.Token {
	c.fillTo(c.index)
	if c.index < len(c.tokens) {
		return c.tokens[c.index]
	}
	return token.Token{Type: token.EOF}
}

// peek returns the token n positions ahead of current (peek(0) == current).
func (c *tokenCursor) peek(n int) token.Token {
	idx := c.index + n
	c.fillTo(idx)
	if idx < len(c.tokens) {
		return c.tokens[idx]
	}
	return token.Token{Type: token.EOF}
}

// advance moves the cursor forward one token and returns the token it was
// sitting on before the move.
func (c *tokenCursor) advance() token.Token {
	tok := c.current()
	c.index++
	return tok
}

// accept advances and returns true if the current token matches typ.
func (c *tokenCursor) accept(typ token.Type) bool {
	if c.current().Type == typ {
		c.advance()
		return true
	}
	return false
}
