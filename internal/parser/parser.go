// Package parser implements the Vanilla recursive-descent parser: it
// consumes a token.Token stream (via a tokenCursor) and produces an
// internal/ast AST, or fails with a VanillaError tagged by token position
// (spec.md §4.2).
package parser

import (
	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/lexer"
	"github.com/cwbudde/vanilla/internal/token"
)

// Parser is a recursive-descent parser over a token cursor.
type Parser struct {
	cur *tokenCursor
	err *errors.VanillaError
}

// New creates a Parser that scans tokens from l on demand.
func New(l *lexer.Lexer) *Parser {
	return &Parser{cur: newTokenCursor(l)}
}

// Err returns the first parse error encountered, or nil.
func (p *Parser) Err() *errors.VanillaError {
	return p.err
}

func (p *Parser) fail(pos token.Position, kind errors.Kind, format string, args ...any) {
	if p.err == nil {
		p.err = errors.New(kind, errors.StageParsing, pos, format, args...)
	}
}

func (p *Parser) failed() bool {
	return p.err != nil || p.cur.err != nil
}

// ParseProgram parses the full token stream into a Program. On the first
// error, parsing stops and Err returns the failure.
func (p *Parser) ParseProgram() (*ast.Program, *errors.VanillaError) {
	prog := &ast.Program{}
	for !p.failed() && p.cur.current().Type != token.EOF {
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	if p.cur.err != nil && p.err == nil {
		p.fail(p.cur.current().Pos, errors.KindInvalidToken, "%s", p.cur.err.Error())
	}
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *Parser) expect(typ token.Type) token.Token {
	tok := p.cur.current()
	if tok.Type != typ {
		p.fail(tok.Pos, errors.KindUnexpectedToken, "expected %s, got %s", typ, tok.Type)
		return tok
	}
	return p.cur.advance()
}
