package parser

import (
	"strings"

	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/token"
)

// parseExpression implements `expr := ternary`.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseTernary()
}

// parseTernary implements `ternary := equality ('?' ternary ':' ternary)?`.
// The ternary is right-associative: the else-branch recurses into
// parseTernary, not parseExpression, matching the grammar exactly.
func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseEquality()
	if p.cur.current().Type != token.QUESTION {
		return cond
	}
	tok := p.cur.advance()
	thenExpr := p.parseTernary()
	p.expect(token.COLON)
	elseExpr := p.parseTernary()
	return &ast.ConditionalExpression{Token: tok, Condition: cond, Then: thenExpr, Else: elseExpr}
}

// parseEquality implements `equality := relational (('=='|'!=') equality)?`.
// Right-associative by construction (recurses into the same rule).
func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	switch p.cur.current().Type {
	case token.EQ, token.NEQ:
		tok := p.cur.advance()
		right := p.parseEquality()
		return &ast.BinaryExpression{Token: tok, Operator: tok.Type.String(), Left: left, Right: right}
	}
	return left
}

// parseRelational implements `relational := additive (('<'|'<='|'>'|'>=') relational)?`.
func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	switch p.cur.current().Type {
	case token.LT, token.LE, token.GT, token.GE:
		tok := p.cur.advance()
		right := p.parseRelational()
		return &ast.BinaryExpression{Token: tok, Operator: tok.Type.String(), Left: left, Right: right}
	}
	return left
}

// parseAdditive implements `additive := multiplicative (('+'|'-'|'~') additive)?`.
// Right-associative: `a - b - c` parses as `a - (b - c)` per spec.md §9.
func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	switch p.cur.current().Type {
	case token.PLUS, token.MINUS:
		tok := p.cur.advance()
		right := p.parseAdditive()
		return &ast.BinaryExpression{Token: tok, Operator: tok.Type.String(), Left: left, Right: right}
	case token.TILDE:
		tok := p.cur.advance()
		right := p.parseAdditive()
		return &ast.ConcatExpression{Token: tok, Left: left, Right: right}
	}
	return left
}

// parseMultiplicative implements `multiplicative := prefix (('*'|'/') multiplicative)?`.
func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parsePrefix()
	switch p.cur.current().Type {
	case token.STAR, token.SLASH:
		tok := p.cur.advance()
		right := p.parseMultiplicative()
		return &ast.BinaryExpression{Token: tok, Operator: tok.Type.String(), Left: left, Right: right}
	}
	return left
}

// parsePrefix implements `prefix := ('-'|'+') prefix | postfix`.
func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.current().Type {
	case token.MINUS:
		tok := p.cur.advance()
		operand := p.parsePrefix()
		return &ast.UnaryExpression{Token: tok, Operator: "-", Operand: operand}
	case token.PLUS:
		tok := p.cur.advance()
		operand := p.parsePrefix()
		return &ast.UnaryExpression{Token: tok, Operator: "+", Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix implements `postfix := primary (call | subscript | member)*`.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur.current().Type {
		case token.LPAREN:
			expr = p.parseCall(expr)
		case token.LBRACKET:
			expr = p.parseSubscript(expr)
		case token.DOT:
			expr = p.parseMember(expr)
		default:
			return expr
		}
		if p.failed() {
			return expr
		}
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.expect(token.LPAREN)
	var args []ast.Expression
	for p.cur.current().Type != token.RPAREN {
		args = append(args, p.parseExpression())
		if p.cur.current().Type == token.COMMA {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseSubscript(container ast.Expression) ast.Expression {
	tok := p.expect(token.LBRACKET)
	index := p.parseExpression()
	p.expect(token.RBRACKET)
	return &ast.SubscriptExpression{Token: tok, Container: container, Index: index}
}

func (p *Parser) parseMember(left ast.Expression) ast.Expression {
	tok := p.expect(token.DOT)
	nameTok := p.expect(token.IDENT)
	return &ast.MemberExpression{Token: tok, Left: left, Name: nameTok.Literal}
}

// parsePrimary implements:
//
//	primary := literal | ident | '(' expr ')' | fn_def_expr
//	         | native_fn_def_expr | array_expr
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur.current()

	switch tok.Type {
	case token.INT:
		p.cur.advance()
		return &ast.IntegerLiteral{Token: tok, Value: stripIntPrefix(tok.Literal, tok.IntBase), Base: tok.IntBase}
	case token.FLOAT:
		p.cur.advance()
		return &ast.FloatLiteral{Token: tok, Value: tok.Literal}
	case token.STRING:
		p.cur.advance()
		value, ok := processEscapes(tok.Literal)
		if !ok {
			p.fail(tok.Pos, errors.KindInvalidEscape, "invalid escape sequence in string literal")
			return &ast.StringLiteral{Token: tok, Value: tok.Literal}
		}
		return &ast.StringLiteral{Token: tok, Value: value}
	case token.TRUE, token.FALSE, token.INDETERMINATE:
		p.cur.advance()
		return &ast.BoolLiteral{Token: tok, Kind: tok.Type}
	case token.IDENT:
		p.cur.advance()
		return &ast.VariableExpression{Token: tok, Name: tok.Literal}
	case token.LPAREN:
		p.cur.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayExpr()
	case token.FUNCTION:
		return p.parseFunctionExpr()
	case token.NATIVE:
		return p.parseNativeFunctionExpr()
	}

	p.fail(tok.Pos, errors.KindExpectedPrimary, "expected primary expression, got %s", tok.Type)
	return &ast.VariableExpression{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseArrayExpr() ast.Expression {
	tok := p.expect(token.LBRACKET)
	lit := &ast.ArrayLiteral{Token: tok}
	for p.cur.current().Type != token.RBRACKET {
		lit.Elements = append(lit.Elements, p.parseExpression())
		if p.cur.current().Type == token.COMMA {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseFunctionExpr() ast.Expression {
	tok := p.expect(token.FUNCTION)
	name := ""
	if p.cur.current().Type == token.IDENT {
		name = p.cur.advance().Literal
	}
	params := p.parseParamList()
	body := p.parseStatement()
	return &ast.FunctionExpression{Token: tok, Name: name, Params: params, Body: body}
}

// parseNativeFunctionExpr implements:
//
//	native_fn_def_expr := 'native' STRING 'from' STRING 'declared' STRING
//	                       '(' (STRING (',' STRING)*)? ')'
func (p *Parser) parseNativeFunctionExpr() ast.Expression {
	tok := p.expect(token.NATIVE)
	symbol := p.expect(token.STRING)
	p.expect(token.FROM)
	library := p.expect(token.STRING)
	p.expect(token.DECLARED)
	retType := p.expect(token.STRING)

	p.expect(token.LPAREN)
	var argTypes []string
	for p.cur.current().Type != token.RPAREN {
		argTok := p.expect(token.STRING)
		argTypes = append(argTypes, argTok.Literal)
		if p.cur.current().Type == token.COMMA {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	return &ast.NativeFunctionExpression{
		Token:      tok,
		Library:    library.Literal,
		Symbol:     symbol.Literal,
		ReturnType: retType.Literal,
		ArgTypes:   argTypes,
	}
}

func stripIntPrefix(lit string, base token.IntBase) string {
	switch base {
	case token.Base16:
		return strings.TrimPrefix(strings.TrimPrefix(lit, "0x"), "0X")
	case token.Base2:
		return strings.TrimPrefix(strings.TrimPrefix(lit, "0b"), "0B")
	case token.Base8:
		return lit // keep leading 0 for octal since digits alone are ambiguous with base 10 "0"
	default:
		return lit
	}
}

// processEscapes implements spec.md §4.2's escape processing: \n, \t, \\,
// \" map to their single-character meaning; anything else fails.
func processEscapes(raw string) (string, bool) {
	var sb strings.Builder
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '\\' {
			sb.WriteRune(ch)
			continue
		}
		i++
		if i >= len(runes) {
			return "", false
		}
		switch runes[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		default:
			return "", false
		}
	}
	return sb.String(), true
}
