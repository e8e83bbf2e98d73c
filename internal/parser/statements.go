package parser

import (
	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/token"
)

// parseStatement implements the `statement` production. The `function`
// keyword is tried as a statement (named function definition) before it is
// ever considered as a primary expression, per spec.md §9's preserved
// statement-first ordering.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.current().Type {
	case token.RETURN:
		return p.parseReturnStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FUNCTION:
		return p.parseFunctionDefStatement()
	default:
		return p.parseAssignmentOrExpressionStatement()
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.expect(token.RETURN)
	var value ast.Expression
	if p.cur.current().Type != token.SEMI {
		value = p.parseExpression()
	}
	p.expect(token.SEMI)
	return &ast.ReturnStatement{Token: tok, Value: value}
}

func (p *Parser) parseBlockStatement() ast.Statement {
	tok := p.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	for !p.failed() && p.cur.current().Type != token.RBRACE && p.cur.current().Type != token.EOF {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.expect(token.IF)
	stmt := &ast.IfStatement{Token: tok}

	cond := p.parseExpression()
	body := p.parseStatement()
	stmt.Branches = append(stmt.Branches, ast.IfBranch{Condition: cond, Body: body})

	for p.cur.current().Type == token.ELSEIF {
		p.cur.advance()
		cond := p.parseExpression()
		body := p.parseStatement()
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Condition: cond, Body: body})
	}

	if p.cur.current().Type == token.ELSE {
		p.cur.advance()
		stmt.Else = p.parseStatement()
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.expect(token.WHILE)
	cond := p.parseExpression()
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseFunctionDefStatement() ast.Statement {
	tok := p.expect(token.FUNCTION)
	nameTok := p.expect(token.IDENT)
	params := p.parseParamList()
	body := p.parseStatement()
	return &ast.FunctionDefStatement{Token: tok, Name: nameTok.Literal, Params: params, Body: body}
}

// parseAssignmentOrExpressionStatement implements:
//
//	assignment_or_expr_stmt := expr ('=' expr)? ';'
//
// The parser accepts any expression on the left of `=`; rejecting
// non-variable targets is the evaluator's job (spec.md §4.2, §4.5).
func (p *Parser) parseAssignmentOrExpressionStatement() ast.Statement {
	startTok := p.cur.current()
	expr := p.parseExpression()
	if p.failed() {
		return &ast.ExpressionStatement{Token: startTok, Expr: expr}
	}

	if p.cur.current().Type == token.ASSIGN {
		p.cur.advance()
		value := p.parseExpression()
		p.expect(token.SEMI)
		return &ast.AssignmentStatement{Token: startTok, Target: expr, Value: value}
	}

	p.expect(token.SEMI)
	return &ast.ExpressionStatement{Token: startTok, Expr: expr}
}

// parseParamList implements:
//
//	param_list := (ident ('=' expr)? (',' ident ('=' expr)?)*)?
func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for p.cur.current().Type != token.RPAREN {
		nameTok := p.expect(token.IDENT)
		if p.failed() {
			break
		}
		param := ast.Param{Name: nameTok.Literal}
		if p.cur.current().Type == token.ASSIGN {
			p.cur.advance()
			param.Default = p.parseExpression()
		}
		params = append(params, param)
		if p.cur.current().Type == token.COMMA {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}
