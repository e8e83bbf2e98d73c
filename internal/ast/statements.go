package ast

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/vanilla/internal/token"
)

// ExpressionStatement evaluates Expr and discards the result.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()     {}
func (s *ExpressionStatement) Pos() token.Position { return s.Token.Pos }
func (s *ExpressionStatement) String() string {
	if s.Expr == nil {
		return ";"
	}
	return s.Expr.String() + ";"
}

// BlockStatement is an ordered sequence of statements delimited by `{ }`.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStatement) statementNode()     {}
func (s *BlockStatement) Pos() token.Position { return s.Token.Pos }
func (s *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, stmt := range s.Statements {
		out.WriteString("  " + stmt.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStatement propagates Value as a non-error return control signal
// (spec.md §3, §4.5).
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStatement) statementNode()     {}
func (s *ReturnStatement) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value.String())
}

// IfBranch is one (condition, body) pair of an if/elseif chain.
type IfBranch struct {
	Condition Expression
	Body      Statement
}

// IfStatement is `if cond body (elseif cond body)* (else body)?`.
type IfStatement struct {
	Token    token.Token
	Branches []IfBranch // first entry is the `if`, rest are `elseif`
	Else     Statement  // nil if no else clause
}

func (s *IfStatement) statementNode()     {}
func (s *IfStatement) Pos() token.Position { return s.Token.Pos }
func (s *IfStatement) String() string {
	var out bytes.Buffer
	for i, b := range s.Branches {
		if i == 0 {
			out.WriteString("if ")
		} else {
			out.WriteString(" elseif ")
		}
		out.WriteString(b.Condition.String())
		out.WriteString(" ")
		out.WriteString(b.Body.String())
	}
	if s.Else != nil {
		out.WriteString(" else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// WhileStatement is `while cond body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileStatement) statementNode()     {}
func (s *WhileStatement) Pos() token.Position { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while %s %s", s.Condition.String(), s.Body.String())
}

// FunctionDefStatement binds a function value into the current scope under
// Name (spec.md §3, function definition statement).
type FunctionDefStatement struct {
	Token  token.Token
	Name   string
	Params []Param
	Body   Statement
}

func (s *FunctionDefStatement) statementNode()     {}
func (s *FunctionDefStatement) Pos() token.Position { return s.Token.Pos }
func (s *FunctionDefStatement) String() string {
	return fmt.Sprintf("function %s(%s) %s", s.Name, paramsString(s.Params), s.Body.String())
}

// AssignmentStatement is `target = value;`. The parser accepts any
// expression as Target; the evaluator rejects anything but a variable
// reference (spec.md §4.2, §4.5, §9).
type AssignmentStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (s *AssignmentStatement) statementNode()     {}
func (s *AssignmentStatement) Pos() token.Position { return s.Token.Pos }
func (s *AssignmentStatement) String() string {
	return fmt.Sprintf("%s = %s;", s.Target.String(), s.Value.String())
}
