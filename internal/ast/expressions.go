package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/vanilla/internal/token"
)

// VariableExpression is a reference to a named variable (spec.md §3,
// nullary expression: variable reference).
type VariableExpression struct {
	Token token.Token
	Name  string
}

func (e *VariableExpression) expressionNode()      {}
func (e *VariableExpression) Pos() token.Position  { return e.Token.Pos }
func (e *VariableExpression) String() string       { return e.Name }

// IntegerLiteral is an arbitrary-precision integer literal. Value is kept
// as its original lexeme plus base; the parser/interpreter resolves it to
// a big.Int at evaluation time so scanning stays allocation-light.
type IntegerLiteral struct {
	Token token.Token
	Value string // raw digits, without base prefix
	Base  token.IntBase
}

func (e *IntegerLiteral) expressionNode()     {}
func (e *IntegerLiteral) Pos() token.Position { return e.Token.Pos }
func (e *IntegerLiteral) String() string      { return e.Token.Literal }

// FloatLiteral is an arbitrary-precision real literal.
type FloatLiteral struct {
	Token token.Token
	Value string
}

func (e *FloatLiteral) expressionNode()     {}
func (e *FloatLiteral) Pos() token.Position { return e.Token.Pos }
func (e *FloatLiteral) String() string      { return e.Token.Literal }

// StringLiteral is a double-quoted string literal, with escapes already
// processed into Value (spec.md §4.2, escape processing).
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return fmt.Sprintf("%q", e.Value) }

// BoolLiteral is one of the three tri-state boolean literals.
type BoolLiteral struct {
	Token token.Token
	Kind  token.Type // token.TRUE, token.FALSE, or token.INDETERMINATE
}

func (e *BoolLiteral) expressionNode()     {}
func (e *BoolLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BoolLiteral) String() string      { return e.Kind.String() }

// ArrayLiteral is an ordered sequence of element expressions.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()     {}
func (e *ArrayLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// UnaryExpression is a prefix negation or absolute-value operation.
type UnaryExpression struct {
	Token    token.Token
	Operator string // "-" (negate) or "+" (absolute value)
	Operand  Expression
}

func (e *UnaryExpression) expressionNode()     {}
func (e *UnaryExpression) Pos() token.Position { return e.Token.Pos }
func (e *UnaryExpression) String() string {
	return fmt.Sprintf("(%s%s)", e.Operator, e.Operand.String())
}

// BinaryExpression covers arithmetic, relational, and equality operators.
type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpression) expressionNode()     {}
func (e *BinaryExpression) Pos() token.Position { return e.Token.Pos }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// ConcatExpression is the `~` string-concatenation operator.
type ConcatExpression struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (e *ConcatExpression) expressionNode()     {}
func (e *ConcatExpression) Pos() token.Position { return e.Token.Pos }
func (e *ConcatExpression) String() string {
	return fmt.Sprintf("(%s ~ %s)", e.Left.String(), e.Right.String())
}

// CallExpression applies Callee to Args, in that evaluation order reversed:
// per spec.md §4.5, arguments are evaluated before the callee.
type CallExpression struct {
	Token  token.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) expressionNode()     {}
func (e *CallExpression) Pos() token.Position { return e.Token.Pos }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(parts, ", "))
}

// FunctionExpression is an anonymous or named function definition used as
// an expression (spec.md §4.2 fn_def_expr).
type FunctionExpression struct {
	Token  token.Token
	Name   string // empty for anonymous functions
	Params []Param
	Body   Statement
}

func (e *FunctionExpression) expressionNode()     {}
func (e *FunctionExpression) Pos() token.Position { return e.Token.Pos }
func (e *FunctionExpression) String() string {
	name := e.Name
	return fmt.Sprintf("function %s(%s) %s", name, paramsString(e.Params), e.Body.String())
}

// NativeFunctionExpression declares a dynamically loaded native function
// (spec.md §4.2 native_fn_def_expr).
type NativeFunctionExpression struct {
	Token      token.Token
	Library    string
	Symbol     string
	ReturnType string
	ArgTypes   []string
}

func (e *NativeFunctionExpression) expressionNode()     {}
func (e *NativeFunctionExpression) Pos() token.Position { return e.Token.Pos }
func (e *NativeFunctionExpression) String() string {
	args := make([]string, len(e.ArgTypes))
	for i, a := range e.ArgTypes {
		args[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf("native %q from %q declared %q(%s)", e.Symbol, e.Library, e.ReturnType, strings.Join(args, ", "))
}

// ConditionalExpression is the ternary `cond ? then : else` operator.
type ConditionalExpression struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *ConditionalExpression) expressionNode()     {}
func (e *ConditionalExpression) Pos() token.Position { return e.Token.Pos }
func (e *ConditionalExpression) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Condition.String(), e.Then.String(), e.Else.String())
}

// SubscriptExpression is `container[index]`.
type SubscriptExpression struct {
	Token     token.Token
	Container Expression
	Index     Expression
}

func (e *SubscriptExpression) expressionNode()     {}
func (e *SubscriptExpression) Pos() token.Position { return e.Token.Pos }
func (e *SubscriptExpression) String() string {
	return fmt.Sprintf("%s[%s]", e.Container.String(), e.Index.String())
}

// MemberExpression is `left.name` element selection.
type MemberExpression struct {
	Token token.Token
	Left  Expression
	Name  string
}

func (e *MemberExpression) expressionNode()     {}
func (e *MemberExpression) Pos() token.Position { return e.Token.Pos }
func (e *MemberExpression) String() string {
	return fmt.Sprintf("%s.%s", e.Left.String(), e.Name)
}
