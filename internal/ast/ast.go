// Package ast defines the Vanilla abstract syntax tree: the Expression and
// Statement node hierarchies described in spec.md §3.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/vanilla/internal/token"
)

// Node is the common interface implemented by every AST node: it carries
// its own origin position for diagnostics and a debug string form.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Param is one entry of a function parameter list: a name and an optional
// default-value expression (spec.md §3, function definition).
type Param struct {
	Name    string
	Default Expression // nil if the parameter has no default
}

func (p Param) String() string {
	if p.Default != nil {
		return fmt.Sprintf("%s = %s", p.Name, p.Default.String())
	}
	return p.Name
}

func paramsString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
