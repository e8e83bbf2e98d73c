// Package xmlprinter renders a Vanilla AST as indented XML, an
// out-of-scope collaborator (spec.md §1) kept around to give the pipeline
// a real end-to-end AST consumer, grounded on the teacher's pkg/printer
// concept of a dedicated package that walks the tree and renders text.
package xmlprinter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/vanilla/internal/ast"
)

// Print renders program as an indented XML document: each node variant
// becomes an element named after its Go type, children nest inside it,
// variable names and literal text become element text, and operators and
// declared names (function, parameter, member, native symbol/library/return
// type) become attributes sorted by key.
func Print(program *ast.Program) string {
	var sb strings.Builder
	sb.WriteString("<Program>\n")
	for _, stmt := range program.Statements {
		printStatement(&sb, stmt, 1)
	}
	sb.WriteString("</Program>\n")
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func printStatement(sb *strings.Builder, s ast.Statement, depth int) {
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		openElem(sb, depth, "ExpressionStatement", nil)
		if st.Expr != nil {
			printExpression(sb, st.Expr, depth+1)
		}
		closeElem(sb, depth, "ExpressionStatement")

	case *ast.BlockStatement:
		openElem(sb, depth, "BlockStatement", nil)
		for _, inner := range st.Statements {
			printStatement(sb, inner, depth+1)
		}
		closeElem(sb, depth, "BlockStatement")

	case *ast.ReturnStatement:
		openElem(sb, depth, "ReturnStatement", nil)
		if st.Value != nil {
			printExpression(sb, st.Value, depth+1)
		}
		closeElem(sb, depth, "ReturnStatement")

	case *ast.IfStatement:
		openElem(sb, depth, "IfStatement", nil)
		for i, b := range st.Branches {
			tag := "If"
			if i > 0 {
				tag = "ElseIf"
			}
			openElem(sb, depth+1, tag, nil)
			printExpression(sb, b.Condition, depth+2)
			printStatement(sb, b.Body, depth+2)
			closeElem(sb, depth+1, tag)
		}
		if st.Else != nil {
			openElem(sb, depth+1, "Else", nil)
			printStatement(sb, st.Else, depth+2)
			closeElem(sb, depth+1, "Else")
		}
		closeElem(sb, depth, "IfStatement")

	case *ast.WhileStatement:
		openElem(sb, depth, "WhileStatement", nil)
		printExpression(sb, st.Condition, depth+1)
		printStatement(sb, st.Body, depth+1)
		closeElem(sb, depth, "WhileStatement")

	case *ast.FunctionDefStatement:
		openElem(sb, depth, "FunctionDefStatement", map[string]string{"name": st.Name})
		printParams(sb, st.Params, depth+1)
		printStatement(sb, st.Body, depth+1)
		closeElem(sb, depth, "FunctionDefStatement")

	case *ast.AssignmentStatement:
		openElem(sb, depth, "AssignmentStatement", nil)
		printExpression(sb, st.Target, depth+1)
		printExpression(sb, st.Value, depth+1)
		closeElem(sb, depth, "AssignmentStatement")

	default:
		leafElem(sb, depth, "UnknownStatement", s.String())
	}
}

func printExpression(sb *strings.Builder, e ast.Expression, depth int) {
	switch ex := e.(type) {
	case *ast.VariableExpression:
		leafElem(sb, depth, "VariableExpression", ex.Name)
	case *ast.IntegerLiteral:
		leafElem(sb, depth, "IntegerLiteral", ex.Value)
	case *ast.FloatLiteral:
		leafElem(sb, depth, "FloatLiteral", ex.Value)
	case *ast.StringLiteral:
		leafElem(sb, depth, "StringLiteral", ex.Value)
	case *ast.BoolLiteral:
		leafElem(sb, depth, "BoolLiteral", ex.Kind.String())
	case *ast.ArrayLiteral:
		openElem(sb, depth, "ArrayLiteral", nil)
		for _, el := range ex.Elements {
			printExpression(sb, el, depth+1)
		}
		closeElem(sb, depth, "ArrayLiteral")
	case *ast.UnaryExpression:
		openElem(sb, depth, "UnaryExpression", map[string]string{"operator": ex.Operator})
		printExpression(sb, ex.Operand, depth+1)
		closeElem(sb, depth, "UnaryExpression")
	case *ast.BinaryExpression:
		openElem(sb, depth, "BinaryExpression", map[string]string{"operator": ex.Operator})
		printExpression(sb, ex.Left, depth+1)
		printExpression(sb, ex.Right, depth+1)
		closeElem(sb, depth, "BinaryExpression")
	case *ast.ConcatExpression:
		openElem(sb, depth, "ConcatExpression", nil)
		printExpression(sb, ex.Left, depth+1)
		printExpression(sb, ex.Right, depth+1)
		closeElem(sb, depth, "ConcatExpression")
	case *ast.ConditionalExpression:
		openElem(sb, depth, "ConditionalExpression", nil)
		printExpression(sb, ex.Condition, depth+1)
		printExpression(sb, ex.Then, depth+1)
		printExpression(sb, ex.Else, depth+1)
		closeElem(sb, depth, "ConditionalExpression")
	case *ast.SubscriptExpression:
		openElem(sb, depth, "SubscriptExpression", nil)
		printExpression(sb, ex.Container, depth+1)
		printExpression(sb, ex.Index, depth+1)
		closeElem(sb, depth, "SubscriptExpression")
	case *ast.MemberExpression:
		openElem(sb, depth, "MemberExpression", map[string]string{"name": ex.Name})
		printExpression(sb, ex.Left, depth+1)
		closeElem(sb, depth, "MemberExpression")
	case *ast.CallExpression:
		openElem(sb, depth, "CallExpression", nil)
		printExpression(sb, ex.Callee, depth+1)
		for _, a := range ex.Args {
			printExpression(sb, a, depth+1)
		}
		closeElem(sb, depth, "CallExpression")
	case *ast.FunctionExpression:
		openElem(sb, depth, "FunctionExpression", map[string]string{"name": ex.Name})
		printParams(sb, ex.Params, depth+1)
		printStatement(sb, ex.Body, depth+1)
		closeElem(sb, depth, "FunctionExpression")
	case *ast.NativeFunctionExpression:
		openElem(sb, depth, "NativeFunctionExpression", map[string]string{
			"symbol": ex.Symbol, "library": ex.Library, "returnType": ex.ReturnType,
		})
		closeElem(sb, depth, "NativeFunctionExpression")
	default:
		leafElem(sb, depth, "UnknownExpression", e.String())
	}
}

func printParams(sb *strings.Builder, params []ast.Param, depth int) {
	if len(params) == 0 {
		return
	}
	openElem(sb, depth, "Params", nil)
	for _, p := range params {
		attrs := map[string]string{"name": p.Name}
		if p.Default == nil {
			openElem(sb, depth+1, "Param", attrs)
			closeElem(sb, depth+1, "Param")
			continue
		}
		openElem(sb, depth+1, "Param", attrs)
		printExpression(sb, p.Default, depth+2)
		closeElem(sb, depth+1, "Param")
	}
	closeElem(sb, depth, "Params")
}

func openElem(sb *strings.Builder, depth int, tag string, attrs map[string]string) {
	indent(sb, depth)
	sb.WriteString("<" + tag + attrString(attrs) + ">\n")
}

func closeElem(sb *strings.Builder, depth int, tag string) {
	indent(sb, depth)
	sb.WriteString("</" + tag + ">\n")
}

func leafElem(sb *strings.Builder, depth int, tag, text string) {
	indent(sb, depth)
	sb.WriteString(fmt.Sprintf("<%s>%s</%s>\n", tag, escapeText(text), tag))
}

func attrString(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf(" %s=%q", k, attrs[k]))
	}
	return sb.String()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
