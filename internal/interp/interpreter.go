package interp

import (
	"math/big"

	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/errors"
)

// Interpreter ties together an Environment and the tree-walking evaluator
// (spec.md §4.5). It holds no per-run state of its own beyond what callers
// pass in, so one Interpreter can safely evaluate many programs against
// different environments.
type Interpreter struct{}

// New creates an Interpreter.
func New() *Interpreter { return &Interpreter{} }

// Run evaluates every top-level statement of program in order against env,
// returning the first propagating error, if any. A top-level `return`
// simply stops the program (spec.md has no outer function frame to return
// from, so it is not itself an error).
func (in *Interpreter) Run(program *ast.Program, env *Environment) *errors.VanillaError {
	for _, stmt := range program.Statements {
		cf := in.Exec(stmt, env)
		if cf.IsError() {
			return cf.Err()
		}
		if cf.IsReturn() {
			return nil
		}
	}
	return nil
}

// functionBody adapts an ast.Statement function body to the Callable
// interface value.go's FunctionValue expects, so internal/interp's value
// types need not import internal/ast directly.
type functionBody struct {
	in   *Interpreter
	body ast.Statement
}

func (f *functionBody) CallBody(env *Environment) (Value, *ControlFlow) {
	cf := f.in.Exec(f.body, env)
	if cf.IsError() {
		return None(), cf
	}
	if cf.IsReturn() {
		return cf.Value(), cf
	}
	return None(), cf
}

// makeIntLiteral parses an IntegerLiteral's digits (already stripped of any
// base prefix) into an arbitrary-precision int (spec.md §4.2 numeric
// literal formats).
func makeIntLiteral(digits string, base int) (*IntegerValue, *errors.VanillaError) {
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, opErr(errors.KindInvalidToken, "invalid integer literal %q", digits)
	}
	return &IntegerValue{Val: v}, nil
}

// makeFloatLiteral parses a FloatLiteral's lexeme into an arbitrary
// precision float.
func makeFloatLiteral(lexeme string) (*FloatValue, *errors.VanillaError) {
	v, _, err := big.ParseFloat(lexeme, 10, 200, big.ToNearestEven)
	if err != nil {
		return nil, opErr(errors.KindInvalidToken, "invalid float literal %q", lexeme)
	}
	return &FloatValue{Val: v}, nil
}
