// Package vanilla is the public embedding API for the Vanilla interpreter:
// a thin Engine facade wiring the scanner, parser, evaluator, and native
// bridge together, grounded on the teacher's pkg/dwscript.Engine /
// RegisterFunction usage shown in examples/ffi/main.go.
package vanilla

import (
	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/interp"
	"github.com/cwbudde/vanilla/internal/lexer"
	"github.com/cwbudde/vanilla/internal/parser"

	_ "github.com/cwbudde/vanilla/internal/native" // installs the native_fn_def_expr binder
)

// Engine evaluates Vanilla programs against a single persistent
// environment, so top-level variables and function definitions from one
// Eval call are visible to the next (spec.md §3, Context).
type Engine struct {
	env  *interp.Environment
	in   *interp.Interpreter
	file string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithFileName sets the file name used in diagnostic output.
func WithFileName(name string) Option {
	return func(e *Engine) { e.file = name }
}

// New creates an Engine with a fresh global environment.
func New(opts ...Option) *Engine {
	e := &Engine{
		env: interp.NewEnvironment(),
		in:  interp.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one Eval call.
type Result struct {
	Success bool
	Value   interp.Value // the last top-level expression statement's value, if any
}

// Eval scans, parses, and evaluates source against the engine's
// persistent environment (spec.md §4.1-§4.5, in sequence).
func (e *Engine) Eval(source string) (*Result, error) {
	l := lexer.New(source)
	p := parser.New(l)

	program, perr := p.ParseProgram()
	if perr != nil {
		return &Result{Success: false}, perr.WithSource(source, e.file)
	}

	lastValue, rerr := e.runCapturingLastValue(program)
	if rerr != nil {
		return &Result{Success: false}, rerr.WithSource(source, e.file)
	}
	return &Result{Success: true, Value: lastValue}, nil
}

// runCapturingLastValue runs a program like Interpreter.Run, but also
// reports the value of the last top-level bare expression statement, which
// is convenient for embedders (e.g. a REPL) even though spec.md's grammar
// has no notion of a "program result".
func (e *Engine) runCapturingLastValue(program *ast.Program) (interp.Value, *errors.VanillaError) {
	var last interp.Value = interp.None()
	for _, stmt := range program.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok && es.Expr != nil {
			v, err := e.in.Eval(es.Expr, e.env)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		cf := e.in.Exec(stmt, e.env)
		if cf.IsError() {
			return nil, cf.Err()
		}
		if cf.IsReturn() {
			return cf.Value(), nil
		}
	}
	return last, nil
}

// RegisterNative binds name directly to a Go function, bypassing
// native_fn_def_expr/dlopen entirely — useful for embedders that want to
// expose host functionality without a shared C library on disk. fn is
// invoked with the raw Vanilla arguments and must return a Vanilla value.
func (e *Engine) RegisterNative(name string, fn func(args []interp.Value) (interp.Value, error)) {
	e.env.Set(name, &interp.NativeFunctionValue{
		Symbol:  name,
		Library: "<host>",
		Invoke:  fn,
	})
}

// Global looks up a top-level variable bound in the engine's environment.
func (e *Engine) Global(name string) (interp.Value, bool) {
	return e.env.Get(name)
}

// SetGlobal binds a top-level variable in the engine's environment.
func (e *Engine) SetGlobal(name string, v interp.Value) {
	e.env.Set(name, v)
}
