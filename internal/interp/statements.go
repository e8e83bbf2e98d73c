package interp

import (
	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/errors"
)

// Exec executes a statement against env, returning a ControlFlow signal:
// Normal on fall-through, Return if a `return` fired (directly or via a
// nested block/if/while), or an error signal if evaluation failed
// anywhere along the way (spec.md §4.5).
func (in *Interpreter) Exec(stmt ast.Statement, env *Environment) *ControlFlow {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if s.Expr == nil {
			return Normal()
		}
		if _, err := in.Eval(s.Expr, env); err != nil {
			return Raise(err)
		}
		return Normal()

	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			cf := in.Exec(inner, env)
			if !cf.IsNormal() {
				return cf
			}
		}
		return Normal()

	case *ast.ReturnStatement:
		if s.Value == nil {
			return Return(None())
		}
		v, err := in.Eval(s.Value, env)
		if err != nil {
			return Raise(err)
		}
		return Return(v)

	case *ast.IfStatement:
		return in.execIf(s, env)

	case *ast.WhileStatement:
		return in.execWhile(s, env)

	case *ast.FunctionDefStatement:
		return in.execFunctionDef(s, env)

	case *ast.AssignmentStatement:
		return in.execAssignment(s, env)
	}
	return Raise(errors.New(errors.KindInvalidOperation, errors.StageEvaluation, stmt.Pos(), "unhandled statement node %T", stmt))
}

// execIf evaluates each branch condition in order, running the first
// branch whose condition is True; Indeterminate and False are both
// non-truthy (spec.md §4.3's tri-state truthiness rule — only True runs a
// body). Falls through to the else clause, if any, when no branch fires.
func (in *Interpreter) execIf(s *ast.IfStatement, env *Environment) *ControlFlow {
	for _, branch := range s.Branches {
		cond, err := in.Eval(branch.Condition, env)
		if err != nil {
			return Raise(err)
		}
		b, err := ToBool(cond)
		if err != nil {
			return Raise(err.WithLocation(branch.Condition.Pos()))
		}
		if b == True {
			return in.Exec(branch.Body, env)
		}
	}
	if s.Else != nil {
		return in.Exec(s.Else, env)
	}
	return Normal()
}

// execWhile loops while the condition evaluates to True, stopping (without
// error) the moment it is False or Indeterminate.
func (in *Interpreter) execWhile(s *ast.WhileStatement, env *Environment) *ControlFlow {
	for {
		cond, err := in.Eval(s.Condition, env)
		if err != nil {
			return Raise(err)
		}
		b, err := ToBool(cond)
		if err != nil {
			return Raise(err.WithLocation(s.Condition.Pos()))
		}
		if b != True {
			return Normal()
		}
		cf := in.Exec(s.Body, env)
		if !cf.IsNormal() {
			return cf
		}
	}
}

// execFunctionDef binds a named function value into whatever scope is
// currently active (global, or the current call frame) under its own name
// (spec.md §3 function definition statement).
func (in *Interpreter) execFunctionDef(s *ast.FunctionDefStatement, env *Environment) *ControlFlow {
	params, minArgs, err := in.resolveParams(s.Params, env, s.Pos())
	if err != nil {
		return Raise(err)
	}
	fn := &FunctionValue{
		Name:    s.Name,
		Params:  params,
		Body:    &functionBody{in: in, body: s.Body},
		MinArgs: minArgs,
	}
	env.Set(s.Name, fn)
	return Normal()
}

// execAssignment implements `target = value;`. Only a plain variable
// reference is a legal assignment target (spec.md §4.2, §9); anything else
// the parser accepted as Target is a structural error at evaluation time.
func (in *Interpreter) execAssignment(s *ast.AssignmentStatement, env *Environment) *ControlFlow {
	variable, ok := s.Target.(*ast.VariableExpression)
	if !ok {
		return Raise(errors.New(errors.KindInvalidOperation, errors.StageEvaluation, s.Target.Pos(),
			"assignment target must be a variable, got %T", s.Target))
	}
	v, err := in.Eval(s.Value, env)
	if err != nil {
		return Raise(err)
	}
	env.Set(variable.Name, v)
	return Normal()
}
