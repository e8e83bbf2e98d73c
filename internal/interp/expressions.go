package interp

import (
	"github.com/cwbudde/vanilla/internal/ast"
	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/token"
)

// Eval evaluates an expression against env, implementing the tree-walking
// rules of spec.md §4.5. Errors it returns already carry a position: the
// innermost node that raised or first saw a positionless error attaches its
// own via tagPos / VanillaError.WithLocation, and outer nodes keep it.
func (in *Interpreter) Eval(expr ast.Expression, env *Environment) (Value, *errors.VanillaError) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		v, err := makeIntLiteral(e.Value, intRadix(e.Base))
		return tagPos(v, err, e.Pos())
	case *ast.FloatLiteral:
		v, err := makeFloatLiteral(e.Value)
		return tagPos(v, err, e.Pos())
	case *ast.StringLiteral:
		return &StringValue{Val: e.Value}, nil
	case *ast.BoolLiteral:
		return &BoolValue{Val: triStateOf(e.Kind)}, nil
	case *ast.VariableExpression:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, errors.New(errors.KindUndefinedValue, errors.StageEvaluation, e.Pos(), "undefined value %q", e.Name).WithLocation(e.Pos())
		}
		return v, nil
	case *ast.ArrayLiteral:
		return in.evalArrayLiteral(e, env)
	case *ast.UnaryExpression:
		return in.evalUnary(e, env)
	case *ast.BinaryExpression:
		return in.evalBinary(e, env)
	case *ast.ConcatExpression:
		return in.evalConcat(e, env)
	case *ast.ConditionalExpression:
		return in.evalConditional(e, env)
	case *ast.SubscriptExpression:
		return in.evalSubscript(e, env)
	case *ast.MemberExpression:
		return in.evalMember(e, env)
	case *ast.CallExpression:
		return in.evalCall(e, env)
	case *ast.FunctionExpression:
		return in.evalFunctionExpr(e, env)
	case *ast.NativeFunctionExpression:
		return in.evalNativeFunctionExpr(e, env)
	}
	return nil, errors.New(errors.KindInvalidOperation, errors.StageEvaluation, expr.Pos(), "unhandled expression node %T", expr)
}

// tagPos attaches pos to err if err is non-nil, and returns v verbatim
// otherwise (v is nil in the error case).
func tagPos(v Value, err *errors.VanillaError, pos token.Position) (Value, *errors.VanillaError) {
	if err != nil {
		return nil, err.WithLocation(pos)
	}
	return v, nil
}

func intRadix(b token.IntBase) int {
	switch b {
	case token.Base16:
		return 16
	case token.Base8:
		return 8
	case token.Base2:
		return 2
	default:
		return 10
	}
}

func triStateOf(k token.Type) TriState {
	switch k {
	case token.TRUE:
		return True
	case token.FALSE:
		return False
	default:
		return Indeterminate
	}
}

func (in *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral, env *Environment) (Value, *errors.VanillaError) {
	elems := make([]Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := in.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &ArrayValue{Elements: elems}, nil
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpression, env *Environment) (Value, *errors.VanillaError) {
	operand, err := in.Eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	var v Value
	switch e.Operator {
	case "-":
		v, err = Negate(operand)
	case "+":
		v, err = Abs(operand)
	default:
		return nil, errors.New(errors.KindInvalidOperation, errors.StageEvaluation, e.Pos(), "unknown unary operator %q", e.Operator)
	}
	return tagPos(v, err, e.Pos())
}

// evalBinary implements spec.md §4.5's left-to-right evaluation order:
// the left operand is fully evaluated (including any side effects) before
// the right operand is evaluated.
func (in *Interpreter) evalBinary(e *ast.BinaryExpression, env *Environment) (Value, *errors.VanillaError) {
	left, err := in.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	var v Value
	switch e.Operator {
	case "+":
		v, err = Add(left, right)
	case "-":
		v, err = Sub(left, right)
	case "*":
		v, err = Mul(left, right)
	case "/":
		v, err = Div(left, right)
	case "<":
		v, err = Lt(left, right)
	case "<=":
		v, err = Le(left, right)
	case ">":
		v, err = Gt(left, right)
	case ">=":
		v, err = Ge(left, right)
	case "==":
		v, err = Eq(left, right)
	case "!=":
		v, err = Neq(left, right)
	default:
		return nil, errors.New(errors.KindInvalidOperation, errors.StageEvaluation, e.Pos(), "unknown binary operator %q", e.Operator)
	}
	return tagPos(v, err, e.Pos())
}

func (in *Interpreter) evalConcat(e *ast.ConcatExpression, env *Environment) (Value, *errors.VanillaError) {
	left, err := in.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	v, err := Concatenate(left, right)
	return tagPos(v, err, e.Pos())
}

// evalConditional implements the ternary: only True selects the then
// branch; False or Indeterminate select the else branch (spec.md §4.3
// tri-state truthiness rule — only True is truthy).
func (in *Interpreter) evalConditional(e *ast.ConditionalExpression, env *Environment) (Value, *errors.VanillaError) {
	cond, err := in.Eval(e.Condition, env)
	if err != nil {
		return nil, err
	}
	b, err := ToBool(cond)
	if err != nil {
		return nil, err.WithLocation(e.Pos())
	}
	if b == True {
		return in.Eval(e.Then, env)
	}
	return in.Eval(e.Else, env)
}

func (in *Interpreter) evalSubscript(e *ast.SubscriptExpression, env *Environment) (Value, *errors.VanillaError) {
	container, err := in.Eval(e.Container, env)
	if err != nil {
		return nil, err
	}
	index, err := in.Eval(e.Index, env)
	if err != nil {
		return nil, err
	}
	v, err := SubscriptGet(container, index)
	return tagPos(v, err, e.Pos())
}

func (in *Interpreter) evalMember(e *ast.MemberExpression, env *Environment) (Value, *errors.VanillaError) {
	left, err := in.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	v, err := ElementGet(left, e.Name)
	return tagPos(v, err, e.Pos())
}

// evalCall implements the function-call protocol of spec.md §4.3/§4.5:
// arguments are evaluated left to right BEFORE the callee expression, the
// callee must resolve to a function or native-function value, argument
// counts are checked (too few vs. unbound defaults is an error; too many
// is an error), a fresh local frame is pushed, parameters are bound
// (defaults for any trailing omitted arguments), the body runs, and the
// frame is always popped on every exit path.
func (in *Interpreter) evalCall(e *ast.CallExpression, env *Environment) (Value, *errors.VanillaError) {
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callee, err := in.Eval(e.Callee, env)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *FunctionValue:
		v, err := in.callFunction(fn, args, env)
		return tagPos(v, err, e.Pos())
	case *NativeFunctionValue:
		v, nerr := fn.Invoke(args)
		if nerr != nil {
			if ve, ok := nerr.(*errors.VanillaError); ok {
				return nil, ve.WithLocation(e.Pos())
			}
			return nil, errors.New(errors.KindNativeSymbolNotFound, errors.StageEvaluation, e.Pos(), "%s", nerr.Error())
		}
		return v, nil
	}
	return nil, errors.New(errors.KindNotCallable, errors.StageEvaluation, e.Pos(), "%s is not callable", callee.TypeName())
}

func (in *Interpreter) callFunction(fn *FunctionValue, args []Value, env *Environment) (Value, *errors.VanillaError) {
	if len(args) < fn.MinArgs {
		return nil, errors.New(errors.KindNotEnoughArguments, errors.StageEvaluation, token.Position{},
			"%s expects at least %d argument(s), got %d", displayName(fn), fn.MinArgs, len(args))
	}
	if len(args) > len(fn.Params) {
		return nil, errors.New(errors.KindTooManyArguments, errors.StageEvaluation, token.Position{},
			"%s expects at most %d argument(s), got %d", displayName(fn), len(fn.Params), len(args))
	}

	env.PushFrame()
	defer env.PopFrame()

	for i, p := range fn.Params {
		if i < len(args) {
			env.Set(p.Name, args[i])
			continue
		}
		if p.Default == nil {
			return nil, errors.New(errors.KindMissingDefaultArgument, errors.StageEvaluation, token.Position{},
				"%s parameter %q has no default and no argument was supplied", displayName(fn), p.Name)
		}
		env.Set(p.Name, p.Default)
	}

	v, cf := fn.Body.CallBody(env)
	if cf.IsError() {
		return nil, cf.Err()
	}
	return v, nil
}

func displayName(fn *FunctionValue) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<anonymous function>"
}

// evalFunctionExpr builds a first-class FunctionValue, evaluating default
// argument expressions once, at definition time (spec.md §4.5).
func (in *Interpreter) evalFunctionExpr(e *ast.FunctionExpression, env *Environment) (Value, *errors.VanillaError) {
	params, minArgs, err := in.resolveParams(e.Params, env, e.Pos())
	if err != nil {
		return nil, err
	}
	return &FunctionValue{
		Name:    e.Name,
		Params:  params,
		Body:    &functionBody{in: in, body: e.Body},
		MinArgs: minArgs,
	}, nil
}

// resolveParams builds the runtime parameter list for a function value,
// evaluating each default expression once at definition time (spec.md
// §4.5). It also enforces the construction-time invariant of spec.md §3:
// once a parameter has a default, every parameter after it must also have
// one — checked here, not deferred to call time, so a malformed
// definition like `function f(a = 1, b) {...}` is rejected as soon as the
// function value is built rather than producing a bogus MinArgs.
func (in *Interpreter) resolveParams(params []ast.Param, env *Environment, pos token.Position) ([]FunctionParam, int, *errors.VanillaError) {
	out := make([]FunctionParam, len(params))
	minArgs := len(params)
	seenDefault := false
	for i, p := range params {
		fp := FunctionParam{Name: p.Name}
		if p.Default != nil {
			v, err := in.Eval(p.Default, env)
			if err != nil {
				return nil, 0, err
			}
			fp.Default = v
			if !seenDefault {
				minArgs = i
				seenDefault = true
			}
		} else if seenDefault {
			return nil, 0, errors.New(errors.KindMissingDefaultArgument, errors.StageEvaluation, pos,
				"parameter %q follows a defaulted parameter but has no default of its own", p.Name)
		}
		out[i] = fp
	}
	return out, minArgs, nil
}

func (in *Interpreter) evalNativeFunctionExpr(e *ast.NativeFunctionExpression, env *Environment) (Value, *errors.VanillaError) {
	nv, err := bindNativeFunction(e.Symbol, e.Library, e.ReturnType, e.ArgTypes)
	if err != nil {
		if ve, ok := err.(*errors.VanillaError); ok {
			return nil, ve.WithLocation(e.Pos())
		}
		return nil, errors.New(errors.KindNativeLibraryLoading, errors.StageEvaluation, e.Pos(), "%s", err.Error())
	}
	return nv, nil
}
