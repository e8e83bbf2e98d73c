package vanilla

import (
	"testing"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/interp"
)

func TestEvalReturnsLastExpressionValue(t *testing.T) {
	e := New()
	result, err := e.Eval(`1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	i, ok := result.Value.(*interp.IntegerValue)
	if !ok || i.Val.Int64() != 7 {
		t.Fatalf("expected 7, got %#v", result.Value)
	}
}

func TestEnvironmentPersistsAcrossEvalCalls(t *testing.T) {
	e := New()
	if _, err := e.Eval(`x = 40;`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Eval(`x + 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i := result.Value.(*interp.IntegerValue)
	if i.Val.Int64() != 42 {
		t.Fatalf("expected 42, got %s", i.Val.String())
	}
}

func TestParseErrorIsReportedWithSource(t *testing.T) {
	e := New(WithFileName("bad.vnl"))
	_, err := e.Eval(`1 + ;`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	ve, ok := err.(*errors.VanillaError)
	if !ok {
		t.Fatalf("expected *errors.VanillaError, got %T", err)
	}
	if ve.Stage != errors.StageParsing {
		t.Fatalf("expected parsing stage, got %v", ve.Stage)
	}
}

func TestEvalErrorPropagatesKind(t *testing.T) {
	e := New()
	_, err := e.Eval(`undefinedVar + 1;`)
	if err == nil {
		t.Fatal("expected an evaluation error")
	}
	ve := err.(*errors.VanillaError)
	if ve.Stage != errors.StageEvaluation {
		t.Fatalf("expected evaluation stage, got %v", ve.Stage)
	}
}

func TestRegisterNativeBindsHostFunction(t *testing.T) {
	e := New()
	called := false
	e.RegisterNative("double", func(args []interp.Value) (interp.Value, error) {
		called = true
		i := args[0].(*interp.IntegerValue)
		return interp.NewInt(i.Val.Int64() * 2), nil
	})
	result, err := e.Eval(`double(21);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected the registered host function to be invoked")
	}
	i := result.Value.(*interp.IntegerValue)
	if i.Val.Int64() != 42 {
		t.Fatalf("expected 42, got %s", i.Val.String())
	}
}

func TestGlobalAndSetGlobal(t *testing.T) {
	e := New()
	e.SetGlobal("seed", interp.NewInt(9))
	v, ok := e.Global("seed")
	if !ok {
		t.Fatalf("expected seed to be bound")
	}
	if v.(*interp.IntegerValue).Val.Int64() != 9 {
		t.Fatalf("expected 9, got %s", v.(*interp.IntegerValue).Val.String())
	}
	if _, ok := e.Global("missing"); ok {
		t.Fatalf("expected missing to be unbound")
	}
}
