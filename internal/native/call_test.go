package native

import (
	"testing"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/interp"
)

// TestInvokeArgcMismatchDistinguishesDirection locks in spec.md §4.4 step
// 1's distinction between not-enough-arguments and too-many-arguments: both
// checks run before any marshalling or syscall, so a boundFunction with only
// argTypes set is enough to exercise them.
func TestInvokeArgcMismatchDistinguishesDirection(t *testing.T) {
	bf := &boundFunction{argTypes: []cType{cInt32, cInt32}}

	_, err := bf.invoke([]interp.Value{interp.NewInt(1)})
	ve, ok := err.(*errors.VanillaError)
	if !ok || ve.Kind != errors.KindNotEnoughArguments {
		t.Fatalf("expected not-enough-arguments, got %v", err)
	}

	_, err = bf.invoke([]interp.Value{interp.NewInt(1), interp.NewInt(2), interp.NewInt(3)})
	ve, ok = err.(*errors.VanillaError)
	if !ok || ve.Kind != errors.KindTooManyArguments {
		t.Fatalf("expected too-many-arguments, got %v", err)
	}
}
