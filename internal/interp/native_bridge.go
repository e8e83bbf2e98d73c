package interp

import "fmt"

// BindNativeFunction is the hook internal/native installs at program
// startup (via RegisterBinder) so that evaluating a native_fn_def_expr
// does not require internal/interp to import internal/native directly —
// internal/native already depends on internal/interp for Value and the
// error taxonomy, so the reverse import would cycle.
var bindNativeFunction = func(symbol, library, returnType string, argTypes []string) (*NativeFunctionValue, error) {
	return nil, fmt.Errorf("native function bridge not installed (import internal/native)")
}

// RegisterNativeBinder installs the function internal/native uses to
// resolve a native_fn_def_expr into a callable NativeFunctionValue.
func RegisterNativeBinder(binder func(symbol, library, returnType string, argTypes []string) (*NativeFunctionValue, error)) {
	bindNativeFunction = binder
}
