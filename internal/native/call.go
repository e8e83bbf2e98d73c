package native

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/interp"
	"github.com/cwbudde/vanilla/internal/token"
)

func init() {
	interp.RegisterNativeBinder(Bind)
}

// boundFunction is the closure state behind one native_fn_def_expr: the
// resolved argument/return types, the library handle it calls into, and a
// mutex serializing calls (string arguments build a short-lived C buffer
// per call; the mutex keeps that simple rather than needing it to be
// goroutine-safe on its own).
type boundFunction struct {
	mu         sync.Mutex
	lib        *libHandle
	symbolName string
	fnPtr      uintptr
	argTypes   []cType
	retType    cType
}

// Bind resolves a native_fn_def_expr's (symbol, library, returnType,
// argTypes) into a callable interp.NativeFunctionValue. It is installed as
// internal/interp's native binder hook via this package's init().
func Bind(symbol, library, returnType string, argTypes []string) (*interp.NativeFunctionValue, error) {
	retType, rerr := resolveReturnType(returnType)
	if rerr != nil {
		return nil, rerr
	}

	resolvedArgs := make([]cType, len(argTypes))
	for i, a := range argTypes {
		t, aerr := resolveArgType(a)
		if aerr != nil {
			return nil, aerr
		}
		resolvedArgs[i] = t
	}

	lib, err := cache.acquire(library)
	if err != nil {
		return nil, errors.New(errors.KindNativeLibraryLoading, errors.StageEvaluation, token.Position{}, "%s", err.Error())
	}

	fnPtr, err := purego.Dlsym(lib.handle, symbol)
	if err != nil {
		cache.release(lib)
		return nil, errors.New(errors.KindNativeSymbolNotFound, errors.StageEvaluation, token.Position{},
			"symbol %q not found in %q: %s", symbol, library, err.Error())
	}

	bf := &boundFunction{
		lib:        lib,
		symbolName: symbol,
		fnPtr:      fnPtr,
		argTypes:   resolvedArgs,
		retType:    retType,
	}
	// The cache's own map entry keeps lib alive; this finalizer just drops
	// bf's reference so libraryCache.update() can later reclaim it once no
	// bound function uses it anymore (see library_cache.go).
	runtime.SetFinalizer(bf, func(bf *boundFunction) { cache.detach(bf.lib) })

	return &interp.NativeFunctionValue{
		Symbol:     symbol,
		Library:    library,
		ReturnType: returnType,
		ArgTypes:   argTypes,
		Invoke:     bf.invoke,
	}, nil
}

// invoke implements the native call sequence of spec.md §4.4: check
// argument count, marshal each argument to its declared C type, invoke via
// purego.SyscallN, then unmarshal the result.
func (bf *boundFunction) invoke(args []interp.Value) (interp.Value, error) {
	if len(args) < len(bf.argTypes) {
		return nil, errors.New(errors.KindNotEnoughArguments, errors.StageEvaluation, token.Position{},
			"native %q expects %d argument(s), got %d", bf.symbolName, len(bf.argTypes), len(args))
	}
	if len(args) > len(bf.argTypes) {
		return nil, errors.New(errors.KindTooManyArguments, errors.StageEvaluation, token.Position{},
			"native %q expects %d argument(s), got %d", bf.symbolName, len(bf.argTypes), len(args))
	}

	bf.mu.Lock()
	defer bf.mu.Unlock()

	var keepAlive []any
	callArgs := make([]uintptr, len(args))
	for i, a := range args {
		v, err := marshalArg(bf.argTypes[i], a, &keepAlive)
		if err != nil {
			return nil, err
		}
		callArgs[i] = v
	}

	r1, _, errno := purego.SyscallN(bf.fnPtr, callArgs...)
	if errno != 0 {
		return nil, fmt.Errorf("native call to %q failed: errno %d", bf.symbolName, errno)
	}

	result := unmarshalResult(bf.retType, r1)
	_ = keepAlive // kept rooted through the call above; released here
	return result, nil
}
