// Package native bridges Vanilla's native_fn_def_expr values to real
// dynamically loaded C symbols via purego's dlopen/register machinery
// (spec.md §4.4), grounded on the teacher's sibling example
// mleku-moxie/runtime/ffi.go rather than the teacher's own
// reflection-based RegisterFunction/ExternalFunctionRegistry, since the
// spec requires genuine dlopen-based calls with argument types resolved
// from strings at run time.
package native

import (
	"fmt"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/token"
)

// cType classifies a declared native argument or return type by its
// marshaling shape. The fixed name table below mirrors the
// platform-independent C ABI primitives enumerated in spec.md §4.4.
type cType int

const (
	cVoid cType = iota
	cInt8
	cInt16
	cInt32
	cInt64
	cUint8
	cUint16
	cUint32
	cUint64
	cFloat32
	cFloat64
	cFloat80 // "long double"; marshaled as float64, widened on return
	cString  // "string8", "char*", "const char*"
)

// typeTable maps every declared type-name string to its cType (spec.md
// §4.4's fixed table: void, sized and unsized integers signed/unsigned,
// float/double/long double, and the string spellings).
var typeTable = map[string]cType{
	"void": cVoid,

	"int8":  cInt8,
	"int16": cInt16,
	"int32": cInt32,
	"int64": cInt64,

	"uint8":  cUint8,
	"uint16": cUint16,
	"uint32": cUint32,
	"uint64": cUint64,

	"char":  cInt8,
	"short": cInt16,
	"int":   cInt32,
	"long":  cInt64,

	"unsigned char":  cUint8,
	"unsigned short": cUint16,
	"unsigned int":   cUint32,
	"unsigned long":  cUint64,

	"float":       cFloat32,
	"double":      cFloat64,
	"long double": cFloat80,

	"string8":     cString,
	"char*":       cString,
	"const char*": cString,
}

func lookupType(name string) (cType, bool) {
	t, ok := typeTable[name]
	return t, ok
}

// resolveArgType resolves a declared argument type name, rejecting "void"
// (spec.md §4.4: void may only appear as a return type).
func resolveArgType(name string) (cType, *errors.VanillaError) {
	t, ok := lookupType(name)
	if !ok {
		return 0, errors.New(errors.KindUnknownNativeTypeName, errors.StageEvaluation, token.Position{}, "unknown native type name %q", name)
	}
	if t == cVoid {
		return 0, errors.New(errors.KindVoidAsArgumentType, errors.StageEvaluation, token.Position{}, "void is not a valid argument type")
	}
	return t, nil
}

// resolveReturnType resolves a declared return type name; "void" is
// allowed here and maps to Vanilla's none value.
func resolveReturnType(name string) (cType, *errors.VanillaError) {
	t, ok := lookupType(name)
	if !ok {
		return 0, errors.New(errors.KindUnknownNativeTypeName, errors.StageEvaluation, token.Position{}, "unknown native type name %q", name)
	}
	return t, nil
}

func (t cType) String() string {
	switch t {
	case cVoid:
		return "void"
	case cInt8, cInt16, cInt32, cInt64:
		return "int"
	case cUint8, cUint16, cUint32, cUint64:
		return "unsigned int"
	case cFloat32, cFloat64, cFloat80:
		return "float"
	case cString:
		return "string"
	default:
		return fmt.Sprintf("cType(%d)", int(t))
	}
}
