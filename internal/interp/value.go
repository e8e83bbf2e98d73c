// Package interp implements the Vanilla value system, environment, and
// tree-walking evaluator (spec.md §3, §4.3, §4.5).
package interp

import (
	"fmt"
	"math/big"
	"strings"
)

// Kind is the stable type identifier every Value exposes (spec.md §3
// invariants: "every value exposes a stable type identifier").
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindFunction
	KindNative
)

var kindNames = map[Kind]string{
	KindNone:     "none",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindString:   "string",
	KindArray:    "array",
	KindFunction: "function",
	KindNative:   "native-function",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Value is the runtime value interface implemented by every Vanilla
// variant. Operations on values (arithmetic, casts, calls, ...) are
// implemented as package-level dispatch functions over Kind rather than as
// methods on this interface, per spec.md §9's "tagged sum type" design
// note: this avoids virtual tables and keeps default/error arms in one
// place per operation.
type Value interface {
	// Kind returns the value's stable type identifier.
	Kind() Kind
	// TypeName returns the value's human-readable type name.
	TypeName() string
	// String renders the value for display and string conversion.
	String() string
}

// noneSingleton is the single shared instance of NoneValue (spec.md §3:
// "none (singleton semantics)").
var noneSingleton = &NoneValue{}

// None returns the shared none value.
func None() *NoneValue { return noneSingleton }

// NoneValue represents the absence of a value.
type NoneValue struct{}

func (*NoneValue) Kind() Kind        { return KindNone }
func (*NoneValue) TypeName() string  { return "none" }
func (*NoneValue) String() string    { return "none" }

// IntegerValue is an arbitrary-precision signed integer (spec.md §3).
type IntegerValue struct {
	Val *big.Int
}

// NewInt wraps an int64 as an IntegerValue.
func NewInt(v int64) *IntegerValue { return &IntegerValue{Val: big.NewInt(v)} }

func (v *IntegerValue) Kind() Kind       { return KindInt }
func (v *IntegerValue) TypeName() string { return "int" }
func (v *IntegerValue) String() string   { return v.Val.String() }

// FloatValue is an arbitrary-precision binary floating-point number.
type FloatValue struct {
	Val *big.Float
}

// NewFloat wraps a float64 as a FloatValue.
func NewFloat(v float64) *FloatValue {
	return &FloatValue{Val: new(big.Float).SetPrec(200).SetFloat64(v)}
}

func (v *FloatValue) Kind() Kind       { return KindFloat }
func (v *FloatValue) TypeName() string { return "float" }
func (v *FloatValue) String() string {
	return v.Val.Text('g', -1)
}

// TriState is a three-valued boolean (spec.md §3, §4.3).
type TriState int

const (
	False TriState = iota
	True
	Indeterminate
)

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "indeterminate"
	}
}

// BoolValue wraps a TriState.
type BoolValue struct {
	Val TriState
}

func (v *BoolValue) Kind() Kind       { return KindBool }
func (v *BoolValue) TypeName() string { return "bool" }
func (v *BoolValue) String() string   { return v.Val.String() }

// StringValue is an immutable UTF-8 byte sequence.
type StringValue struct {
	Val string
}

func (v *StringValue) Kind() Kind       { return KindString }
func (v *StringValue) TypeName() string { return "string" }
func (v *StringValue) String() string   { return v.Val }

// ArrayValue is an ordered, heterogeneous sequence of values.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind       { return KindArray }
func (v *ArrayValue) TypeName() string { return "array" }
func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FunctionParam is one resolved parameter: a name and an optional default
// value (evaluated once, at definition time — spec.md §4.5).
type FunctionParam struct {
	Name    string
	Default Value // nil if the parameter has no default
}

// Callable is anything a FunctionValue can execute: a statement body
// evaluated against a freshly pushed environment frame. Kept as an
// interface (rather than importing internal/ast directly into the value
// type) to avoid interp depending on the evaluator's call signature.
type Callable interface {
	CallBody(env *Environment) (Value, *ControlFlow)
}

// FunctionValue is a user-defined, first-class function with default
// arguments (spec.md §3, §4.3 "Function value call protocol").
type FunctionValue struct {
	Name     string // display name; "" for anonymous functions
	Params   []FunctionParam
	Body     Callable
	MinArgs  int // count of leading parameters without defaults
}

func (v *FunctionValue) Kind() Kind       { return KindFunction }
func (v *FunctionValue) TypeName() string { return "function" }
func (v *FunctionValue) String() string {
	if v.Name != "" {
		return fmt.Sprintf("<function %s>", v.Name)
	}
	return "<function>"
}

// NativeFunctionValue is a script-level value bridging to a dynamically
// loaded native symbol (spec.md §3, §4.4). Defined here so it satisfies
// Value; its invocation machinery lives in internal/native.
type NativeFunctionValue struct {
	Symbol     string
	Library    string
	ReturnType string
	ArgTypes   []string
	Invoke     func(args []Value) (Value, error)
}

func (v *NativeFunctionValue) Kind() Kind       { return KindNative }
func (v *NativeFunctionValue) TypeName() string { return "native-function" }
func (v *NativeFunctionValue) String() string {
	return fmt.Sprintf("<native %s from %s>", v.Symbol, v.Library)
}

// ShallowCopy implements spec.md §3's copy rule: scalars are copied by
// value, arrays get a new backing slice with the same element identities,
// and shared values (functions, native functions) return the same
// identity.
func ShallowCopy(v Value) Value {
	switch t := v.(type) {
	case *NoneValue:
		return None()
	case *IntegerValue:
		return &IntegerValue{Val: new(big.Int).Set(t.Val)}
	case *FloatValue:
		return &FloatValue{Val: new(big.Float).Copy(t.Val)}
	case *BoolValue:
		return &BoolValue{Val: t.Val}
	case *StringValue:
		return &StringValue{Val: t.Val}
	case *ArrayValue:
		elems := make([]Value, len(t.Elements))
		copy(elems, t.Elements)
		return &ArrayValue{Elements: elems}
	case *FunctionValue, *NativeFunctionValue:
		return v
	default:
		return v
	}
}

// DeepCopy recursively deep-copies arrays; scalars behave as ShallowCopy;
// function values keep reference identity (spec.md §3).
func DeepCopy(v Value) Value {
	if arr, ok := v.(*ArrayValue); ok {
		elems := make([]Value, len(arr.Elements))
		for i, e := range arr.Elements {
			elems[i] = DeepCopy(e)
		}
		return &ArrayValue{Elements: elems}
	}
	return ShallowCopy(v)
}
