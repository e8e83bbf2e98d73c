package interp

import (
	"fmt"
	"math/big"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/token"
)

// This file implements the Value operation surface of spec.md §4.3 as
// package-level dispatch functions over Kind, rather than as methods on
// Value — the "tagged sum type... single dispatch function per operation"
// design note of spec.md §9, grounded on the teacher's
// evalIntegerBinaryOp/evalFloatBinaryOp/evalStringBinaryOp style dispatch
// in internal/interp/expressions_binary.go.
//
// Errors returned here carry no position; the evaluator attaches the
// originating AST node's position via VanillaError.WithLocation.

func opErr(kind errors.Kind, format string, args ...any) *errors.VanillaError {
	return errors.New(kind, errors.StageEvaluation, token.Position{}, format, args...)
}

// Negate implements unary `-`.
func Negate(v Value) (Value, *errors.VanillaError) {
	switch t := v.(type) {
	case *IntegerValue:
		return &IntegerValue{Val: new(big.Int).Neg(t.Val)}, nil
	case *FloatValue:
		return &FloatValue{Val: new(big.Float).Neg(t.Val)}, nil
	}
	return nil, opErr(errors.KindBadUnary, "cannot negate %s", v.TypeName())
}

// Abs implements unary absolute value.
func Abs(v Value) (Value, *errors.VanillaError) {
	switch t := v.(type) {
	case *IntegerValue:
		return &IntegerValue{Val: new(big.Int).Abs(t.Val)}, nil
	case *FloatValue:
		return &FloatValue{Val: new(big.Float).Abs(t.Val)}, nil
	}
	return nil, opErr(errors.KindBadUnary, "cannot take absolute value of %s", v.TypeName())
}

// intToFloat promotes an arbitrary-precision int to a float using its
// exact value (spec.md §4.3 numeric promotion rule).
func intToFloat(i *big.Int) *big.Float {
	return new(big.Float).SetPrec(200).SetInt(i)
}

// Add implements binary `+`.
func Add(l, r Value) (Value, *errors.VanillaError) {
	li, lok := l.(*IntegerValue)
	ri, rok := r.(*IntegerValue)
	if lok && rok {
		return &IntegerValue{Val: new(big.Int).Add(li.Val, ri.Val)}, nil
	}
	if lf, rf, ok := asFloats(l, r); ok {
		return &FloatValue{Val: new(big.Float).SetPrec(200).Add(lf, rf)}, nil
	}
	return nil, opErr(errors.KindBadBinary, "cannot add %s and %s", l.TypeName(), r.TypeName())
}

// Sub implements binary `-`.
func Sub(l, r Value) (Value, *errors.VanillaError) {
	li, lok := l.(*IntegerValue)
	ri, rok := r.(*IntegerValue)
	if lok && rok {
		return &IntegerValue{Val: new(big.Int).Sub(li.Val, ri.Val)}, nil
	}
	if lf, rf, ok := asFloats(l, r); ok {
		return &FloatValue{Val: new(big.Float).SetPrec(200).Sub(lf, rf)}, nil
	}
	return nil, opErr(errors.KindBadBinary, "cannot subtract %s and %s", l.TypeName(), r.TypeName())
}

// Mul implements binary `*`.
func Mul(l, r Value) (Value, *errors.VanillaError) {
	li, lok := l.(*IntegerValue)
	ri, rok := r.(*IntegerValue)
	if lok && rok {
		return &IntegerValue{Val: new(big.Int).Mul(li.Val, ri.Val)}, nil
	}
	if lf, rf, ok := asFloats(l, r); ok {
		return &FloatValue{Val: new(big.Float).SetPrec(200).Mul(lf, rf)}, nil
	}
	return nil, opErr(errors.KindBadBinary, "cannot multiply %s and %s", l.TypeName(), r.TypeName())
}

// Div implements binary `/`. Per spec.md §4.3, int/int division ALWAYS
// promotes to float — it never performs truncating integer division.
func Div(l, r Value) (Value, *errors.VanillaError) {
	lf, rf, ok := asFloats(l, r)
	if !ok {
		return nil, opErr(errors.KindBadBinary, "cannot divide %s and %s", l.TypeName(), r.TypeName())
	}
	if rf.Sign() == 0 {
		return nil, opErr(errors.KindBadBinary, "division by zero")
	}
	return &FloatValue{Val: new(big.Float).SetPrec(200).Quo(lf, rf)}, nil
}

// asFloats converts l and r to big.Float if both are int or float (with
// int promoted to float), reporting ok=false if either is some other type.
func asFloats(l, r Value) (*big.Float, *big.Float, bool) {
	lf, lok := toFloatOperand(l)
	rf, rok := toFloatOperand(r)
	if !lok || !rok {
		return nil, nil, false
	}
	return lf, rf, true
}

func toFloatOperand(v Value) (*big.Float, bool) {
	switch t := v.(type) {
	case *IntegerValue:
		return intToFloat(t.Val), true
	case *FloatValue:
		return t.Val, true
	}
	return nil, false
}

func boolValue(b bool) *BoolValue {
	if b {
		return &BoolValue{Val: True}
	}
	return &BoolValue{Val: False}
}

// compareNumeric returns -1, 0, or 1 comparing l and r numerically. Both
// must be int or float.
func compareNumeric(l, r Value) (int, bool) {
	li, lIsInt := l.(*IntegerValue)
	ri, rIsInt := r.(*IntegerValue)
	if lIsInt && rIsInt {
		return li.Val.Cmp(ri.Val), true
	}
	if lf, rf, ok := asFloats(l, r); ok {
		return lf.Cmp(rf), true
	}
	return 0, false
}

// Lt, Le, Gt, Ge implement the relational operators (spec.md §4.3:
// int/int and mixed int/float compare numerically).
func Lt(l, r Value) (Value, *errors.VanillaError) {
	c, ok := compareNumeric(l, r)
	if !ok {
		return nil, opErr(errors.KindBadBinary, "cannot compare %s and %s", l.TypeName(), r.TypeName())
	}
	return boolValue(c < 0), nil
}

func Le(l, r Value) (Value, *errors.VanillaError) {
	c, ok := compareNumeric(l, r)
	if !ok {
		return nil, opErr(errors.KindBadBinary, "cannot compare %s and %s", l.TypeName(), r.TypeName())
	}
	return boolValue(c <= 0), nil
}

func Gt(l, r Value) (Value, *errors.VanillaError) {
	c, ok := compareNumeric(l, r)
	if !ok {
		return nil, opErr(errors.KindBadBinary, "cannot compare %s and %s", l.TypeName(), r.TypeName())
	}
	return boolValue(c > 0), nil
}

func Ge(l, r Value) (Value, *errors.VanillaError) {
	c, ok := compareNumeric(l, r)
	if !ok {
		return nil, opErr(errors.KindBadBinary, "cannot compare %s and %s", l.TypeName(), r.TypeName())
	}
	return boolValue(c >= 0), nil
}

// Eq and Neq implement equality (spec.md §4.3: int vs float equal only
// when the float is integer-valued and numerically equal; any other
// cross-type combination is bad-binary, per the corrected behavior of the
// historical copy-paste bug documented in spec.md §9).
func Eq(l, r Value) (Value, *errors.VanillaError) {
	if c, ok := compareNumeric(l, r); ok {
		return boolValue(c == 0), nil
	}

	switch lt := l.(type) {
	case *StringValue:
		if rt, ok := r.(*StringValue); ok {
			return boolValue(lt.Val == rt.Val), nil
		}
	case *BoolValue:
		if rt, ok := r.(*BoolValue); ok {
			return boolValue(lt.Val == rt.Val), nil
		}
	case *NoneValue:
		if _, ok := r.(*NoneValue); ok {
			return boolValue(true), nil
		}
	}
	return nil, opErr(errors.KindBadBinary, "cannot compare %s and %s for equality", l.TypeName(), r.TypeName())
}

func Neq(l, r Value) (Value, *errors.VanillaError) {
	eq, err := Eq(l, r)
	if err != nil {
		return nil, err
	}
	return boolValue(eq.(*BoolValue).Val != True), nil
}

// Concatenate implements `~`: the right operand is converted to string
// first, then appended (spec.md §4.3).
func Concatenate(l, r Value) (Value, *errors.VanillaError) {
	ls, ok := l.(*StringValue)
	if !ok {
		return nil, opErr(errors.KindBadBinary, "cannot concatenate %s and %s", l.TypeName(), r.TypeName())
	}
	return &StringValue{Val: ls.Val + ToString(r)}, nil
}

// ToString is defined on every value (spec.md §4.3): scalars format
// explicitly, other values use a default "<typename object @ addr>" form.
func ToString(v Value) string {
	switch v.(type) {
	case *IntegerValue, *FloatValue, *BoolValue, *StringValue, *NoneValue:
		return v.String()
	default:
		return fmt.Sprintf("<%s object @ %p>", v.TypeName(), v)
	}
}

// ToInt is defined only on int (identity).
func ToInt(v Value) (*IntegerValue, *errors.VanillaError) {
	if i, ok := v.(*IntegerValue); ok {
		return i, nil
	}
	return nil, opErr(errors.KindBadCast, "cannot convert %s to int", v.TypeName())
}

// ToFloatValue is defined on int (promote) and float (identity).
func ToFloatValue(v Value) (*FloatValue, *errors.VanillaError) {
	switch t := v.(type) {
	case *IntegerValue:
		return &FloatValue{Val: intToFloat(t.Val)}, nil
	case *FloatValue:
		return t, nil
	}
	return nil, opErr(errors.KindBadCast, "cannot convert %s to float", v.TypeName())
}

// ToBool is defined only on bool (identity).
func ToBool(v Value) (TriState, *errors.VanillaError) {
	if b, ok := v.(*BoolValue); ok {
		return b.Val, nil
	}
	return False, opErr(errors.KindBadCast, "cannot convert %s to bool", v.TypeName())
}

// SubscriptGet implements `container[index]`, defined only on arrays
// (spec.md §4.3).
func SubscriptGet(container, index Value) (Value, *errors.VanillaError) {
	arr, ok := container.(*ArrayValue)
	if !ok {
		return nil, opErr(errors.KindInvalidOperation, "cannot subscript %s", container.TypeName())
	}
	idx, ok := index.(*IntegerValue)
	if !ok || !idx.Val.IsInt64() {
		return nil, opErr(errors.KindInvalidIndex, "array index must be an int")
	}
	i := idx.Val.Int64()
	if i < 0 || i >= int64(len(arr.Elements)) {
		return nil, opErr(errors.KindInvalidIndex, "index %d out of range [0, %d)", i, len(arr.Elements))
	}
	return arr.Elements[i], nil
}

// SubscriptSet implements array element assignment, part of the §4.3
// operation surface even though the statement grammar only exposes plain
// variable assignment.
func SubscriptSet(container, index, value Value) *errors.VanillaError {
	arr, ok := container.(*ArrayValue)
	if !ok {
		return opErr(errors.KindInvalidOperation, "cannot subscript %s", container.TypeName())
	}
	idx, ok := index.(*IntegerValue)
	if !ok || !idx.Val.IsInt64() {
		return opErr(errors.KindInvalidIndex, "array index must be an int")
	}
	i := idx.Val.Int64()
	if i < 0 || i >= int64(len(arr.Elements)) {
		return opErr(errors.KindInvalidIndex, "index %d out of range [0, %d)", i, len(arr.Elements))
	}
	arr.Elements[i] = value
	return nil
}

// ElementGet implements dot access (spec.md §4.3): `length` on arrays;
// `int`, `float`, `string`, `sqrt` on ints.
func ElementGet(v Value, name string) (Value, *errors.VanillaError) {
	switch t := v.(type) {
	case *ArrayValue:
		if name == "length" {
			return NewInt(int64(len(t.Elements))), nil
		}
	case *IntegerValue:
		switch name {
		case "int":
			return t, nil
		case "float":
			return &FloatValue{Val: intToFloat(t.Val)}, nil
		case "string":
			return &StringValue{Val: t.Val.String()}, nil
		case "sqrt":
			f := intToFloat(t.Val)
			return &FloatValue{Val: new(big.Float).SetPrec(200).Sqrt(f)}, nil
		}
	}
	return nil, opErr(errors.KindUnsupportedOperation, "%s has no element %q", v.TypeName(), name)
}

// ElementSet implements element assignment by name, part of the §4.3
// operation surface. No Vanilla value variant currently exposes a
// settable named element, so every call fails unsupported-operation.
func ElementSet(v Value, name string, _ Value) *errors.VanillaError {
	return opErr(errors.KindUnsupportedOperation, "%s has no settable element %q", v.TypeName(), name)
}
