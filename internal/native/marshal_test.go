package native

import (
	"math"
	"testing"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/interp"
)

func TestMarshalIntRoundTrips(t *testing.T) {
	var keepAlive []any
	raw, err := marshalArg(cInt32, interp.NewInt(-7), &keepAlive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := unmarshalResult(cInt32, raw)
	i, ok := got.(*interp.IntegerValue)
	if !ok || i.Val.Int64() != -7 {
		t.Fatalf("expected -7 round trip, got %#v", got)
	}
}

func TestMarshalIntOverflowFails(t *testing.T) {
	var keepAlive []any
	huge := interp.NewInt(0)
	huge.Val.SetString("999999999999999999999999999999", 10)
	_, err := marshalArg(cInt64, huge, &keepAlive)
	if err == nil || err.Kind != errors.KindIntegerConversionOverflow {
		t.Fatalf("expected integer-conversion-overflow, got %v", err)
	}
}

func TestMarshalFloat32RoundTrips(t *testing.T) {
	var keepAlive []any
	raw, err := marshalArg(cFloat32, interp.NewFloat(1.5), &keepAlive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := unmarshalResult(cFloat32, raw)
	f, ok := got.(*interp.FloatValue)
	if !ok {
		t.Fatalf("expected float, got %#v", got)
	}
	val, _ := f.Val.Float64()
	if val != 1.5 {
		t.Fatalf("expected 1.5, got %v", val)
	}
}

func TestMarshalFloat64RoundTrips(t *testing.T) {
	var keepAlive []any
	raw, err := marshalArg(cFloat64, interp.NewFloat(math.Pi), &keepAlive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := unmarshalResult(cFloat64, raw)
	f := got.(*interp.FloatValue)
	val, _ := f.Val.Float64()
	if val != math.Pi {
		t.Fatalf("expected pi, got %v", val)
	}
}

func TestMarshalIntAsFloatArgumentIsPromoted(t *testing.T) {
	var keepAlive []any
	raw, err := marshalArg(cFloat64, interp.NewInt(4), &keepAlive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := unmarshalResult(cFloat64, raw)
	f := got.(*interp.FloatValue)
	val, _ := f.Val.Float64()
	if val != 4 {
		t.Fatalf("expected 4.0, got %v", val)
	}
}

func TestMarshalStringNulTerminatesAndKeepsBufferAlive(t *testing.T) {
	var keepAlive []any
	raw, err := marshalArg(cString, &interp.StringValue{Val: "hi"}, &keepAlive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keepAlive) != 1 {
		t.Fatalf("expected the C buffer to be retained, got %d entries", len(keepAlive))
	}
	got := unmarshalResult(cString, raw)
	s, ok := got.(*interp.StringValue)
	if !ok || s.Val != "hi" {
		t.Fatalf("expected %q, got %#v", "hi", got)
	}
}

func TestMarshalTypeMismatchIsBadCast(t *testing.T) {
	var keepAlive []any
	_, err := marshalArg(cInt32, &interp.StringValue{Val: "nope"}, &keepAlive)
	if err == nil || err.Kind != errors.KindBadCast {
		t.Fatalf("expected bad-cast, got %v", err)
	}
}

func TestUnmarshalVoidYieldsNone(t *testing.T) {
	got := unmarshalResult(cVoid, 12345)
	if got != interp.None() {
		t.Fatalf("expected the shared none value, got %#v", got)
	}
}

func TestUnmarshalNullStringPointerIsEmpty(t *testing.T) {
	got := unmarshalResult(cString, 0)
	s := got.(*interp.StringValue)
	if s.Val != "" {
		t.Fatalf("expected empty string for a null pointer, got %q", s.Val)
	}
}

func TestUnmarshalUint64PreservesHighBit(t *testing.T) {
	const raw = uintptr(1) << 63
	got := unmarshalResult(cUint64, raw)
	i := got.(*interp.IntegerValue)
	if !i.Val.IsUint64() || i.Val.Uint64() != uint64(raw) {
		t.Fatalf("expected uint64 high-bit value preserved, got %s", i.Val.String())
	}
}
