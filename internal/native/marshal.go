package native

import (
	"math"
	"math/big"
	"unsafe"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/interp"
	"github.com/cwbudde/vanilla/internal/token"
)

// marshalArg packs a Vanilla Value into the uintptr purego.SyscallN expects
// for one call argument, and unmarshalResult unpacks the raw uintptr result
// back into a Value. String arguments (cString) are stateful across a single
// call: the C buffer marshalArg builds must stay alive until the call
// returns, so marshalArg appends it to the caller's keepAlive slice.

// marshalArg converts a single Vanilla argument value into a call-ready
// uintptr per its declared C type (spec.md §4.4).
func marshalArg(t cType, v interp.Value, keepAlive *[]any) (uintptr, *errors.VanillaError) {
	switch t {
	case cInt8, cInt16, cInt32, cInt64, cUint8, cUint16, cUint32, cUint64:
		i, ok := v.(*interp.IntegerValue)
		if !ok {
			return 0, typeMismatch(t, v)
		}
		if !i.Val.IsInt64() {
			return 0, errors.New(errors.KindIntegerConversionOverflow, errors.StageEvaluation, token.Position{},
				"%s does not fit in a native %s argument", i.Val.String(), t)
		}
		return uintptr(i.Val.Int64()), nil

	case cFloat32:
		f, ok := toFloat64(v)
		if !ok {
			return 0, typeMismatch(t, v)
		}
		bits := math.Float32bits(float32(f))
		return uintptr(bits), nil

	case cFloat64, cFloat80:
		f, ok := toFloat64(v)
		if !ok {
			return 0, typeMismatch(t, v)
		}
		// purego's SyscallN recognizes float-typed arguments by their raw
		// IEEE-754 bit pattern boxed into a uintptr (mleku-moxie/runtime/
		// ffi.go's Dlsym sidesteps this by generating typed function
		// pointers; SyscallN's lower-level ABI requires boxing by hand).
		return uintptr(math.Float64bits(f)), nil

	case cString:
		s, ok := v.(*interp.StringValue)
		if !ok {
			return 0, typeMismatch(t, v)
		}
		buf := append([]byte(s.Val), 0) // NUL-terminate for the C callee
		*keepAlive = append(*keepAlive, buf)
		return uintptr(unsafe.Pointer(&buf[0])), nil
	}
	return 0, typeMismatch(t, v)
}

func toFloat64(v interp.Value) (float64, bool) {
	switch t := v.(type) {
	case *interp.FloatValue:
		f, _ := t.Val.Float64()
		return f, true
	case *interp.IntegerValue:
		f := new(big.Float).SetInt(t.Val)
		out, _ := f.Float64()
		return out, true
	}
	return 0, false
}

func typeMismatch(t cType, v interp.Value) *errors.VanillaError {
	return errors.New(errors.KindBadCast, errors.StageEvaluation, token.Position{},
		"cannot marshal %s as native %s argument", v.TypeName(), t)
}

// unmarshalResult converts the raw result register(s) SyscallN returned
// back into a Vanilla Value per the declared return type.
func unmarshalResult(t cType, r1 uintptr) interp.Value {
	switch t {
	case cVoid:
		return interp.None()
	case cInt8:
		return interp.NewInt(int64(int8(r1)))
	case cInt16:
		return interp.NewInt(int64(int16(r1)))
	case cInt32:
		return interp.NewInt(int64(int32(r1)))
	case cInt64:
		return interp.NewInt(int64(r1))
	case cUint8:
		return interp.NewInt(int64(uint8(r1)))
	case cUint16:
		return interp.NewInt(int64(uint16(r1)))
	case cUint32:
		return interp.NewInt(int64(uint32(r1)))
	case cUint64:
		return &interp.IntegerValue{Val: new(big.Int).SetUint64(uint64(r1))}
	case cFloat32:
		return interp.NewFloat(float64(math.Float32frombits(uint32(r1))))
	case cFloat64, cFloat80:
		return interp.NewFloat(math.Float64frombits(uint64(r1)))
	case cString:
		return &interp.StringValue{Val: goStringFromPointer(r1)}
	}
	return interp.None()
}

// goStringFromPointer reads a NUL-terminated C string out of a raw
// returned pointer. Returns "" for a null pointer.
func goStringFromPointer(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var buf []byte
	for i := uintptr(0); ; i++ {
		b := *(*byte)(unsafe.Pointer(ptr + i))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}
