package host

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// IsNaN reports whether v is a Number holding NaN.
func IsNaN(v Value) bool {
	n, ok := v.(Number)
	return ok && math.IsNaN(float64(n))
}

// IsNullish reports whether v is Undefined or Null.
func IsNullish(v Value) bool {
	k := KindOf(v)
	return k == KindUndefined || k == KindNull
}

// UTF16Len is the host-visible length of s, counted in UTF-16 code units.
func (s String) UTF16Len() int {
	n := 0
	for _, r := range string(s) {
		n += utf16.RuneLen(r)
	}
	return n
}

// StrictEqual implements "===".
func StrictEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Undefined, Null:
		return true
	case Boolean:
		return x == b.(Boolean)
	case Number:
		return float64(x) == float64(b.(Number))
	case BigInt:
		return x.cmp(b.(BigInt)) == 0
	case String:
		return x == b.(String)
	case *Array:
		return x == b.(*Array)
	case *Object:
		return x == b.(*Object)
	case *TypedByteArray:
		return x == b.(*TypedByteArray)
	}
	return false
}

// SameValue implements Object.is: NaN equals NaN and +0 differs from -0.
func SameValue(a, b Value) bool {
	na, okA := a.(Number)
	nb, okB := b.(Number)
	if okA && okB {
		fa, fb := float64(na), float64(nb)
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb && math.Signbit(fa) == math.Signbit(fb)
	}
	return StrictEqual(a, b)
}

// DeepEqual compares structure, using SameValue for scalars.
func DeepEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Array:
		y := b.(*Array)
		if len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !DeepEqual(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if len(x.keys) != len(y.keys) {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !DeepEqual(x.props[k], y.props[k]) {
				return false
			}
		}
		return true
	case *TypedByteArray:
		y := b.(*TypedByteArray)
		return string(x.data) == string(y.data)
	}
	return SameValue(a, b)
}

// Inspect renders v in a literal-like form for diagnostics.
func Inspect(v Value) string {
	var b strings.Builder
	inspect(&b, v)
	return b.String()
}

func inspect(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		b.WriteString("<nil>")
	case Undefined:
		b.WriteString("undefined")
	case Null:
		b.WriteString("null")
	case Boolean:
		b.WriteString(strconv.FormatBool(bool(x)))
	case Number:
		b.WriteString(formatNumber(float64(x)))
	case BigInt:
		b.WriteString(x.String())
		b.WriteByte('n')
	case String:
		b.WriteString(strconv.Quote(string(x)))
	case *Array:
		b.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			inspect(b, e)
		}
		b.WriteByte(']')
	case *Object:
		b.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			inspect(b, x.props[k])
		}
		b.WriteByte('}')
	case *TypedByteArray:
		b.WriteString("Uint8Array(")
		b.WriteString(strconv.Itoa(len(x.data)))
		b.WriteString(") [")
		for i, c := range x.data {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(int(c)))
		}
		b.WriteByte(']')
	default:
		b.WriteString("<unknown>")
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0 && math.Signbit(f):
		return "-0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
