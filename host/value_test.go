package host

import (
	"math"
	"math/big"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"undefined", KindUndefined},
		{"null", KindNull},
		{"boolean", KindBoolean},
		{"number", KindNumber},
		{"bigint", KindBigInt},
		{"string", KindString},
		{"array", KindArray},
		{"object", KindObject},
		{"uint8array", KindTypedByteArray},
		{"unknown", Kind(200)},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != KindUndefined {
		t.Error("nil should read as undefined")
	}
	if KindOf(NewArray()) != KindArray || KindOf(Null{}) != KindNull {
		t.Error("KindOf should report the value's own kind")
	}
}

func TestObject_InsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", Number(1))
	o.Set("a", Number(2))
	o.Set("b", Number(3))

	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("Keys() = %v, want [b a]", keys)
	}
	v, ok := o.Get("b")
	if !ok || v != Number(3) {
		t.Errorf("Get(b) = %v, %v; want 3, true", v, ok)
	}

	o.Set("u", Undefined{})
	if _, ok := o.Get("u"); !ok {
		t.Error("property set to undefined should exist")
	}
	if _, ok := o.Get("missing"); ok {
		t.Error("missing property should not exist")
	}

	keys[0] = "mutated"
	if o.Keys()[0] != "b" {
		t.Error("Keys() should return a copy")
	}
}

func TestObject_ZeroValue(t *testing.T) {
	var o Object
	o.Set("x", Boolean(true))
	if o.Len() != 1 {
		t.Errorf("Len() = %d, want 1", o.Len())
	}
}

func TestTypedByteArray_Copies(t *testing.T) {
	src := []byte{1, 2, 3}
	arr := NewTypedByteArray(len(src))
	if n := arr.CopyFrom(src); n != 3 {
		t.Fatalf("CopyFrom = %d, want 3", n)
	}
	src[0] = 10
	if arr.At(0) != 1 {
		t.Errorf("array aliased the source: At(0) = %d", arr.At(0))
	}

	dst := make([]byte, 3)
	arr.CopyTo(dst)
	arr.SetAt(1, 20)
	if dst[1] != 2 {
		t.Errorf("destination aliased the array: dst[1] = %d", dst[1])
	}
}

func TestBigInt(t *testing.T) {
	b := BigIntFromUint64(math.MaxUint64)
	if _, ok := b.Int64(); ok {
		t.Error("MaxUint64 should not fit int64")
	}
	if v, ok := b.Uint64(); !ok || v != math.MaxUint64 {
		t.Errorf("Uint64() = %d, %v", v, ok)
	}

	src := big.NewInt(7)
	c := NewBigInt(src)
	src.SetInt64(8)
	if v, _ := c.Int64(); v != 7 {
		t.Errorf("NewBigInt should copy, got %d", v)
	}

	var zero BigInt
	if zero.String() != "0" {
		t.Errorf("zero BigInt String() = %q", zero.String())
	}
}

func TestNumber_IsSafeInteger(t *testing.T) {
	tests := []struct {
		n    Number
		want bool
	}{
		{0, true},
		{MaxSafeInteger, true},
		{-MaxSafeInteger, true},
		{MaxSafeInteger + 1, false},
		{0.5, false},
		{NaN, false},
		{PosInfinity, false},
	}
	for _, tc := range tests {
		if got := tc.n.IsSafeInteger(); got != tc.want {
			t.Errorf("Number(%v).IsSafeInteger() = %v, want %v", float64(tc.n), got, tc.want)
		}
	}
}

func TestString_UTF16Len(t *testing.T) {
	tests := []struct {
		s    String
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\x00", 1},
		{"😃", 2},
	}
	for _, tc := range tests {
		if got := tc.s.UTF16Len(); got != tc.want {
			t.Errorf("%q.UTF16Len() = %d, want %d", string(tc.s), got, tc.want)
		}
	}
}

func TestEquality(t *testing.T) {
	negZero := Number(math.Copysign(0, -1))
	arr := NewArray(Number(1))

	t.Run("nan", func(t *testing.T) {
		if StrictEqual(NaN, NaN) {
			t.Error("NaN === NaN should be false")
		}
		if !SameValue(NaN, NaN) {
			t.Error("Object.is(NaN, NaN) should be true")
		}
		if !IsNaN(NaN) || IsNaN(Number(1)) || IsNaN(String("NaN")) {
			t.Error("IsNaN predicate is wrong")
		}
	})

	t.Run("zero", func(t *testing.T) {
		if !StrictEqual(Number(0), negZero) {
			t.Error("0 === -0 should be true")
		}
		if SameValue(Number(0), negZero) {
			t.Error("Object.is(0, -0) should be false")
		}
	})

	t.Run("kinds", func(t *testing.T) {
		if StrictEqual(Undefined{}, Null{}) {
			t.Error("undefined === null should be false")
		}
		if StrictEqual(Number(1), BigIntFromInt64(1)) {
			t.Error("1 === 1n should be false")
		}
		if !StrictEqual(BigIntFromInt64(5), BigIntFromUint64(5)) {
			t.Error("5n === 5n should be true")
		}
	})

	t.Run("identity", func(t *testing.T) {
		if !StrictEqual(arr, arr) {
			t.Error("array should equal itself")
		}
		if StrictEqual(arr, NewArray(Number(1))) {
			t.Error("distinct arrays should not be strictly equal")
		}
		if !DeepEqual(arr, NewArray(Number(1))) {
			t.Error("structurally equal arrays should be deep equal")
		}
	})

	t.Run("deep object order", func(t *testing.T) {
		a := NewObject()
		a.Set("x", Number(1))
		a.Set("y", Number(2))
		b := NewObject()
		b.Set("y", Number(2))
		b.Set("x", Number(1))
		if DeepEqual(a, b) {
			t.Error("objects with different key order should differ")
		}
	})
}

func TestInspect(t *testing.T) {
	o := NewObject()
	o.Set("n", Number(math.Copysign(0, -1)))
	o.Set("b", BigIntFromInt64(-3))
	bytes := NewTypedByteArray(2)
	bytes.CopyFrom([]byte{1, 2})
	v := NewArray(Undefined{}, Null{}, Boolean(true), NaN, NegInfinity, String("a"), o, bytes)

	want := `[undefined, null, true, NaN, -Infinity, "a", {"n": -0, "b": -3n}, Uint8Array(2) [1, 2]]`
	if got := Inspect(v); got != want {
		t.Errorf("Inspect() =\n%s\nwant\n%s", got, want)
	}
}
