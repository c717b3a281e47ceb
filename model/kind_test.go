package model

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"unit", KindUnit},
		{"bool", KindBool},
		{"i8", KindI8},
		{"u64", KindU64},
		{"f32", KindF32},
		{"char", KindChar},
		{"bytes", KindBytes},
		{"option", KindOption},
		{"newtype_struct", KindNewtypeStruct},
		{"tuple_struct", KindTupleStruct},
		{"map", KindMap},
		{"struct_variant", KindStructVariant},
		{"unknown", Kind(255)},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindClassification(t *testing.T) {
	signed := []Kind{KindI8, KindI16, KindI32, KindI64}
	unsigned := []Kind{KindU8, KindU16, KindU32, KindU64}

	for _, k := range signed {
		if !k.IsSigned() || k.IsUnsigned() || !k.IsInteger() {
			t.Errorf("%s misclassified", k)
		}
	}
	for _, k := range unsigned {
		if k.IsSigned() || !k.IsUnsigned() || !k.IsInteger() {
			t.Errorf("%s misclassified", k)
		}
	}
	for _, k := range []Kind{KindF32, KindF64} {
		if !k.IsFloat() || k.IsInteger() {
			t.Errorf("%s misclassified", k)
		}
	}
	for _, k := range []Kind{KindUnit, KindChar, KindString, KindBytes} {
		if !k.IsPrimitive() {
			t.Errorf("%s should be primitive", k)
		}
	}
	for _, k := range []Kind{KindOption, KindSeq, KindMap, KindStruct, KindUnitVariant} {
		if k.IsPrimitive() {
			t.Errorf("%s should not be primitive", k)
		}
	}
	for _, k := range []Kind{KindUnitVariant, KindNewtypeVariant, KindTupleVariant, KindStructVariant} {
		if !k.IsVariant() {
			t.Errorf("%s should be a variant", k)
		}
	}
}

func TestKindWidth(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindI8, 8},
		{KindU16, 16},
		{KindI32, 32},
		{KindF32, 32},
		{KindU64, 64},
		{KindF64, 64},
		{KindString, 0},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.Width(); got != tc.want {
				t.Errorf("Width() = %d, want %d", got, tc.want)
			}
		})
	}
}
