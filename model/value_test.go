package model

import (
	"math"
	"testing"
)

func TestConstructors(t *testing.T) {
	if v := I8(-5); v.Kind != KindI8 || v.Int != -5 {
		t.Errorf("I8(-5) = %+v", v)
	}
	if v := U64(math.MaxUint64); v.Kind != KindU64 || v.Uint != math.MaxUint64 {
		t.Errorf("U64(max) = %+v", v)
	}
	if v := F32(0.42); v.Float != float64(float32(0.42)) {
		t.Errorf("F32 should widen exactly, got %v", v.Float)
	}
	if v := Char('😃'); v.Kind != KindChar || v.Char != '😃' {
		t.Errorf("Char = %+v", v)
	}
}

func TestOption(t *testing.T) {
	if None().IsSome() {
		t.Error("None should not be present")
	}
	inner := I32(7)
	some := Some(inner)
	if !some.IsSome() || some.Inner.Int != 7 {
		t.Errorf("Some(7) = %+v", some)
	}
	inner.Int = 8
	if some.Inner.Int != 7 {
		t.Error("Some should hold its own copy of the inner value")
	}
	if I32(1).IsSome() {
		t.Error("non-option values are never present optionals")
	}
}

func TestVariants(t *testing.T) {
	v := StructVariant("Shape", 2, "Rect",
		FieldOf("w", F64(2)),
		FieldOf("h", F64(3)),
	)
	if v.Kind != KindStructVariant || v.Name != "Shape" || v.Index != 2 || v.Variant != "Rect" {
		t.Errorf("StructVariant = %+v", v)
	}
	h, ok := v.Field("h")
	if !ok || h.Float != 3 {
		t.Errorf("Field(h) = %+v, %v", h, ok)
	}
	if _, ok := v.Field("d"); ok {
		t.Error("Field(d) should be missing")
	}

	nv := NewtypeVariant("Msg", 0, "Text", String("hi"))
	if nv.Inner == nil || nv.Inner.Str != "hi" {
		t.Errorf("NewtypeVariant = %+v", nv)
	}
}

func TestMapEntries(t *testing.T) {
	m := Map(EntryOf(String("a"), I32(1)), EntryOf(String("b"), I32(2)))
	if len(m.Entries) != 2 || m.Entries[1].Key.Str != "b" {
		t.Errorf("Map = %+v", m)
	}
}
