package transcoder

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/hostvalue/host"
	"github.com/wippyai/hostvalue/model"
)

func roundTrip(t *testing.T, enc *Encoder, dec *Decoder, v model.Value, s *Shape) model.Value {
	t.Helper()
	hv, err := enc.Encode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := dec.Decode(hv, s)
	if err != nil {
		t.Fatalf("Decode(%s) failed: %v", host.Inspect(hv), err)
	}
	return out
}

func TestRoundTrip_ExactTypes(t *testing.T) {
	tests := []struct {
		value model.Value
		shape *Shape
	}{
		{model.Bool(true), Primitive(ShapeBool)},
		{model.Bool(false), nil},
		{model.String(""), nil},
		{model.String("\x00"), Primitive(ShapeString)},
		{model.String("😃 multi ünïcode"), nil},
		{model.Char('a'), Primitive(ShapeChar)},
		{model.Char('😃'), Primitive(ShapeChar)},
		{model.Char(0xFFFF), Primitive(ShapeChar)},
		{model.Char(0x10FFFF), Primitive(ShapeChar)},
	}

	enc, dec := NewEncoder(), NewDecoder()
	for _, tc := range tests {
		t.Run(tc.value.Kind.String(), func(t *testing.T) {
			got := roundTrip(t, enc, dec, tc.value, tc.shape)
			if diff := cmp.Diff(tc.value, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_Numbers(t *testing.T) {
	tests := []struct {
		value model.Value
		shape ShapeKind
	}{
		{model.I8(math.MinInt8), ShapeI8},
		{model.U8(math.MaxUint8), ShapeU8},
		{model.I16(math.MinInt16), ShapeI16},
		{model.U16(math.MaxUint16), ShapeU16},
		{model.I32(math.MinInt32), ShapeI32},
		{model.U32(math.MaxUint32), ShapeU32},
		{model.I64(-host.MaxSafeInteger), ShapeI64},
		{model.U64(host.MaxSafeInteger), ShapeU64},
		{model.F32(0x1p-126), ShapeF32},
		{model.F32(-0.42), ShapeF32},
		{model.F64(0x1p-52), ShapeF64},
		{model.F64(math.SmallestNonzeroFloat64), ShapeF64},
		{model.F64(math.Inf(-1)), ShapeF64},
	}

	enc, dec := NewEncoder(), NewDecoder()
	for _, tc := range tests {
		t.Run(tc.value.Kind.String(), func(t *testing.T) {
			got := roundTrip(t, enc, dec, tc.value, Primitive(tc.shape))
			if diff := cmp.Diff(tc.value, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_BigInt64(t *testing.T) {
	enc := NewEncoderWithOptions(Options{Int64: Int64BigIntWhenUnsafe})
	dec := NewDecoder()

	for _, v := range []model.Value{
		model.I64(math.MinInt64),
		model.I64(math.MaxInt64),
		model.I64(3),
	} {
		got := roundTrip(t, enc, dec, v, Primitive(ShapeI64))
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}

	v := model.U64(math.MaxUint64)
	got := roundTrip(t, enc, dec, v, Primitive(ShapeU64))
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Composite(t *testing.T) {
	color := EnumOf("Color",
		UnitCase("Red"),
		TupleCase("Rgb", Primitive(ShapeU8), Primitive(ShapeU8), Primitive(ShapeU8)),
	)
	shape := StructOf("Palette",
		FieldOf("name", Primitive(ShapeString)),
		FieldOf("colors", SeqOf(color)),
		FieldOf("weights", MapOf(Primitive(ShapeString), Primitive(ShapeF32))),
		FieldOf("ids", MapOf(Primitive(ShapeU64), Primitive(ShapeBool))),
		FieldOf("icon", OptionOf(Primitive(ShapeBytes))),
		FieldOf("note", OptionOf(Primitive(ShapeString))),
	)
	v := model.Struct("Palette",
		model.FieldOf("name", model.String("warm")),
		model.FieldOf("colors", model.Seq(
			model.UnitVariant("Color", 0, "Red"),
			model.TupleVariant("Color", 1, "Rgb", model.U8(255), model.U8(128), model.U8(0)),
		)),
		model.FieldOf("weights", model.Map(
			model.EntryOf(model.String("a"), model.F32(0.5)),
		)),
		model.FieldOf("ids", model.Map(
			model.EntryOf(model.U64(10), model.Bool(true)),
			model.EntryOf(model.U64(2), model.Bool(false)),
		)),
		model.FieldOf("icon", model.Some(model.Bytes([]byte{1, 2, 3}))),
		model.FieldOf("note", model.None()),
	)

	for _, opts := range []Options{
		DefaultOptions(),
		{MapMode: MapAsPairs, MissingAsNull: true, BytesAsArray: true},
	} {
		got := roundTrip(t, NewEncoderWithOptions(opts), NewDecoderWithOptions(opts), v, shape)
		if diff := cmp.Diff(v, got, modelOpts); diff != "" {
			t.Errorf("%s/%v mismatch (-want +got):\n%s", opts.MapMode, opts.MissingAsNull, diff)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	enc, dec := NewEncoder(), NewDecoder()
	shape := SeqOf(StructOf("P", FieldOf("n", Primitive(ShapeI32))))

	var g errgroup.Group
	for w := 0; w < 16; w++ {
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				want := int32(w*1000 + i)
				v := model.Seq(model.Struct("P", model.FieldOf("n", model.I32(want))))
				hv, err := enc.Encode(v)
				if err != nil {
					return err
				}
				out, err := dec.Decode(hv, shape)
				if err != nil {
					return err
				}
				if n, _ := out.Elems[0].Field("n"); n.Int != int64(want) {
					return fmt.Errorf("worker %d: got %d, want %d", w, n.Int, want)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Errorf("concurrent conversion failed: %v", err)
	}
}
