package transcoder

import (
	"github.com/wippyai/hostvalue/transcoder/internal/types"
)

type Shape = types.Shape
type ShapeKind = types.Kind
type ShapeField = types.Field
type ShapeVariant = types.Variant
type VariantForm = types.Form

const (
	ShapeAny           = types.KindAny
	ShapeUnit          = types.KindUnit
	ShapeBool          = types.KindBool
	ShapeI8            = types.KindI8
	ShapeI16           = types.KindI16
	ShapeI32           = types.KindI32
	ShapeI64           = types.KindI64
	ShapeU8            = types.KindU8
	ShapeU16           = types.KindU16
	ShapeU32           = types.KindU32
	ShapeU64           = types.KindU64
	ShapeF32           = types.KindF32
	ShapeF64           = types.KindF64
	ShapeChar          = types.KindChar
	ShapeString        = types.KindString
	ShapeBytes         = types.KindBytes
	ShapeOption        = types.KindOption
	ShapeUnitStruct    = types.KindUnitStruct
	ShapeNewtypeStruct = types.KindNewtypeStruct
	ShapeSeq           = types.KindSeq
	ShapeTuple         = types.KindTuple
	ShapeTupleStruct   = types.KindTupleStruct
	ShapeMap           = types.KindMap
	ShapeStruct        = types.KindStruct
	ShapeEnum          = types.KindEnum
)

const (
	FormUnit    = types.FormUnit
	FormNewtype = types.FormNewtype
	FormTuple   = types.FormTuple
	FormStruct  = types.FormStruct
)

// Primitive returns a shape for a scalar kind (ShapeUnit through ShapeBytes) or ShapeAny.
func Primitive(kind ShapeKind) *Shape {
	return &Shape{Kind: kind}
}

func OptionOf(elem *Shape) *Shape {
	return &Shape{Kind: ShapeOption, Elem: elem}
}

func SeqOf(elem *Shape) *Shape {
	return &Shape{Kind: ShapeSeq, Elem: elem}
}

func MapOf(key, value *Shape) *Shape {
	return &Shape{Kind: ShapeMap, Key: key, Value: value}
}

func TupleOf(elems ...*Shape) *Shape {
	return &Shape{Kind: ShapeTuple, Elems: elems}
}

func UnitStructOf(name string) *Shape {
	return &Shape{Kind: ShapeUnitStruct, Name: name}
}

func NewtypeStructOf(name string, inner *Shape) *Shape {
	return &Shape{Kind: ShapeNewtypeStruct, Name: name, Elem: inner}
}

func TupleStructOf(name string, elems ...*Shape) *Shape {
	return &Shape{Kind: ShapeTupleStruct, Name: name, Elems: elems}
}

func StructOf(name string, fields ...ShapeField) *Shape {
	return &Shape{Kind: ShapeStruct, Name: name, Fields: fields}
}

// FieldOf declares a struct field. Fields built this way have no Go counterpart.
func FieldOf(name string, shape *Shape) ShapeField {
	return ShapeField{Name: name, Shape: shape, GoIndex: -1}
}

func EnumOf(name string, variants ...ShapeVariant) *Shape {
	return &Shape{Kind: ShapeEnum, Name: name, Variants: variants}
}

func UnitCase(name string) ShapeVariant {
	return ShapeVariant{Name: name, Form: FormUnit}
}

func NewtypeCase(name string, payload *Shape) ShapeVariant {
	return ShapeVariant{Name: name, Form: FormNewtype, Payload: payload}
}

func TupleCase(name string, elems ...*Shape) ShapeVariant {
	return ShapeVariant{Name: name, Form: FormTuple, Payload: TupleOf(elems...)}
}

func StructCase(name string, fields ...ShapeField) ShapeVariant {
	return ShapeVariant{Name: name, Form: FormStruct, Payload: StructOf(name, fields...)}
}
