package model

// Value is one serializable value. Kind decides which fields carry the payload:
//
//	Bool                          Bool
//	I8..I64                       Int
//	U8..U64                       Uint
//	F32, F64                      Float (F32 widened exactly)
//	Char                          Char
//	String                        Str
//	Bytes                         Bytes (borrowed, never mutated)
//	Option                        Inner (nil when absent)
//	NewtypeStruct                 Name, Inner
//	UnitStruct                    Name
//	Seq, Tuple                    Elems
//	TupleStruct                   Name, Elems
//	Map                           Entries
//	Struct                        Name, Fields
//	UnitVariant                   Name, Index, Variant
//	NewtypeVariant                Name, Index, Variant, Inner
//	TupleVariant                  Name, Index, Variant, Elems
//	StructVariant                 Name, Index, Variant, Fields
type Value struct {
	Inner   *Value
	Bytes   []byte
	Elems   []Value
	Entries []Entry
	Fields  []Field
	Name    string
	Variant string
	Str     string
	Int     int64
	Uint    uint64
	Float   float64
	Index   uint32
	Char    rune
	Kind    Kind
	Bool    bool
}

// Entry is one map key/value pair.
type Entry struct {
	Key   Value
	Value Value
}

// Field is one named struct field.
type Field struct {
	Name  string
	Value Value
}

func EntryOf(k, v Value) Entry {
	return Entry{Key: k, Value: v}
}

func FieldOf(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

func Unit() Value                { return Value{Kind: KindUnit} }
func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func I8(v int8) Value            { return Value{Kind: KindI8, Int: int64(v)} }
func I16(v int16) Value          { return Value{Kind: KindI16, Int: int64(v)} }
func I32(v int32) Value          { return Value{Kind: KindI32, Int: int64(v)} }
func I64(v int64) Value          { return Value{Kind: KindI64, Int: v} }
func U8(v uint8) Value           { return Value{Kind: KindU8, Uint: uint64(v)} }
func U16(v uint16) Value         { return Value{Kind: KindU16, Uint: uint64(v)} }
func U32(v uint32) Value         { return Value{Kind: KindU32, Uint: uint64(v)} }
func U64(v uint64) Value         { return Value{Kind: KindU64, Uint: v} }
func F32(v float32) Value        { return Value{Kind: KindF32, Float: float64(v)} }
func F64(v float64) Value        { return Value{Kind: KindF64, Float: v} }
func Char(r rune) Value          { return Value{Kind: KindChar, Char: r} }
func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func Bytes(b []byte) Value       { return Value{Kind: KindBytes, Bytes: b} }
func Seq(elems ...Value) Value   { return Value{Kind: KindSeq, Elems: elems} }
func Tuple(elems ...Value) Value { return Value{Kind: KindTuple, Elems: elems} }
func Map(entries ...Entry) Value { return Value{Kind: KindMap, Entries: entries} }

// None is an absent optional.
func None() Value { return Value{Kind: KindOption} }

// Some is a present optional.
func Some(v Value) Value { return Value{Kind: KindOption, Inner: &v} }

func UnitStruct(name string) Value { return Value{Kind: KindUnitStruct, Name: name} }

func NewtypeStruct(name string, v Value) Value {
	return Value{Kind: KindNewtypeStruct, Name: name, Inner: &v}
}

func TupleStruct(name string, elems ...Value) Value {
	return Value{Kind: KindTupleStruct, Name: name, Elems: elems}
}

func Struct(name string, fields ...Field) Value {
	return Value{Kind: KindStruct, Name: name, Fields: fields}
}

func UnitVariant(enum string, index uint32, variant string) Value {
	return Value{Kind: KindUnitVariant, Name: enum, Index: index, Variant: variant}
}

func NewtypeVariant(enum string, index uint32, variant string, v Value) Value {
	return Value{Kind: KindNewtypeVariant, Name: enum, Index: index, Variant: variant, Inner: &v}
}

func TupleVariant(enum string, index uint32, variant string, elems ...Value) Value {
	return Value{Kind: KindTupleVariant, Name: enum, Index: index, Variant: variant, Elems: elems}
}

func StructVariant(enum string, index uint32, variant string, fields ...Field) Value {
	return Value{Kind: KindStructVariant, Name: enum, Index: index, Variant: variant, Fields: fields}
}

// IsSome reports whether an Option holds a value.
func (v Value) IsSome() bool {
	return v.Kind == KindOption && v.Inner != nil
}

// Field returns the named field of a Struct or StructVariant.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Marshaler is implemented by types that produce their own model value.
type Marshaler interface {
	MarshalModel() (Value, error)
}

// Unmarshaler is implemented by types that rebuild themselves from a model value.
type Unmarshaler interface {
	UnmarshalModel(Value) error
}
