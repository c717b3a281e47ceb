package model

// Kind is the data-model category of a Value.
type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindChar
	KindString
	KindBytes
	KindOption
	KindUnitStruct
	KindNewtypeStruct
	KindSeq
	KindTuple
	KindTupleStruct
	KindMap
	KindStruct
	KindUnitVariant
	KindNewtypeVariant
	KindTupleVariant
	KindStructVariant
)

var kindNames = [...]string{
	KindUnit:           "unit",
	KindBool:           "bool",
	KindI8:             "i8",
	KindI16:            "i16",
	KindI32:            "i32",
	KindI64:            "i64",
	KindU8:             "u8",
	KindU16:            "u16",
	KindU32:            "u32",
	KindU64:            "u64",
	KindF32:            "f32",
	KindF64:            "f64",
	KindChar:           "char",
	KindString:         "string",
	KindBytes:          "bytes",
	KindOption:         "option",
	KindUnitStruct:     "unit_struct",
	KindNewtypeStruct:  "newtype_struct",
	KindSeq:            "seq",
	KindTuple:          "tuple",
	KindTupleStruct:    "tuple_struct",
	KindMap:            "map",
	KindStruct:         "struct",
	KindUnitVariant:    "unit_variant",
	KindNewtypeVariant: "newtype_variant",
	KindTupleVariant:   "tuple_variant",
	KindStructVariant:  "struct_variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI64
}

func (k Kind) IsUnsigned() bool {
	return k >= KindU8 && k <= KindU64
}

func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k Kind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}

// IsPrimitive reports scalar kinds, text and bytes included.
func (k Kind) IsPrimitive() bool {
	return k <= KindBytes
}

func (k Kind) IsVariant() bool {
	return k >= KindUnitVariant
}

// Width returns the bit width of numeric kinds and 0 otherwise.
func (k Kind) Width() int {
	switch k {
	case KindI8, KindU8:
		return 8
	case KindI16, KindU16:
		return 16
	case KindI32, KindU32, KindF32:
		return 32
	case KindI64, KindU64, KindF64:
		return 64
	default:
		return 0
	}
}
