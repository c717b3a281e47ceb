package types

import "github.com/wippyai/hostvalue/model"

type Kind uint8

const (
	KindAny Kind = iota
	KindUnit
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
	KindEnum
)

var kindNames = [...]string{
	KindAny:           "any",
	KindUnit:          "unit",
	KindBool:          "bool",
	KindI8:            "i8",
	KindI16:           "i16",
	KindI32:           "i32",
	KindI64:           "i64",
	KindU8:            "u8",
	KindU16:           "u16",
	KindU32:           "u32",
	KindU64:           "u64",
	KindF32:           "f32",
	KindF64:           "f64",
	KindChar:          "char",
	KindString:        "string",
	KindBytes:         "bytes",
	KindOption:        "option",
	KindUnitStruct:    "unit_struct",
	KindNewtypeStruct: "newtype_struct",
	KindSeq:           "seq",
	KindTuple:         "tuple",
	KindTupleStruct:   "tuple_struct",
	KindMap:           "map",
	KindStruct:        "struct",
	KindEnum:          "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k >= KindUnit && k <= KindBytes
}

func (k Kind) IsInteger() bool {
	return k >= KindI8 && k <= KindU64
}

func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI64
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

// ModelKind maps primitive shape kinds to the value kind they decode into.
func (k Kind) ModelKind() (model.Kind, bool) {
	switch k {
	case KindUnit:
		return model.KindUnit, true
	case KindBool:
		return model.KindBool, true
	case KindI8:
		return model.KindI8, true
	case KindI16:
		return model.KindI16, true
	case KindI32:
		return model.KindI32, true
	case KindI64:
		return model.KindI64, true
	case KindU8:
		return model.KindU8, true
	case KindU16:
		return model.KindU16, true
	case KindU32:
		return model.KindU32, true
	case KindU64:
		return model.KindU64, true
	case KindF32:
		return model.KindF32, true
	case KindF64:
		return model.KindF64, true
	case KindChar:
		return model.KindChar, true
	case KindString:
		return model.KindString, true
	case KindBytes:
		return model.KindBytes, true
	}
	return 0, false
}

// Form is the payload form of an enum variant.
type Form uint8

const (
	FormUnit Form = iota
	FormNewtype
	FormTuple
	FormStruct
)

var formNames = [...]string{
	FormUnit:    "unit",
	FormNewtype: "newtype",
	FormTuple:   "tuple",
	FormStruct:  "struct",
}

func (f Form) String() string {
	if int(f) < len(formNames) {
		return formNames[f]
	}
	return "unknown"
}
