package transcoder

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/hostvalue/errors"
)

// ShapeFromWIT derives a decoding shape from a WIT type:
//
//	bool, s8..s64, u8..u64, f32, f64   matching primitive
//	char, string                       char, string
//	list<u8>                           bytes
//	list<T>                            seq<T>
//	option<T>                          option<T>
//	tuple<...>                         tuple
//	record                             struct, fields in declaration order
//	flags                              struct of bool fields
//	enum                               enum of unit variants
//	variant                            enum, newtype variant per payload case
//	result<T, E>                       enum with variants "Ok" and "Err"
//
// Resource handles have no host value representation and are rejected.
func ShapeFromWIT(t wit.Type) (*Shape, error) {
	return shapeFromWIT(t, nil, make(map[*wit.TypeDef]*Shape))
}

func shapeFromWIT(t wit.Type, path []string, memo map[*wit.TypeDef]*Shape) (*Shape, error) {
	switch t := t.(type) {
	case nil:
		return Primitive(ShapeUnit), nil
	case wit.Bool:
		return Primitive(ShapeBool), nil
	case wit.S8:
		return Primitive(ShapeI8), nil
	case wit.S16:
		return Primitive(ShapeI16), nil
	case wit.S32:
		return Primitive(ShapeI32), nil
	case wit.S64:
		return Primitive(ShapeI64), nil
	case wit.U8:
		return Primitive(ShapeU8), nil
	case wit.U16:
		return Primitive(ShapeU16), nil
	case wit.U32:
		return Primitive(ShapeU32), nil
	case wit.U64:
		return Primitive(ShapeU64), nil
	case wit.F32:
		return Primitive(ShapeF32), nil
	case wit.F64:
		return Primitive(ShapeF64), nil
	case wit.Char:
		return Primitive(ShapeChar), nil
	case wit.String:
		return Primitive(ShapeString), nil
	case *wit.TypeDef:
		if s, ok := memo[t]; ok {
			return s, nil
		}
		s, err := shapeFromTypeDef(t, path, memo)
		if err != nil {
			return nil, err
		}
		memo[t] = s
		return s, nil
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, path, fmt.Sprintf("unsupported WIT type: %T", t))
	}
}

func typeDefName(t *wit.TypeDef) string {
	if t.Name != nil {
		return *t.Name
	}
	return ""
}

func shapeFromTypeDef(t *wit.TypeDef, path []string, memo map[*wit.TypeDef]*Shape) (*Shape, error) {
	name := typeDefName(t)

	switch kind := t.Kind.(type) {
	case *wit.Record:
		fields := make([]ShapeField, len(kind.Fields))
		for i, f := range kind.Fields {
			fs, err := shapeFromWIT(f.Type, appendPath(path, f.Name), memo)
			if err != nil {
				return nil, err
			}
			fields[i] = FieldOf(f.Name, fs)
		}
		return StructOf(name, fields...), nil
	case *wit.List:
		if _, ok := kind.Type.(wit.U8); ok {
			return Primitive(ShapeBytes), nil
		}
		elem, err := shapeFromWIT(kind.Type, appendPath(path, "[elem]"), memo)
		if err != nil {
			return nil, err
		}
		return SeqOf(elem), nil
	case *wit.Option:
		elem, err := shapeFromWIT(kind.Type, path, memo)
		if err != nil {
			return nil, err
		}
		return OptionOf(elem), nil
	case *wit.Tuple:
		elems := make([]*Shape, len(kind.Types))
		for i, et := range kind.Types {
			es, err := shapeFromWIT(et, appendPath(path, "["+strconv.Itoa(i)+"]"), memo)
			if err != nil {
				return nil, err
			}
			elems[i] = es
		}
		return TupleOf(elems...), nil
	case *wit.Flags:
		fields := lo.Map(kind.Flags, func(f wit.Flag, _ int) ShapeField {
			return FieldOf(f.Name, Primitive(ShapeBool))
		})
		return StructOf(name, fields...), nil
	case *wit.Enum:
		variants := lo.Map(kind.Cases, func(c wit.EnumCase, _ int) ShapeVariant {
			return UnitCase(c.Name)
		})
		return EnumOf(name, variants...), nil
	case *wit.Variant:
		variants := make([]ShapeVariant, len(kind.Cases))
		for i, c := range kind.Cases {
			if c.Type == nil {
				variants[i] = UnitCase(c.Name)
				continue
			}
			payload, err := shapeFromWIT(c.Type, appendPath(path, c.Name), memo)
			if err != nil {
				return nil, err
			}
			variants[i] = NewtypeCase(c.Name, payload)
		}
		return EnumOf(name, variants...), nil
	case *wit.Result:
		ok, err := resultCase("Ok", kind.OK, path, memo)
		if err != nil {
			return nil, err
		}
		fail, err := resultCase("Err", kind.Err, path, memo)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = "Result"
		}
		return EnumOf(name, ok, fail), nil
	case *wit.Own, *wit.Borrow:
		return nil, errors.Unsupported(errors.PhaseCompile, path,
			fmt.Sprintf("resource handle %s has no host value representation", name))
	case wit.Type:
		return shapeFromWIT(kind, path, memo)
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, path, fmt.Sprintf("unsupported TypeDef kind: %T", kind))
	}
}

func resultCase(name string, t wit.Type, path []string, memo map[*wit.TypeDef]*Shape) (ShapeVariant, error) {
	if t == nil {
		return UnitCase(name), nil
	}
	payload, err := shapeFromWIT(t, appendPath(path, name), memo)
	if err != nil {
		return ShapeVariant{}, err
	}
	return NewtypeCase(name, payload), nil
}
