package types

import "reflect"

// Shape describes the expected data-model type of a value.
//
//	Option, Seq, NewtypeStruct    Elem
//	Map                           Key, Value
//	Tuple, TupleStruct            Elems
//	Struct                        Fields
//	Enum                          Variants
//
// GoType is set only for shapes compiled from Go types.
type Shape struct {
	GoType   reflect.Type
	Elem     *Shape
	Key      *Shape
	Value    *Shape
	Elems    []*Shape
	Fields   []Field
	Variants []Variant
	Name     string
	Kind     Kind
}

type Field struct {
	Shape *Shape
	Name  string
	// GoIndex is the struct field index in Shape.GoType, or -1.
	GoIndex int
}

// Variant is one enum case. Payload is nil for FormUnit, a Tuple shape for
// FormTuple, a Struct shape for FormStruct, and the inner shape for FormNewtype.
type Variant struct {
	Payload *Shape
	Name    string
	Form    Form
}

// IsAny reports whether s leaves the decoded kind to the host value. A nil shape is Any.
func (s *Shape) IsAny() bool {
	return s == nil || s.Kind == KindAny
}

func (s *Shape) Variant(name string) (int, *Variant) {
	for i := range s.Variants {
		if s.Variants[i].Name == name {
			return i, &s.Variants[i]
		}
	}
	return -1, nil
}

// String renders a compact type expression, e.g. "map<string, seq<i32>>". A shape
// that contains itself is rendered by its Go type name at the point of recursion.
func (s *Shape) String() string {
	return s.format(nil)
}

func (s *Shape) format(active []*Shape) string {
	if s == nil {
		return "any"
	}
	for _, a := range active {
		if a == s {
			return s.recursiveName()
		}
	}
	active = append(active, s)

	switch s.Kind {
	case KindOption, KindSeq:
		return s.Kind.String() + "<" + s.Elem.format(active) + ">"
	case KindMap:
		return "map<" + s.Key.format(active) + ", " + s.Value.format(active) + ">"
	case KindTuple:
		out := "tuple<"
		for i, e := range s.Elems {
			if i > 0 {
				out += ", "
			}
			out += e.format(active)
		}
		return out + ">"
	case KindUnitStruct, KindNewtypeStruct, KindTupleStruct, KindStruct, KindEnum:
		if s.Name != "" {
			return s.Name
		}
	}
	return s.Kind.String()
}

func (s *Shape) recursiveName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.GoType != nil:
		return s.GoType.String()
	}
	return "..."
}
