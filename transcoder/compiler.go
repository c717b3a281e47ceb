package transcoder

import (
	"reflect"
	"strings"
	"sync"

	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/model"
)

// Shaper lets a Go type declare its own decoding shape. Types whose shape is not
// derivable from their Go structure (enums, newtypes) implement Shaper together
// with model.Marshaler and model.Unmarshaler.
type Shaper interface {
	HostShape() *Shape
}

var (
	marshalerType   = reflect.TypeOf((*model.Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*model.Unmarshaler)(nil)).Elem()
	shaperType      = reflect.TypeOf((*Shaper)(nil)).Elem()
	modelValueType  = reflect.TypeOf(model.Value{})
)

// Compiler derives shapes from Go types and caches them. Safe for concurrent use.
type Compiler struct {
	cache sync.Map // reflect.Type -> *Shape
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile returns the shape for goType. Results are cached per type. Self-referential
// types, such as a struct holding a pointer to itself or type T []T, produce
// shapes that point back to themselves.
func (c *Compiler) Compile(goType reflect.Type) (*Shape, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}

	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*Shape), nil
	}

	seen := make(map[reflect.Type]*Shape)
	s, err := c.compile(goType, nil, seen)
	if err != nil {
		return nil, err
	}

	for t, shape := range seen {
		c.cache.LoadOrStore(t, shape)
	}
	actual, _ := c.cache.LoadOrStore(goType, s)
	return actual.(*Shape), nil
}

func (c *Compiler) compile(t reflect.Type, path []string, seen map[reflect.Type]*Shape) (*Shape, error) {
	if s, ok := seen[t]; ok {
		return s, nil
	}
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*Shape), nil
	}

	if t == modelValueType {
		return &Shape{Kind: ShapeAny, GoType: t}, nil
	}
	if s, ok := customShape(t); ok {
		return s, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return c.primitive(ShapeBool, t), nil
	case reflect.Int8:
		return c.primitive(ShapeI8, t), nil
	case reflect.Int16:
		return c.primitive(ShapeI16, t), nil
	case reflect.Int32:
		return c.primitive(ShapeI32, t), nil
	case reflect.Int, reflect.Int64:
		return c.primitive(ShapeI64, t), nil
	case reflect.Uint8:
		return c.primitive(ShapeU8, t), nil
	case reflect.Uint16:
		return c.primitive(ShapeU16, t), nil
	case reflect.Uint32:
		return c.primitive(ShapeU32, t), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return c.primitive(ShapeU64, t), nil
	case reflect.Float32:
		return c.primitive(ShapeF32, t), nil
	case reflect.Float64:
		return c.primitive(ShapeF64, t), nil
	case reflect.String:
		return c.primitive(ShapeString, t), nil
	case reflect.Interface:
		return &Shape{Kind: ShapeAny, GoType: t}, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return c.primitive(ShapeBytes, t), nil
		}
		s := &Shape{Kind: ShapeSeq, GoType: t}
		seen[t] = s
		elem, err := c.compile(t.Elem(), appendPath(path, "[elem]"), seen)
		if err != nil {
			delete(seen, t)
			return nil, err
		}
		s.Elem = elem
		return s, nil
	case reflect.Array:
		s := &Shape{Kind: ShapeTuple, GoType: t}
		seen[t] = s
		elem, err := c.compile(t.Elem(), appendPath(path, "[elem]"), seen)
		if err != nil {
			delete(seen, t)
			return nil, err
		}
		s.Elems = make([]*Shape, t.Len())
		for i := range s.Elems {
			s.Elems[i] = elem
		}
		return s, nil
	case reflect.Map:
		s := &Shape{Kind: ShapeMap, GoType: t}
		seen[t] = s
		key, err := c.compile(t.Key(), appendPath(path, "[key]"), seen)
		if err != nil {
			delete(seen, t)
			return nil, err
		}
		val, err := c.compile(t.Elem(), appendPath(path, "[value]"), seen)
		if err != nil {
			delete(seen, t)
			return nil, err
		}
		s.Key, s.Value = key, val
		return s, nil
	case reflect.Ptr:
		s := &Shape{Kind: ShapeOption, GoType: t}
		seen[t] = s
		elem, err := c.compile(t.Elem(), path, seen)
		if err != nil {
			delete(seen, t)
			return nil, err
		}
		s.Elem = elem
		return s, nil
	case reflect.Struct:
		return c.compileStruct(t, path, seen)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("no data model representation for %s", t.Kind()).
			Build()
	}
}

func (c *Compiler) primitive(kind ShapeKind, t reflect.Type) *Shape {
	return &Shape{Kind: kind, GoType: t}
}

func (c *Compiler) compileStruct(t reflect.Type, path []string, seen map[reflect.Type]*Shape) (*Shape, error) {
	s := &Shape{Kind: ShapeStruct, Name: t.Name(), GoType: t}
	seen[t] = s

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := fieldName(sf)
		if !ok {
			continue
		}
		fs, err := c.compile(sf.Type, appendPath(path, name), seen)
		if err != nil {
			delete(seen, t)
			return nil, err
		}
		s.Fields = append(s.Fields, ShapeField{Name: name, Shape: fs, GoIndex: i})
	}

	if len(s.Fields) == 0 {
		s.Kind = ShapeUnitStruct
	}
	return s, nil
}

// fieldName resolves the data model name of a struct field: the host tag when
// present, otherwise the Go name. Unexported and host:"-" fields are skipped.
func fieldName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	tag := sf.Tag.Get("host")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return sf.Name, true
}

// customShape reports the shape of types that convert themselves.
func customShape(t reflect.Type) (*Shape, bool) {
	if t.Kind() == reflect.Ptr || t.Kind() == reflect.Interface {
		return nil, false
	}
	ptr := reflect.PointerTo(t)
	if t.Implements(shaperType) || ptr.Implements(shaperType) {
		var sh Shaper
		if t.Implements(shaperType) {
			sh = reflect.Zero(t).Interface().(Shaper)
		} else {
			sh = reflect.New(t).Interface().(Shaper)
		}
		if s := sh.HostShape(); s != nil {
			return s, true
		}
	}
	if t.Implements(marshalerType) || ptr.Implements(marshalerType) || ptr.Implements(unmarshalerType) {
		return &Shape{Kind: ShapeAny, GoType: t}, true
	}
	return nil, false
}

// appendPath never shares the backing array of path.
func appendPath(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}
