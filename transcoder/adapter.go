package transcoder

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/model"
)

var defaultCompiler = NewCompiler()

// FromGo converts a Go value into the data model using a shared compiler.
func FromGo(v any) (model.Value, error) {
	return defaultCompiler.FromGo(v)
}

// ToGo stores a data model value into the Go value ptr points to, using a shared
// compiler.
func ToGo(v model.Value, ptr any) error {
	return defaultCompiler.ToGo(v, ptr)
}

// FromGo converts a Go value into the data model. A model.Value is returned as is.
// Byte slices are borrowed, not copied; the encoder copies them. Nesting deeper
// than DefaultMaxDepth, as produced by cyclic pointers or maps, fails with
// DepthExceeded.
func (c *Compiler) FromGo(v any) (model.Value, error) {
	return c.fromGoLimit(v, DefaultMaxDepth)
}

// ToGo stores v into the Go value ptr points to.
func (c *Compiler) ToGo(v model.Value, ptr any) error {
	return c.toGoLimit(v, ptr, DefaultMaxDepth)
}

func (c *Compiler) fromGoLimit(v any, limit int) (model.Value, error) {
	switch t := v.(type) {
	case nil:
		return model.Unit(), nil
	case model.Value:
		return t, nil
	}
	rv := reflect.ValueOf(v)
	shape, err := c.Compile(rv.Type())
	if err != nil {
		return model.Value{}, err
	}

	st := getState(errors.PhaseAdapt, limit)
	defer putState(st)
	return c.fromGo(st, rv, shape)
}

func (c *Compiler) toGoLimit(v model.Value, ptr any, limit int) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.NilPointer(errors.PhaseAdapt, nil, fmt.Sprintf("%T", ptr))
	}
	if mv, ok := ptr.(*model.Value); ok {
		*mv = v
		return nil
	}
	shape, err := c.Compile(rv.Type().Elem())
	if err != nil {
		return err
	}

	st := getState(errors.PhaseAdapt, limit)
	defer putState(st)
	return c.toGo(st, v, rv.Elem(), shape)
}

func marshalerOf(rv reflect.Value) (model.Marshaler, bool) {
	if rv.Type().Implements(marshalerType) {
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, false
		}
		return rv.Interface().(model.Marshaler), true
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(marshalerType) {
		return rv.Addr().Interface().(model.Marshaler), true
	}
	return nil, false
}

func (c *Compiler) fromGo(st *state, rv reflect.Value, s *Shape) (model.Value, error) {
	if rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface {
		if m, ok := marshalerOf(rv); ok {
			mv, err := m.MarshalModel()
			if err != nil {
				return model.Value{}, errors.New(errors.PhaseAdapt, errors.KindInvalidData).
					Path(st.snapshot()...).
					GoType(rv.Type().String()).
					Cause(err).
					Detail("MarshalModel failed").
					Build()
			}
			return mv, nil
		}
	}

	switch s.Kind {
	case ShapeAny:
		if rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return model.Unit(), nil
			}
			rv = rv.Elem()
		}
		if mv, ok := rv.Interface().(model.Value); ok {
			return mv, nil
		}
		dyn, err := c.Compile(rv.Type())
		if err != nil {
			return model.Value{}, err
		}
		if dyn.Kind == ShapeAny {
			return model.Value{}, errors.New(errors.PhaseAdapt, errors.KindUnsupported).
				Path(st.snapshot()...).
				GoType(rv.Type().String()).
				Detail("type has no MarshalModel method").
				Build()
		}
		return c.fromGo(st, rv, dyn)
	case ShapeBool:
		return model.Bool(rv.Bool()), nil
	case ShapeI8:
		return model.I8(int8(rv.Int())), nil
	case ShapeI16:
		return model.I16(int16(rv.Int())), nil
	case ShapeI32:
		return model.I32(int32(rv.Int())), nil
	case ShapeI64:
		return model.I64(rv.Int()), nil
	case ShapeU8:
		return model.U8(uint8(rv.Uint())), nil
	case ShapeU16:
		return model.U16(uint16(rv.Uint())), nil
	case ShapeU32:
		return model.U32(uint32(rv.Uint())), nil
	case ShapeU64:
		return model.U64(rv.Uint()), nil
	case ShapeF32:
		return model.F32(float32(rv.Float())), nil
	case ShapeF64:
		return model.F64(rv.Float()), nil
	case ShapeString:
		return model.String(rv.String()), nil
	case ShapeBytes:
		return model.Bytes(rv.Bytes()), nil
	case ShapeOption:
		if rv.IsNil() {
			return model.None(), nil
		}
		if err := st.deeper(); err != nil {
			return model.Value{}, err
		}
		inner, err := c.fromGo(st, rv.Elem(), s.Elem)
		if err != nil {
			return model.Value{}, err
		}
		st.shallower()
		return model.Some(inner), nil
	case ShapeUnitStruct:
		return model.UnitStruct(s.Name), nil
	case ShapeSeq, ShapeTuple:
		elems := make([]model.Value, rv.Len())
		for i := range elems {
			es := s.Elem
			if s.Kind == ShapeTuple {
				es = s.Elems[i]
			}
			if err := st.enterIndex(i); err != nil {
				return model.Value{}, err
			}
			mv, err := c.fromGo(st, rv.Index(i), es)
			if err != nil {
				return model.Value{}, err
			}
			st.leave()
			elems[i] = mv
		}
		if s.Kind == ShapeTuple {
			return model.Tuple(elems...), nil
		}
		return model.Seq(elems...), nil
	case ShapeMap:
		keys := rv.MapKeys()
		sortKeys(keys)
		entries := make([]model.Entry, len(keys))
		for i, k := range keys {
			if err := st.enter(fmt.Sprint(k.Interface())); err != nil {
				return model.Value{}, err
			}
			kv, err := c.fromGo(st, k, s.Key)
			if err != nil {
				return model.Value{}, err
			}
			vv, err := c.fromGo(st, rv.MapIndex(k), s.Value)
			if err != nil {
				return model.Value{}, err
			}
			st.leave()
			entries[i] = model.EntryOf(kv, vv)
		}
		return model.Map(entries...), nil
	case ShapeStruct:
		fields := make([]model.Field, 0, len(s.Fields))
		for _, f := range s.Fields {
			if f.GoIndex < 0 {
				continue
			}
			if err := st.enter(f.Name); err != nil {
				return model.Value{}, err
			}
			mv, err := c.fromGo(st, rv.Field(f.GoIndex), f.Shape)
			if err != nil {
				return model.Value{}, err
			}
			st.leave()
			fields = append(fields, model.FieldOf(f.Name, mv))
		}
		return model.Struct(s.Name, fields...), nil
	}
	return model.Value{}, errors.New(errors.PhaseAdapt, errors.KindUnsupported).
		Path(st.snapshot()...).
		GoType(rv.Type().String()).
		Detail("shape %s requires a MarshalModel method", s).
		Build()
}

// sortKeys orders map keys so that conversions are deterministic.
func sortKeys(keys []reflect.Value) {
	if len(keys) < 2 {
		return
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch a.Kind() {
		case reflect.String:
			return a.String() < b.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		case reflect.Bool:
			return !a.Bool() && b.Bool()
		default:
			return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
		}
	})
}

func (c *Compiler) toGo(st *state, v model.Value, rv reflect.Value, s *Shape) error {
	if rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface && rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(model.Unmarshaler); ok {
			if err := u.UnmarshalModel(v); err != nil {
				return errors.New(errors.PhaseAdapt, errors.KindInvalidData).
					Path(st.snapshot()...).
					GoType(rv.Type().String()).
					Cause(err).
					Detail("UnmarshalModel failed").
					Build()
			}
			return nil
		}
	}

	mismatch := func() error {
		return errors.New(errors.PhaseAdapt, errors.KindTypeMismatch).
			Path(st.snapshot()...).
			GoType(rv.Type().String()).
			Detail("cannot store %s value", v.Kind).
			Build()
	}

	switch s.Kind {
	case ShapeAny:
		if rv.Type() == modelValueType {
			rv.Set(reflect.ValueOf(v))
			return nil
		}
		if rv.Kind() != reflect.Interface {
			return mismatch()
		}
		nat, err := natural(st, v)
		if err != nil {
			return err
		}
		if nat == nil {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		nv := reflect.ValueOf(nat)
		if !nv.Type().AssignableTo(rv.Type()) {
			return mismatch()
		}
		rv.Set(nv)
		return nil
	case ShapeBool:
		if v.Kind != model.KindBool {
			return mismatch()
		}
		rv.SetBool(v.Bool)
		return nil
	case ShapeI8, ShapeI16, ShapeI32, ShapeI64:
		i, ok := integerOf(v)
		if !ok || rv.OverflowInt(i) {
			return mismatch()
		}
		rv.SetInt(i)
		return nil
	case ShapeU8, ShapeU16, ShapeU32, ShapeU64:
		u, ok := unsignedOf(v)
		if !ok || rv.OverflowUint(u) {
			return mismatch()
		}
		rv.SetUint(u)
		return nil
	case ShapeF32, ShapeF64:
		var f float64
		switch {
		case v.Kind.IsFloat():
			f = v.Float
		case v.Kind.IsSigned():
			f = float64(v.Int)
		case v.Kind.IsUnsigned():
			f = float64(v.Uint)
		default:
			return mismatch()
		}
		// infinities and NaN are representable; finite values must fit
		if !math.IsInf(f, 0) && !math.IsNaN(f) && rv.OverflowFloat(f) {
			return mismatch()
		}
		rv.SetFloat(f)
		return nil
	case ShapeString:
		switch v.Kind {
		case model.KindString:
			rv.SetString(v.Str)
		case model.KindChar:
			rv.SetString(string(v.Char))
		default:
			return mismatch()
		}
		return nil
	case ShapeBytes:
		switch v.Kind {
		case model.KindBytes:
			rv.SetBytes(append([]byte{}, v.Bytes...))
		case model.KindSeq:
			out := make([]byte, len(v.Elems))
			for i, e := range v.Elems {
				u, ok := unsignedOf(e)
				if !ok || u > 0xff {
					return mismatch()
				}
				out[i] = byte(u)
			}
			rv.SetBytes(out)
		default:
			return mismatch()
		}
		return nil
	case ShapeOption:
		inner := v
		if v.Kind == model.KindOption {
			if v.Inner == nil {
				rv.Set(reflect.Zero(rv.Type()))
				return nil
			}
			inner = *v.Inner
		}
		if err := st.deeper(); err != nil {
			return err
		}
		ptr := reflect.New(rv.Type().Elem())
		if err := c.toGo(st, inner, ptr.Elem(), s.Elem); err != nil {
			return err
		}
		st.shallower()
		rv.Set(ptr)
		return nil
	case ShapeUnitStruct:
		if v.Kind != model.KindUnitStruct && v.Kind != model.KindUnit {
			return mismatch()
		}
		return nil
	case ShapeSeq:
		if v.Kind != model.KindSeq && v.Kind != model.KindTuple {
			return mismatch()
		}
		out := reflect.MakeSlice(rv.Type(), len(v.Elems), len(v.Elems))
		for i, e := range v.Elems {
			if err := c.toGoElem(st, i, e, out.Index(i), s.Elem); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case ShapeTuple:
		if (v.Kind != model.KindTuple && v.Kind != model.KindSeq) || len(v.Elems) != rv.Len() {
			return mismatch()
		}
		for i, e := range v.Elems {
			if err := c.toGoElem(st, i, e, rv.Index(i), s.Elems[i]); err != nil {
				return err
			}
		}
		return nil
	case ShapeMap:
		if v.Kind != model.KindMap {
			return mismatch()
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(v.Entries))
		for _, ent := range v.Entries {
			if err := st.enter(mapKeyString(ent.Key)); err != nil {
				return err
			}
			k := reflect.New(rv.Type().Key()).Elem()
			if err := c.toGo(st, ent.Key, k, s.Key); err != nil {
				return err
			}
			val := reflect.New(rv.Type().Elem()).Elem()
			if err := c.toGo(st, ent.Value, val, s.Value); err != nil {
				return err
			}
			st.leave()
			out.SetMapIndex(k, val)
		}
		rv.Set(out)
		return nil
	case ShapeStruct:
		if v.Kind != model.KindStruct {
			return mismatch()
		}
		for _, f := range s.Fields {
			if f.GoIndex < 0 {
				continue
			}
			fv, ok := v.Field(f.Name)
			if !ok {
				continue
			}
			if err := st.enter(f.Name); err != nil {
				return err
			}
			if err := c.toGo(st, fv, rv.Field(f.GoIndex), f.Shape); err != nil {
				return err
			}
			st.leave()
		}
		return nil
	}
	return errors.New(errors.PhaseAdapt, errors.KindUnsupported).
		Path(st.snapshot()...).
		GoType(rv.Type().String()).
		Detail("shape %s requires an UnmarshalModel method", s).
		Build()
}

func (c *Compiler) toGoElem(st *state, i int, v model.Value, rv reflect.Value, s *Shape) error {
	if err := st.enterIndex(i); err != nil {
		return err
	}
	if err := c.toGo(st, v, rv, s); err != nil {
		return err
	}
	st.leave()
	return nil
}

func integerOf(v model.Value) (int64, bool) {
	switch {
	case v.Kind.IsSigned():
		return v.Int, true
	case v.Kind.IsUnsigned():
		if v.Uint > 1<<63-1 {
			return 0, false
		}
		return int64(v.Uint), true
	}
	return 0, false
}

func unsignedOf(v model.Value) (uint64, bool) {
	switch {
	case v.Kind.IsUnsigned():
		return v.Uint, true
	case v.Kind.IsSigned():
		if v.Int < 0 {
			return 0, false
		}
		return uint64(v.Int), true
	}
	return 0, false
}

func mapKeyString(k model.Value) string {
	switch {
	case k.Kind == model.KindString:
		return k.Str
	case k.Kind.IsSigned():
		return fmt.Sprint(k.Int)
	case k.Kind.IsUnsigned():
		return fmt.Sprint(k.Uint)
	}
	return "[key]"
}

// Natural returns the plain Go representation of a data model value, as stored
// into interface-typed destinations:
//
//	Unit, UnitStruct, absent Option   nil
//	integers                          int64 or uint64
//	floats                            float64
//	Char                              rune
//	Seq, Tuple, TupleStruct           []any
//	Map with string keys, Struct      map[string]any
//	other Map                         map[any]any (non-comparable keys are skipped)
//	UnitVariant                       variant name
//	other variants                    map[string]any{variant: payload}
//
// Values nested deeper than DefaultMaxDepth fail with DepthExceeded.
func Natural(v model.Value) (any, error) {
	st := getState(errors.PhaseAdapt, DefaultMaxDepth)
	defer putState(st)
	return natural(st, v)
}

func natural(st *state, v model.Value) (any, error) {
	switch v.Kind {
	case model.KindUnit, model.KindUnitStruct:
		return nil, nil
	case model.KindBool:
		return v.Bool, nil
	case model.KindI8, model.KindI16, model.KindI32, model.KindI64:
		return v.Int, nil
	case model.KindU8, model.KindU16, model.KindU32, model.KindU64:
		return v.Uint, nil
	case model.KindF32, model.KindF64:
		return v.Float, nil
	case model.KindChar:
		return v.Char, nil
	case model.KindString:
		return v.Str, nil
	case model.KindBytes:
		return append([]byte{}, v.Bytes...), nil
	case model.KindOption, model.KindNewtypeStruct:
		if v.Inner == nil {
			return nil, nil
		}
		return naturalInner(st, *v.Inner)
	case model.KindSeq, model.KindTuple, model.KindTupleStruct:
		return naturalElems(st, v.Elems)
	case model.KindMap:
		return naturalMap(st, v.Entries)
	case model.KindStruct:
		return naturalFields(st, v.Fields)
	case model.KindUnitVariant:
		return v.Variant, nil
	case model.KindNewtypeVariant:
		var inner any
		if v.Inner != nil {
			var err error
			if inner, err = naturalTagged(st, v.Variant, func() (any, error) {
				return natural(st, *v.Inner)
			}); err != nil {
				return nil, err
			}
		}
		return map[string]any{v.Variant: inner}, nil
	case model.KindTupleVariant:
		payload, err := naturalTagged(st, v.Variant, func() (any, error) {
			return naturalElems(st, v.Elems)
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{v.Variant: payload}, nil
	case model.KindStructVariant:
		payload, err := naturalTagged(st, v.Variant, func() (any, error) {
			return naturalFields(st, v.Fields)
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{v.Variant: payload}, nil
	}
	return nil, nil
}

func naturalInner(st *state, v model.Value) (any, error) {
	if err := st.deeper(); err != nil {
		return nil, err
	}
	out, err := natural(st, v)
	if err != nil {
		return nil, err
	}
	st.shallower()
	return out, nil
}

func naturalTagged(st *state, variant string, payload func() (any, error)) (any, error) {
	if err := st.enter(variant); err != nil {
		return nil, err
	}
	out, err := payload()
	if err != nil {
		return nil, err
	}
	st.leave()
	return out, nil
}

func naturalElems(st *state, elems []model.Value) ([]any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		if err := st.enterIndex(i); err != nil {
			return nil, err
		}
		n, err := natural(st, e)
		if err != nil {
			return nil, err
		}
		st.leave()
		out[i] = n
	}
	return out, nil
}

func naturalFields(st *state, fields []model.Field) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if err := st.enter(f.Name); err != nil {
			return nil, err
		}
		n, err := natural(st, f.Value)
		if err != nil {
			return nil, err
		}
		st.leave()
		out[f.Name] = n
	}
	return out, nil
}

func naturalMap(st *state, entries []model.Entry) (any, error) {
	stringKeys := true
	for _, e := range entries {
		if e.Key.Kind != model.KindString {
			stringKeys = false
			break
		}
	}
	if stringKeys {
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			if err := st.enter(e.Key.Str); err != nil {
				return nil, err
			}
			n, err := natural(st, e.Value)
			if err != nil {
				return nil, err
			}
			st.leave()
			out[e.Key.Str] = n
		}
		return out, nil
	}

	out := make(map[any]any, len(entries))
	for _, e := range entries {
		if err := st.enter(mapKeyString(e.Key)); err != nil {
			return nil, err
		}
		k, err := natural(st, e.Key)
		if err != nil {
			return nil, err
		}
		if k != nil && !reflect.TypeOf(k).Comparable() {
			st.leave()
			continue
		}
		n, err := natural(st, e.Value)
		if err != nil {
			return nil, err
		}
		st.leave()
		out[k] = n
	}
	return out, nil
}
