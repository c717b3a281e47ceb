package transcoder

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/host"
	"github.com/wippyai/hostvalue/model"
	"github.com/wippyai/hostvalue/transcoder/internal/numeric"
	"github.com/wippyai/hostvalue/transcoder/internal/types"
)

// Decoder converts host values back into serializable values, guided by a Shape.
// Safe for concurrent use.
type Decoder struct {
	compiler *Compiler
	opts     Options
}

// NewDecoder creates a decoder with default options.
func NewDecoder() *Decoder {
	return NewDecoderWithOptions(DefaultOptions())
}

// NewDecoderWithOptions creates a decoder with the given options and its own compiler.
func NewDecoderWithOptions(opts Options) *Decoder {
	return NewDecoderWithCompiler(NewCompiler(), opts)
}

// NewDecoderWithCompiler creates a decoder that shares a compiler cache.
func NewDecoderWithCompiler(c *Compiler, opts Options) *Decoder {
	return &Decoder{compiler: c, opts: opts}
}

func (d *Decoder) Options() Options {
	return d.opts
}

// Decode reconstructs a serializable value from v. A nil shape infers the kind from
// the host value: numbers become f64 and objects become string-keyed maps.
func (d *Decoder) Decode(v host.Value, shape *Shape) (model.Value, error) {
	st := getState(errors.PhaseDecode, d.opts.maxDepth())
	defer putState(st)

	out, err := d.decode(st, v, shape)
	if err != nil {
		Logger().Debug("decode failed", zap.Stringer("shape", shape), zap.Error(err))
		return model.Value{}, err
	}
	return out, nil
}

// Unmarshal decodes v into the Go value ptr points to, using the shape compiled
// from ptr's element type.
func (d *Decoder) Unmarshal(v host.Value, ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.NilPointer(errors.PhaseAdapt, nil, fmt.Sprintf("%T", ptr))
	}
	shape, err := d.compiler.Compile(rv.Type().Elem())
	if err != nil {
		return err
	}
	mv, err := d.Decode(v, shape)
	if err != nil {
		return err
	}
	return d.compiler.toGoLimit(mv, ptr, d.opts.maxDepth())
}

func hostKind(v host.Value) string {
	return host.KindOf(v).String()
}

func (d *Decoder) mismatch(st *state, want *Shape, got host.Value) error {
	return errors.TypeMismatch(errors.PhaseDecode, st.snapshot(), want.String(), hostKind(got))
}

func (d *Decoder) decode(st *state, v host.Value, s *Shape) (model.Value, error) {
	if v == nil {
		v = host.Undefined{}
	}
	if s.IsAny() {
		return d.infer(st, v)
	}

	switch s.Kind {
	case types.KindUnit:
		if host.IsNullish(v) {
			return model.Unit(), nil
		}
	case types.KindBool:
		if b, ok := v.(host.Boolean); ok {
			return model.Bool(bool(b)), nil
		}
	case types.KindI8, types.KindI16, types.KindI32, types.KindI64,
		types.KindU8, types.KindU16, types.KindU32, types.KindU64:
		return d.decodeInt(st, v, s)
	case types.KindF32:
		if n, ok := v.(host.Number); ok {
			return model.F32(float32(n)), nil
		}
	case types.KindF64:
		if n, ok := v.(host.Number); ok {
			return model.F64(float64(n)), nil
		}
	case types.KindChar:
		if str, ok := v.(host.String); ok {
			return d.decodeChar(st, string(str))
		}
	case types.KindString:
		if str, ok := v.(host.String); ok {
			if !utf8.ValidString(string(str)) {
				return model.Value{}, errors.InvalidUTF8(st.phase, st.snapshot(), []byte(str))
			}
			return model.String(string(str)), nil
		}
	case types.KindBytes:
		return d.decodeBytes(st, v, s)
	case types.KindOption:
		if host.IsNullish(v) {
			return model.None(), nil
		}
		inner, err := d.decodeInner(st, v, s.Elem)
		if err != nil {
			return model.Value{}, err
		}
		return model.Some(inner), nil
	case types.KindUnitStruct:
		if host.IsNullish(v) {
			return model.UnitStruct(s.Name), nil
		}
	case types.KindNewtypeStruct:
		inner, err := d.decodeInner(st, v, s.Elem)
		if err != nil {
			return model.Value{}, err
		}
		return model.NewtypeStruct(s.Name, inner), nil
	case types.KindSeq:
		return d.decodeSeq(st, v, s)
	case types.KindTuple, types.KindTupleStruct:
		elems, err := d.decodeTuple(st, v, s)
		if err != nil {
			return model.Value{}, err
		}
		if s.Kind == types.KindTupleStruct {
			return model.TupleStruct(s.Name, elems...), nil
		}
		return model.Tuple(elems...), nil
	case types.KindMap:
		return d.decodeMap(st, v, s)
	case types.KindStruct:
		fields, err := d.decodeFields(st, v, s)
		if err != nil {
			return model.Value{}, err
		}
		return model.Struct(s.Name, fields...), nil
	case types.KindEnum:
		return d.decodeEnum(st, v, s)
	default:
		return model.Value{}, errors.Unsupported(errors.PhaseDecode, st.snapshot(), "unknown shape kind "+s.Kind.String())
	}
	return model.Value{}, d.mismatch(st, s, v)
}

// infer picks the natural data model kind for a host value.
func (d *Decoder) infer(st *state, v host.Value) (model.Value, error) {
	switch t := v.(type) {
	case host.Undefined, host.Null:
		return model.Unit(), nil
	case host.Boolean:
		return model.Bool(bool(t)), nil
	case host.Number:
		return model.F64(float64(t)), nil
	case host.BigInt:
		if i, ok := t.Int64(); ok {
			return model.I64(i), nil
		}
		if u, ok := t.Uint64(); ok {
			return model.U64(u), nil
		}
		return model.Value{}, errors.InvalidIntegerConversion(st.snapshot(), t.String(), "i64 or u64", 64)
	case host.String:
		if !utf8.ValidString(string(t)) {
			return model.Value{}, errors.InvalidUTF8(st.phase, st.snapshot(), []byte(t))
		}
		return model.String(string(t)), nil
	case *host.TypedByteArray:
		return model.Bytes(FromHostBytes(t)), nil
	case *host.Array:
		return d.decodeSeq(st, v, nil)
	case *host.Object:
		return d.decodeMap(st, v, nil)
	}
	return model.Value{}, errors.New(errors.PhaseDecode, errors.KindUnsupported).
		Path(st.snapshot()...).
		HostType(hostKind(v)).
		Detail("unsupported host value %T", v).
		Build()
}

func (d *Decoder) decodeInt(st *state, v host.Value, s *Shape) (model.Value, error) {
	mk, _ := s.Kind.ModelKind()
	width := s.Kind.Width()
	signed := s.Kind.IsSigned()

	switch t := v.(type) {
	case host.Number:
		if signed {
			if i, ok := numeric.NumberToInt(float64(t), width); ok {
				return model.Value{Kind: mk, Int: i}, nil
			}
		} else if u, ok := numeric.NumberToUint(float64(t), width); ok {
			return model.Value{Kind: mk, Uint: u}, nil
		}
		return model.Value{}, errors.InvalidIntegerConversion(st.snapshot(), float64(t), s.Kind.String(), width)
	case host.BigInt:
		if signed {
			if i, ok := numeric.BigToInt(t.Int(), width); ok {
				return model.Value{Kind: mk, Int: i}, nil
			}
		} else if u, ok := numeric.BigToUint(t.Int(), width); ok {
			return model.Value{Kind: mk, Uint: u}, nil
		}
		return model.Value{}, errors.InvalidIntegerConversion(st.snapshot(), t.String(), s.Kind.String(), width)
	}
	return model.Value{}, d.mismatch(st, s, v)
}

func (d *Decoder) decodeChar(st *state, s string) (model.Value, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
		return model.Value{}, errors.InvalidChar(st.phase, st.snapshot(),
			"expected exactly one character, got "+strconv.Quote(s))
	}
	return model.Char(r), nil
}

func (d *Decoder) decodeBytes(st *state, v host.Value, s *Shape) (model.Value, error) {
	switch t := v.(type) {
	case *host.TypedByteArray:
		return model.Bytes(FromHostBytes(t)), nil
	case *host.Array:
		out := make([]byte, len(t.Elems))
		for i, e := range t.Elems {
			n, ok := e.(host.Number)
			if !ok {
				if err := st.enterIndex(i); err != nil {
					return model.Value{}, err
				}
				return model.Value{}, d.mismatch(st, Primitive(ShapeU8), e)
			}
			b, ok := numeric.NumberToUint(float64(n), 8)
			if !ok {
				if err := st.enterIndex(i); err != nil {
					return model.Value{}, err
				}
				return model.Value{}, errors.InvalidIntegerConversion(st.snapshot(), float64(n), "u8", 8)
			}
			out[i] = byte(b)
		}
		return model.Bytes(out), nil
	}
	return model.Value{}, d.mismatch(st, s, v)
}

func (d *Decoder) decodeInner(st *state, v host.Value, s *Shape) (model.Value, error) {
	if err := st.deeper(); err != nil {
		return model.Value{}, err
	}
	out, err := d.decode(st, v, s)
	if err != nil {
		return model.Value{}, err
	}
	st.shallower()
	return out, nil
}

func (d *Decoder) decodeElem(st *state, i int, v host.Value, s *Shape) (model.Value, error) {
	if err := st.enterIndex(i); err != nil {
		return model.Value{}, err
	}
	out, err := d.decode(st, v, s)
	if err != nil {
		return model.Value{}, err
	}
	st.leave()
	return out, nil
}

func (d *Decoder) decodeSeq(st *state, v host.Value, s *Shape) (model.Value, error) {
	var elem *Shape
	if s != nil {
		elem = s.Elem
	}
	switch t := v.(type) {
	case *host.Array:
		out := make([]model.Value, len(t.Elems))
		for i, e := range t.Elems {
			mv, err := d.decodeElem(st, i, e, elem)
			if err != nil {
				return model.Value{}, err
			}
			out[i] = mv
		}
		return model.Seq(out...), nil
	case *host.TypedByteArray:
		if elem != nil && elem.Kind == types.KindU8 {
			out := make([]model.Value, t.Len())
			for i := range out {
				out[i] = model.U8(t.At(i))
			}
			return model.Seq(out...), nil
		}
	}
	return model.Value{}, d.mismatch(st, s, v)
}

func (d *Decoder) decodeTuple(st *state, v host.Value, s *Shape) ([]model.Value, error) {
	arr, ok := v.(*host.Array)
	if !ok {
		return nil, d.mismatch(st, s, v)
	}
	if len(arr.Elems) != len(s.Elems) {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(st.snapshot()...).
			HostType(hostKind(v)).
			Detail("expected %s of %d elements, got %d", s, len(s.Elems), len(arr.Elems)).
			Build()
	}
	out := make([]model.Value, len(arr.Elems))
	for i, e := range arr.Elems {
		mv, err := d.decodeElem(st, i, e, s.Elems[i])
		if err != nil {
			return nil, err
		}
		out[i] = mv
	}
	return out, nil
}

func (d *Decoder) decodeMap(st *state, v host.Value, s *Shape) (model.Value, error) {
	var keyShape, valShape *Shape
	if s != nil {
		keyShape, valShape = s.Key, s.Value
	}

	switch t := v.(type) {
	case *host.Object:
		entries := make([]model.Entry, 0, t.Len())
		var err error
		t.Range(func(key string, hv host.Value) bool {
			if err = st.enter(key); err != nil {
				return false
			}
			var k, val model.Value
			if k, err = d.parseKey(st, key, keyShape); err != nil {
				return false
			}
			if val, err = d.decode(st, hv, valShape); err != nil {
				return false
			}
			st.leave()
			entries = append(entries, model.EntryOf(k, val))
			return true
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Map(entries...), nil
	case *host.Array:
		entries := make([]model.Entry, len(t.Elems))
		for i, e := range t.Elems {
			if err := st.enterIndex(i); err != nil {
				return model.Value{}, err
			}
			pair, ok := e.(*host.Array)
			if !ok || len(pair.Elems) != 2 {
				return model.Value{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
					Path(st.snapshot()...).
					HostType(hostKind(e)).
					Detail("expected [key, value] pair").
					Build()
			}
			k, err := d.decode(st, pair.Elems[0], keyShape)
			if err != nil {
				return model.Value{}, err
			}
			val, err := d.decode(st, pair.Elems[1], valShape)
			if err != nil {
				return model.Value{}, err
			}
			st.leave()
			entries[i] = model.EntryOf(k, val)
		}
		return model.Map(entries...), nil
	}
	if s == nil {
		s = MapOf(nil, nil)
	}
	return model.Value{}, d.mismatch(st, s, v)
}

// parseKey turns an Object property name back into a key of the given shape.
func (d *Decoder) parseKey(st *state, key string, s *Shape) (model.Value, error) {
	if s.IsAny() {
		return model.String(key), nil
	}
	switch s.Kind {
	case types.KindString:
		return model.String(key), nil
	case types.KindChar:
		return d.decodeChar(st, key)
	case types.KindI8, types.KindI16, types.KindI32, types.KindI64:
		mk, _ := s.Kind.ModelKind()
		i, err := strconv.ParseInt(key, 10, s.Kind.Width())
		if err != nil {
			return model.Value{}, errors.InvalidIntegerConversion(st.snapshot(), key, s.Kind.String(), s.Kind.Width())
		}
		return model.Value{Kind: mk, Int: i}, nil
	case types.KindU8, types.KindU16, types.KindU32, types.KindU64:
		mk, _ := s.Kind.ModelKind()
		u, err := strconv.ParseUint(key, 10, s.Kind.Width())
		if err != nil {
			return model.Value{}, errors.InvalidIntegerConversion(st.snapshot(), key, s.Kind.String(), s.Kind.Width())
		}
		return model.Value{Kind: mk, Uint: u}, nil
	case types.KindEnum:
		idx, variant := s.Variant(key)
		if variant == nil || variant.Form != types.FormUnit {
			return model.Value{}, errors.InvalidVariant(st.phase, st.snapshot(), key, s.String())
		}
		return model.UnitVariant(s.Name, uint32(idx), key), nil
	case types.KindNewtypeStruct:
		inner, err := d.parseKey(st, key, s.Elem)
		if err != nil {
			return model.Value{}, err
		}
		return model.NewtypeStruct(s.Name, inner), nil
	}
	return model.Value{}, errors.UnsupportedKeyType(st.phase, st.snapshot(), s.Kind.String())
}

func (d *Decoder) decodeFields(st *state, v host.Value, s *Shape) ([]model.Field, error) {
	out := make([]model.Field, len(s.Fields))

	switch t := v.(type) {
	case *host.Object:
		for i := range s.Fields {
			f := &s.Fields[i]
			hv, ok := t.Get(f.Name)
			if !ok || hv == nil || hv.Kind() == host.KindUndefined {
				switch {
				case f.Shape.IsAny():
					out[i] = model.FieldOf(f.Name, model.Unit())
				case f.Shape.Kind == types.KindOption:
					out[i] = model.FieldOf(f.Name, model.None())
				case f.Shape.Kind == types.KindUnit:
					out[i] = model.FieldOf(f.Name, model.Unit())
				case f.Shape.Kind == types.KindUnitStruct:
					out[i] = model.FieldOf(f.Name, model.UnitStruct(f.Shape.Name))
				default:
					return nil, errors.FieldMissing(st.phase, st.snapshot(), f.Name)
				}
				continue
			}
			if err := st.enter(f.Name); err != nil {
				return nil, err
			}
			mv, err := d.decode(st, hv, f.Shape)
			if err != nil {
				return nil, err
			}
			st.leave()
			out[i] = model.FieldOf(f.Name, mv)
		}
		return out, nil
	case *host.Array:
		if len(t.Elems) != len(s.Fields) {
			return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
				Path(st.snapshot()...).
				HostType(hostKind(v)).
				Detail("expected %s of %d fields, got %d elements", s, len(s.Fields), len(t.Elems)).
				Build()
		}
		for i := range s.Fields {
			f := &s.Fields[i]
			if err := st.enter(f.Name); err != nil {
				return nil, err
			}
			mv, err := d.decode(st, t.Elems[i], f.Shape)
			if err != nil {
				return nil, err
			}
			st.leave()
			out[i] = model.FieldOf(f.Name, mv)
		}
		return out, nil
	}
	return nil, d.mismatch(st, s, v)
}

// decodeEnum accepts "Variant" for unit variants and {"Variant": payload} for all
// variants.
func (d *Decoder) decodeEnum(st *state, v host.Value, s *Shape) (model.Value, error) {
	var (
		name    string
		payload host.Value
	)
	switch t := v.(type) {
	case host.String:
		name = string(t)
	case *host.Object:
		if t.Len() != 1 {
			return model.Value{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
				Path(st.snapshot()...).
				HostType(hostKind(v)).
				Detail("expected %s as an object with one key, got %d keys", s, t.Len()).
				Build()
		}
		name = t.Keys()[0]
		payload, _ = t.Get(name)
	default:
		return model.Value{}, d.mismatch(st, s, v)
	}

	idx, variant := s.Variant(name)
	if variant == nil {
		return model.Value{}, errors.InvalidVariant(st.phase, st.snapshot(), name, s.String())
	}
	index := uint32(idx)

	if variant.Form == types.FormUnit {
		if payload == nil || host.IsNullish(payload) {
			return model.UnitVariant(s.Name, index, name), nil
		}
		if err := st.enter(name); err != nil {
			return model.Value{}, err
		}
		return model.Value{}, d.mismatch(st, Primitive(ShapeUnit), payload)
	}
	if payload == nil {
		return model.Value{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(st.snapshot()...).
			HostType(hostKind(v)).
			Detail("variant %s of %s requires a payload", name, s).
			Build()
	}

	if err := st.enter(name); err != nil {
		return model.Value{}, err
	}
	var out model.Value
	switch variant.Form {
	case types.FormNewtype:
		inner, err := d.decode(st, payload, variant.Payload)
		if err != nil {
			return model.Value{}, err
		}
		out = model.NewtypeVariant(s.Name, index, name, inner)
	case types.FormTuple:
		shape := variant.Payload
		if shape == nil {
			shape = TupleOf()
		}
		elems, err := d.decodeTuple(st, payload, shape)
		if err != nil {
			return model.Value{}, err
		}
		out = model.TupleVariant(s.Name, index, name, elems...)
	case types.FormStruct:
		shape := variant.Payload
		if shape == nil {
			shape = StructOf(name)
		}
		fields, err := d.decodeFields(st, payload, shape)
		if err != nil {
			return model.Value{}, err
		}
		out = model.StructVariant(s.Name, index, name, fields...)
	}
	st.leave()
	return out, nil
}
