package transcoder

import (
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/host"
	"github.com/wippyai/hostvalue/model"
	"github.com/wippyai/hostvalue/transcoder/internal/numeric"
)

// Encoder converts serializable values into host values.
// Safe for concurrent use; all per-call state lives in a pooled state.
type Encoder struct {
	compiler *Compiler
	opts     Options
}

// NewEncoder creates an encoder with default options.
func NewEncoder() *Encoder {
	return NewEncoderWithOptions(DefaultOptions())
}

// NewEncoderWithOptions creates an encoder with the given options and its own compiler.
func NewEncoderWithOptions(opts Options) *Encoder {
	return NewEncoderWithCompiler(NewCompiler(), opts)
}

// NewEncoderWithCompiler creates an encoder that shares a compiler cache.
func NewEncoderWithCompiler(c *Compiler, opts Options) *Encoder {
	Logger().Debug("encoder configured",
		zap.Stringer("map_mode", opts.MapMode),
		zap.Stringer("int64", opts.Int64),
		zap.Bool("missing_as_null", opts.MissingAsNull),
		zap.Bool("bytes_as_array", opts.BytesAsArray),
		zap.Int("max_depth", opts.maxDepth()))
	return &Encoder{compiler: c, opts: opts}
}

func (e *Encoder) Options() Options {
	return e.opts
}

// Encode converts v into a host value. On error no partial result is returned.
func (e *Encoder) Encode(v model.Value) (host.Value, error) {
	st := getState(errors.PhaseEncode, e.opts.maxDepth())
	defer putState(st)

	out, err := e.encode(st, &v)
	if err != nil {
		Logger().Debug("encode failed", zap.Stringer("kind", v.Kind), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Marshal converts a Go value into the data model and encodes it. Both steps
// share the MaxDepth limit.
func (e *Encoder) Marshal(v any) (host.Value, error) {
	mv, err := e.compiler.fromGoLimit(v, e.opts.maxDepth())
	if err != nil {
		return nil, err
	}
	return e.Encode(mv)
}

func (e *Encoder) encode(st *state, v *model.Value) (host.Value, error) {
	switch v.Kind {
	case model.KindUnit, model.KindUnitStruct:
		return host.Undefined{}, nil
	case model.KindBool:
		return host.Boolean(v.Bool), nil
	case model.KindI8, model.KindI16, model.KindI32:
		return host.Number(float64(v.Int)), nil
	case model.KindU8, model.KindU16, model.KindU32:
		return host.Number(float64(v.Uint)), nil
	case model.KindI64:
		return e.encodeI64(st, v.Int)
	case model.KindU64:
		return e.encodeU64(st, v.Uint)
	case model.KindF32:
		return host.Number(float64(float32(v.Float))), nil
	case model.KindF64:
		return host.Number(v.Float), nil
	case model.KindChar:
		if !numeric.ValidateChar(v.Char) {
			return nil, errors.InvalidChar(st.phase, st.snapshot(),
				"rune "+strconv.QuoteRuneToASCII(v.Char)+" is not a Unicode scalar value")
		}
		return host.String(string(v.Char)), nil
	case model.KindString:
		if !utf8.ValidString(v.Str) {
			return nil, errors.InvalidUTF8(st.phase, st.snapshot(), []byte(v.Str))
		}
		return host.String(v.Str), nil
	case model.KindBytes:
		return e.encodeBytes(v.Bytes), nil
	case model.KindOption:
		if v.Inner == nil {
			if e.opts.MissingAsNull {
				return host.Null{}, nil
			}
			return host.Undefined{}, nil
		}
		return e.encodeInner(st, v.Inner)
	case model.KindNewtypeStruct:
		if v.Inner == nil {
			return nil, errors.InvalidData(st.phase, st.snapshot(), "newtype struct "+v.Name+" has no value")
		}
		return e.encodeInner(st, v.Inner)
	case model.KindSeq, model.KindTuple, model.KindTupleStruct:
		return e.encodeElems(st, v.Elems)
	case model.KindMap:
		if e.opts.MapMode == MapAsPairs {
			return e.encodePairs(st, v.Entries)
		}
		return e.encodeObject(st, v.Entries)
	case model.KindStruct:
		return e.encodeFields(st, v.Fields)
	case model.KindUnitVariant:
		return host.String(v.Variant), nil
	case model.KindNewtypeVariant:
		if v.Inner == nil {
			return nil, errors.InvalidData(st.phase, st.snapshot(), "variant "+v.Variant+" has no value")
		}
		return e.tagged(st, v.Variant, func() (host.Value, error) {
			return e.encode(st, v.Inner)
		})
	case model.KindTupleVariant:
		return e.tagged(st, v.Variant, func() (host.Value, error) {
			return e.encodeElems(st, v.Elems)
		})
	case model.KindStructVariant:
		return e.tagged(st, v.Variant, func() (host.Value, error) {
			return e.encodeFields(st, v.Fields)
		})
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, st.snapshot(), "unknown value kind "+v.Kind.String())
	}
}

func (e *Encoder) encodeI64(st *state, v int64) (host.Value, error) {
	if e.opts.Int64 == Int64BigInt {
		return host.BigIntFromInt64(v), nil
	}
	if f, ok := numeric.Int64ToNumber(v); ok {
		return host.Number(f), nil
	}
	if e.opts.Int64 == Int64BigIntWhenUnsafe {
		return host.BigIntFromInt64(v), nil
	}
	return nil, errors.IntegerOverflow(st.snapshot(), 64, v)
}

func (e *Encoder) encodeU64(st *state, v uint64) (host.Value, error) {
	if e.opts.Int64 == Int64BigInt {
		return host.BigIntFromUint64(v), nil
	}
	if f, ok := numeric.Uint64ToNumber(v); ok {
		return host.Number(f), nil
	}
	if e.opts.Int64 == Int64BigIntWhenUnsafe {
		return host.BigIntFromUint64(v), nil
	}
	return nil, errors.IntegerOverflow(st.snapshot(), 64, v)
}

// encodeBytes always copies; the result never aliases the caller's slice.
func (e *Encoder) encodeBytes(b []byte) host.Value {
	if e.opts.BytesAsArray {
		elems := make([]host.Value, len(b))
		for i, c := range b {
			elems[i] = host.Number(float64(c))
		}
		return host.NewArray(elems...)
	}
	return ToHostBytes(b)
}

func (e *Encoder) encodeInner(st *state, inner *model.Value) (host.Value, error) {
	if err := st.deeper(); err != nil {
		return nil, err
	}
	out, err := e.encode(st, inner)
	if err != nil {
		return nil, err
	}
	st.shallower()
	return out, nil
}

func (e *Encoder) encodeElems(st *state, elems []model.Value) (host.Value, error) {
	out := make([]host.Value, len(elems))
	for i := range elems {
		if err := st.enterIndex(i); err != nil {
			return nil, err
		}
		hv, err := e.encode(st, &elems[i])
		if err != nil {
			return nil, err
		}
		st.leave()
		out[i] = hv
	}
	return host.NewArray(out...), nil
}

func (e *Encoder) encodeFields(st *state, fields []model.Field) (host.Value, error) {
	obj := host.NewObject()
	for i := range fields {
		f := &fields[i]
		if err := st.enter(f.Name); err != nil {
			return nil, err
		}
		hv, err := e.encode(st, &f.Value)
		if err != nil {
			return nil, err
		}
		st.leave()
		obj.Set(f.Name, hv)
	}
	return obj, nil
}

func (e *Encoder) encodeObject(st *state, entries []model.Entry) (host.Value, error) {
	obj := host.NewObject()
	for i := range entries {
		ent := &entries[i]
		key, err := e.objectKey(st, &ent.Key)
		if err != nil {
			return nil, err
		}
		if err := st.enter(key); err != nil {
			return nil, err
		}
		hv, err := e.encode(st, &ent.Value)
		if err != nil {
			return nil, err
		}
		st.leave()
		obj.Set(key, hv)
	}
	return obj, nil
}

func (e *Encoder) encodePairs(st *state, entries []model.Entry) (host.Value, error) {
	out := make([]host.Value, len(entries))
	for i := range entries {
		if err := st.enterIndex(i); err != nil {
			return nil, err
		}
		k, err := e.encode(st, &entries[i].Key)
		if err != nil {
			return nil, err
		}
		v, err := e.encode(st, &entries[i].Value)
		if err != nil {
			return nil, err
		}
		st.leave()
		out[i] = host.NewArray(k, v)
	}
	return host.NewArray(out...), nil
}

// objectKey renders a map key as an Object property name.
func (e *Encoder) objectKey(st *state, k *model.Value) (string, error) {
	switch k.Kind {
	case model.KindString:
		if !utf8.ValidString(k.Str) {
			return "", errors.InvalidUTF8(st.phase, st.snapshot(), []byte(k.Str))
		}
		return k.Str, nil
	case model.KindChar:
		if !numeric.ValidateChar(k.Char) {
			return "", errors.InvalidChar(st.phase, st.snapshot(),
				"rune "+strconv.QuoteRuneToASCII(k.Char)+" is not a Unicode scalar value")
		}
		return string(k.Char), nil
	case model.KindI8, model.KindI16, model.KindI32, model.KindI64:
		return strconv.FormatInt(k.Int, 10), nil
	case model.KindU8, model.KindU16, model.KindU32, model.KindU64:
		return strconv.FormatUint(k.Uint, 10), nil
	case model.KindUnitVariant:
		return k.Variant, nil
	case model.KindNewtypeStruct:
		if k.Inner != nil {
			return e.objectKey(st, k.Inner)
		}
	}
	return "", errors.UnsupportedKeyType(st.phase, st.snapshot(), k.Kind.String())
}

// tagged wraps a variant payload in a single-key Object.
func (e *Encoder) tagged(st *state, variant string, payload func() (host.Value, error)) (host.Value, error) {
	if err := st.enter(variant); err != nil {
		return nil, err
	}
	inner, err := payload()
	if err != nil {
		return nil, err
	}
	st.leave()
	obj := host.NewObject()
	obj.Set(variant, inner)
	return obj, nil
}
