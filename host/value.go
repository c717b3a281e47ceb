package host

import (
	"math"
	"math/big"
)

// Kind is the runtime tag of a host value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindBigInt
	KindString
	KindArray
	KindObject
	KindTypedByteArray
)

var kindNames = [...]string{
	KindUndefined:      "undefined",
	KindNull:           "null",
	KindBoolean:        "boolean",
	KindNumber:         "number",
	KindBigInt:         "bigint",
	KindString:         "string",
	KindArray:          "array",
	KindObject:         "object",
	KindTypedByteArray: "uint8array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is any host value.
type Value interface {
	Kind() Kind
}

// KindOf returns the kind of v. A nil Value reads as Undefined.
func KindOf(v Value) Kind {
	if v == nil {
		return KindUndefined
	}
	return v.Kind()
}

type (
	Undefined struct{}
	Null      struct{}
	Boolean   bool
	Number    float64
	String    string
)

func (Undefined) Kind() Kind { return KindUndefined }
func (Null) Kind() Kind      { return KindNull }
func (Boolean) Kind() Kind   { return KindBoolean }
func (Number) Kind() Kind    { return KindNumber }
func (String) Kind() Kind    { return KindString }

// MaxSafeInteger is 2^53-1, the largest integer magnitude a Number holds exactly.
const MaxSafeInteger = 1<<53 - 1

// Constants for the special Number values.
var (
	NaN         = Number(math.NaN())
	PosInfinity = Number(math.Inf(1))
	NegInfinity = Number(math.Inf(-1))
)

// IsSafeInteger reports whether n is integral and within ±MaxSafeInteger.
func (n Number) IsSafeInteger() bool {
	f := float64(n)
	return f == math.Trunc(f) && math.Abs(f) <= MaxSafeInteger
}

// BigInt is an immutable arbitrary precision integer.
type BigInt struct {
	v *big.Int
}

func (BigInt) Kind() Kind { return KindBigInt }

// NewBigInt copies x.
func NewBigInt(x *big.Int) BigInt {
	return BigInt{v: new(big.Int).Set(x)}
}

func BigIntFromInt64(x int64) BigInt {
	return BigInt{v: big.NewInt(x)}
}

func BigIntFromUint64(x uint64) BigInt {
	return BigInt{v: new(big.Int).SetUint64(x)}
}

// Int returns a copy of the integer.
func (b BigInt) Int() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.v)
}

func (b BigInt) Int64() (int64, bool) {
	if b.v == nil {
		return 0, true
	}
	if !b.v.IsInt64() {
		return 0, false
	}
	return b.v.Int64(), true
}

func (b BigInt) Uint64() (uint64, bool) {
	if b.v == nil {
		return 0, true
	}
	if !b.v.IsUint64() {
		return 0, false
	}
	return b.v.Uint64(), true
}

func (b BigInt) String() string {
	if b.v == nil {
		return "0"
	}
	return b.v.String()
}

func (b BigInt) cmp(o BigInt) int {
	return b.Int().Cmp(o.Int())
}

// Array is an ordered list of values.
type Array struct {
	Elems []Value
}

func (*Array) Kind() Kind { return KindArray }

func NewArray(elems ...Value) *Array {
	return &Array{Elems: elems}
}

func (a *Array) Len() int {
	return len(a.Elems)
}

// Object is a string-keyed property map that remembers insertion order.
type Object struct {
	props map[string]Value
	keys  []string
}

func (*Object) Kind() Kind { return KindObject }

func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// Set assigns a property. Reassigning an existing key keeps its original position.
func (o *Object) Set(key string, v Value) {
	if o.props == nil {
		o.props = make(map[string]Value)
	}
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = v
}

// Get returns the property and whether it exists. A property set to Undefined exists.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.props[key]
	return v, ok
}

// Keys returns property names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Range calls fn for each property in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.props[k]) {
			return
		}
	}
}

// TypedByteArray is an owned octet buffer.
type TypedByteArray struct {
	data []byte
}

func (*TypedByteArray) Kind() Kind { return KindTypedByteArray }

// NewTypedByteArray allocates a zeroed array of n bytes.
func NewTypedByteArray(n int) *TypedByteArray {
	return &TypedByteArray{data: make([]byte, n)}
}

func (t *TypedByteArray) Len() int {
	return len(t.data)
}

func (t *TypedByteArray) At(i int) byte {
	return t.data[i]
}

func (t *TypedByteArray) SetAt(i int, b byte) {
	t.data[i] = b
}

// CopyTo copies min(len(dst), Len()) bytes into dst and returns the count.
func (t *TypedByteArray) CopyTo(dst []byte) int {
	return copy(dst, t.data)
}

// CopyFrom copies min(len(src), Len()) bytes from src and returns the count.
func (t *TypedByteArray) CopyFrom(src []byte) int {
	return copy(t.data, src)
}
