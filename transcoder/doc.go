// Package transcoder converts between serializable data model values and host values.
//
// This package handles both directions of the conversion plus the Go reflection
// adapter that feeds it:
//
//	Go value ←→ [Compiler] ←→ model.Value ←→ [Encoder/Decoder] ←→ host.Value
//
// # Encoding Table
//
//	Data model                         Host value
//	──────────────────────────────────────────────────────────────
//	unit, unit struct                  undefined (never null)
//	bool                               boolean
//	i8..i32, u8..u32                   number (always exact)
//	i64, u64                           number when |v| <= 2^53-1, else error or bigint
//	f32, f64                           number (NaN, -0, ±Inf preserved)
//	char, string                       string
//	bytes                              Uint8Array copy (or array of numbers)
//	option                             undefined/null when absent, else inner
//	newtype struct                     inner value
//	seq, tuple, tuple struct           array
//	map                                object (or array of [k, v] pairs)
//	struct                             object, fields in declaration order
//	unit variant                       string
//	newtype/tuple/struct variant       {"Variant": payload}
//
// # Decoding and Shapes
//
// Host values lose type information: 42 could be any integer width or a float.
// Decode takes a *Shape describing the expected type. Shapes come from:
//
//  1. Hand construction: SeqOf(Primitive(ShapeU8)), StructOf("Point", ...)
//  2. Compiler.Compile(reflect.Type) for Go types
//  3. ShapeFromWIT(wit.Type) for WebAssembly interface types
//
// A nil shape infers: numbers decode as f64, objects as string-keyed maps,
// bigints as i64 (or u64 when only that fits).
//
// # Options
//
//	MapMode        MapAsObject (default) or MapAsPairs
//	Int64          Int64Strict (default), Int64BigInt, Int64BigIntWhenUnsafe
//	MissingAsNull  absent options become null instead of undefined
//	BytesAsArray   bytes become a plain array of numbers
//	MaxDepth       nesting limit, default 128
//
// # Key Types
//
//	Encoder   - model.Value → host.Value
//	Decoder   - host.Value + Shape → model.Value
//	Compiler  - reflect.Type → Shape (cached), Go value ↔ model.Value
//	Shape     - decoding hint
//
// # Thread Safety
//
// Encoder, Decoder and Compiler are safe for concurrent use. Per-call depth and
// path bookkeeping lives in pooled state that is never shared between calls.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[encode] integer_overflow at user.id: host type number - 64-bit integer 9007199254740992 is outside the safe integer range
//	[decode] field_missing at user: required field "name" not found
//
// A failed call returns no partial result.
package transcoder
