// Package types defines shape descriptors used as decoding hints.
//
// A Shape names the data-model category the decoder should produce for a host
// value, recursively. Host numbers cannot tell i32(42) from f64(42.0); the shape
// supplies that choice. Shapes are built by hand, compiled from Go types, or
// derived from WIT types, and are immutable once built.
//
// # Key Types
//
//   - Shape: recursive type description with fields, variants and element shapes
//   - Kind: shape discriminator (primitive, seq, map, struct, enum, ...)
//   - Form: enum variant payload form (unit, newtype, tuple, struct)
//
// This package is internal to the transcoder.
package types
