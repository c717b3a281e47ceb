// Package host models the dynamic value space of a script runtime.
//
// A host value is one of:
//
//	Undefined       absent value
//	Null            explicit null
//	Boolean         true / false
//	Number          IEEE-754 double, the only non-BigInt numeric type
//	BigInt          arbitrary precision integer
//	String          Unicode text
//	*Array          ordered list of values
//	*Object         ordered string-keyed property map
//	*TypedByteArray owned octet buffer
//
// There is no integer type: every fixed-width integer collapses to Number or BigInt,
// which is why decoding needs a shape hint.
//
// # Equality
//
// StrictEqual follows "===": NaN is unequal to itself, +0 equals -0, compound values
// compare by identity. SameValue follows Object.is. DeepEqual compares structure with
// SameValue at the leaves and is meant for tests and diagnostics. NaN is detected
// with IsNaN, never by comparing against a NaN literal.
//
// # Ownership
//
// TypedByteArray never hands out its backing slice. Bytes go in and out through
// CopyFrom and CopyTo so host storage cannot alias caller memory.
package host
