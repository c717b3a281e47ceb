// Package numeric implements the numeric policy shared by the encoder and decoder.
//
// The host's only non-BigInt numeric type is an IEEE-754 double, so integers are
// exact only up to MaxSafeInteger (2^53-1). Integers of width 32 or less always fit.
// 64-bit integers outside the safe range are reported, never rounded.
//
// # Contents
//
//   - safe.go: safe integer checks for the encode direction
//   - coerce.go: Number and BigInt to fixed width conversions for the decode direction
//
// This package is internal to the transcoder.
package numeric
