package numeric

import (
	"math"
	"math/big"
)

// SignedRange returns the inclusive bounds of a signed integer of the given width.
func SignedRange(width int) (lo, hi int64) {
	switch width {
	case 8:
		return math.MinInt8, math.MaxInt8
	case 16:
		return math.MinInt16, math.MaxInt16
	case 32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// UnsignedMax returns the largest unsigned integer of the given width.
func UnsignedMax(width int) uint64 {
	switch width {
	case 8:
		return math.MaxUint8
	case 16:
		return math.MaxUint16
	case 32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// NumberToInt converts a double to a signed integer of width bits. The value must be
// integral and in range; 64-bit targets additionally require a safe integer since a
// larger double may already have lost precision.
func NumberToInt(f float64, width int) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if width >= 64 {
		if math.Abs(f) > MaxSafeInteger {
			return 0, false
		}
		return int64(f), true
	}
	lo, hi := SignedRange(width)
	if f < float64(lo) || f > float64(hi) {
		return 0, false
	}
	return int64(f), true
}

// NumberToUint converts a double to an unsigned integer of width bits, with the same
// rules as NumberToInt.
func NumberToUint(f float64, width int) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 {
		return 0, false
	}
	if width >= 64 {
		if f > MaxSafeInteger {
			return 0, false
		}
		return uint64(f), true
	}
	if f > float64(UnsignedMax(width)) {
		return 0, false
	}
	return uint64(f), true
}

// BigToInt converts an arbitrary precision integer to a signed integer of width bits.
func BigToInt(b *big.Int, width int) (int64, bool) {
	if !b.IsInt64() {
		return 0, false
	}
	v := b.Int64()
	lo, hi := SignedRange(width)
	if v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// BigToUint converts an arbitrary precision integer to an unsigned integer of width bits.
func BigToUint(b *big.Int, width int) (uint64, bool) {
	if !b.IsUint64() {
		return 0, false
	}
	v := b.Uint64()
	if v > UnsignedMax(width) {
		return 0, false
	}
	return v, true
}
