package numeric

import "math"

// MaxSafeInteger is the largest integer magnitude a double holds exactly.
const MaxSafeInteger = 1<<53 - 1

// Int64ToNumber returns v as a double when |v| <= MaxSafeInteger.
func Int64ToNumber(v int64) (float64, bool) {
	if v < -MaxSafeInteger || v > MaxSafeInteger {
		return 0, false
	}
	return float64(v), true
}

// Uint64ToNumber returns v as a double when v <= MaxSafeInteger.
func Uint64ToNumber(v uint64) (float64, bool) {
	if v > MaxSafeInteger {
		return 0, false
	}
	return float64(v), true
}

// IsSafeInteger reports whether f is integral and within ±MaxSafeInteger.
func IsSafeInteger(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) <= MaxSafeInteger
}

// ValidateChar rejects surrogates (0xD800-0xDFFF) and values >= 0x110000.
func ValidateChar(r rune) bool {
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	if r < 0 || r >= 0x110000 {
		return false
	}
	return true
}
