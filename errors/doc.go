// Package errors provides structured error types for the hostvalue library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/host type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("user", "age").
//		GoType("string").
//		HostType("number").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IntegerOverflow(path, 64, int64(math.MaxInt64))
//	err := errors.DepthExceeded(errors.PhaseDecode, path, 128)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match on Kind alone, regardless of phase:
//
//	if errors.Is(err, errors.ErrIntegerOverflow) { ... }
package errors
