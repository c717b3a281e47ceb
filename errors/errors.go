package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // shape compilation from Go or WIT types
	PhaseEncode  Phase = "encode"  // serializable value to host value
	PhaseDecode  Phase = "decode"  // host value to serializable value
	PhaseAdapt   Phase = "adapt"   // Go value to/from serializable value
	PhaseMemory  Phase = "memory"  // guest linear memory copies
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch             Kind = "type_mismatch"
	KindOutOfBounds              Kind = "out_of_bounds"
	KindInvalidData              Kind = "invalid_data"
	KindUnsupported              Kind = "unsupported"
	KindFieldMissing             Kind = "field_missing"
	KindInvalidUTF8              Kind = "invalid_utf8"
	KindInvalidChar              Kind = "invalid_char"
	KindNilPointer               Kind = "nil_pointer"
	KindInvalidVariant           Kind = "invalid_variant"
	KindIntegerOverflow          Kind = "integer_overflow"
	KindInvalidIntegerConversion Kind = "invalid_integer_conversion"
	KindUnsupportedKeyType       Kind = "unsupported_key_type"
	KindDepthExceeded            Kind = "depth_exceeded"
)

// Sentinels for errors.Is. They carry no phase and match any phase.
var (
	ErrIntegerOverflow          = &Error{Kind: KindIntegerOverflow}
	ErrInvalidIntegerConversion = &Error{Kind: KindInvalidIntegerConversion}
	ErrUnsupportedKeyType       = &Error{Kind: KindUnsupportedKeyType}
	ErrDepthExceeded            = &Error{Kind: KindDepthExceeded}
	ErrTypeMismatch             = &Error{Kind: KindTypeMismatch}
	ErrFieldMissing             = &Error{Kind: KindFieldMissing}
	ErrInvalidChar              = &Error{Kind: KindInvalidChar}
	ErrInvalidVariant           = &Error{Kind: KindInvalidVariant}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	HostType string
	Detail   string
	Path     []string
	// Width is the integer bit width for overflow and integer conversion errors.
	Width int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.GoType != "" || e.HostType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.HostType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", host type ")
			b.WriteString(e.HostType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("host type ")
			b.WriteString(e.HostType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.HostType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty target phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// JoinPath renders path segments with dots, attaching index segments ("[3]") directly.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is forwards to the standard library so callers need a single errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As forwards to the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// HostType sets the host value type name
func (b *Builder) HostType(t string) *Builder {
	b.err.HostType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Width sets the integer bit width
func (b *Builder) Width(w int) *Builder {
	b.err.Width = w
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch reports a host value of kind hostType where want was expected.
func TypeMismatch(phase Phase, path []string, want, hostType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		HostType: hostType,
		Detail:   "expected " + want,
	}
}

// IntegerOverflow reports a 64-bit integer outside the host's safe integer range.
func IntegerOverflow(path []string, width int, value any) *Error {
	return &Error{
		Phase:    PhaseEncode,
		Kind:     KindIntegerOverflow,
		Path:     path,
		HostType: "number",
		Width:    width,
		Value:    value,
		Detail:   fmt.Sprintf("%d-bit integer %v is outside the safe integer range", width, value),
	}
}

// InvalidIntegerConversion reports a host number or bigint that does not fit the
// requested integer width.
func InvalidIntegerConversion(path []string, value any, target string, width int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidIntegerConversion,
		Path:   path,
		Width:  width,
		Value:  value,
		Detail: fmt.Sprintf("%v cannot be converted to %s", value, target),
	}
}

// UnsupportedKeyType reports a map key that has no host object key representation.
func UnsupportedKeyType(phase Phase, path []string, keyKind string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedKeyType,
		Path:   path,
		Detail: fmt.Sprintf("%s cannot be used as an object key", keyKind),
	}
}

// DepthExceeded reports that nesting went past the configured limit.
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Value:  limit,
		Detail: fmt.Sprintf("nesting exceeds maximum depth %d", limit),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidChar reports a rune that is not a Unicode scalar value, or a string that is
// not exactly one.
func InvalidChar(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidChar,
		Path:   path,
		Detail: detail,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidVariant reports an unknown enum variant name.
func InvalidVariant(phase Phase, path []string, name, enumName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidVariant,
		Path:   path,
		Value:  name,
		Detail: fmt.Sprintf("unknown variant %q of %s", name, enumName),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
