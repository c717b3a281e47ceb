package transcoder

// MapMode selects the host representation of maps.
type MapMode uint8

const (
	// MapAsObject encodes maps as Objects. Keys must be strings, chars, integers,
	// unit variants, or newtype structs around one of those.
	MapAsObject MapMode = iota
	// MapAsPairs encodes maps as an Array of [key, value] Arrays and accepts any key.
	MapAsPairs
)

func (m MapMode) String() string {
	if m == MapAsPairs {
		return "pairs"
	}
	return "object"
}

// Int64Mode selects how i64 and u64 values are represented.
type Int64Mode uint8

const (
	// Int64Strict encodes 64-bit integers as Numbers and fails with IntegerOverflow
	// outside [-MaxSafeInteger, MaxSafeInteger].
	Int64Strict Int64Mode = iota
	// Int64BigInt encodes every 64-bit integer as a BigInt.
	Int64BigInt
	// Int64BigIntWhenUnsafe uses a Number when exact and a BigInt otherwise.
	Int64BigIntWhenUnsafe
)

func (m Int64Mode) String() string {
	switch m {
	case Int64BigInt:
		return "bigint"
	case Int64BigIntWhenUnsafe:
		return "bigint-when-unsafe"
	default:
		return "strict"
	}
}

// DefaultMaxDepth is the default nesting limit for both directions.
const DefaultMaxDepth = 128

// Options configures encoder and decoder behavior.
type Options struct {
	// MaxDepth bounds compound nesting. Zero or negative means DefaultMaxDepth.
	MaxDepth int
	MapMode  MapMode
	Int64    Int64Mode
	// MissingAsNull encodes an absent Option as Null instead of Undefined.
	// Unit is always Undefined.
	MissingAsNull bool
	// BytesAsArray encodes Bytes as an Array of Numbers instead of a TypedByteArray.
	BytesAsArray bool
}

// DefaultOptions returns default conversion configuration.
func DefaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
		MapMode:  MapAsObject,
		Int64:    Int64Strict,
	}
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
