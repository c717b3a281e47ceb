package transcoder

import (
	"sync"

	"github.com/wippyai/hostvalue/host"
	"github.com/wippyai/hostvalue/model"
)

var (
	defaultEncoder     *Encoder
	defaultDecoder     *Decoder
	defaultEncoderOnce sync.Once
	defaultDecoderOnce sync.Once
)

func sharedEncoder() *Encoder {
	defaultEncoderOnce.Do(func() {
		defaultEncoder = NewEncoderWithCompiler(defaultCompiler, DefaultOptions())
	})
	return defaultEncoder
}

func sharedDecoder() *Decoder {
	defaultDecoderOnce.Do(func() {
		defaultDecoder = NewDecoderWithCompiler(defaultCompiler, DefaultOptions())
	})
	return defaultDecoder
}

// Encode converts v with default options.
func Encode(v model.Value) (host.Value, error) {
	return sharedEncoder().Encode(v)
}

// Decode converts v with default options. A nil shape infers the result kind.
func Decode(v host.Value, shape *Shape) (model.Value, error) {
	return sharedDecoder().Decode(v, shape)
}

// Marshal converts a Go value to a host value with default options.
func Marshal(v any) (host.Value, error) {
	return sharedEncoder().Marshal(v)
}

// Unmarshal decodes a host value into the Go value ptr points to with default options.
func Unmarshal(v host.Value, ptr any) error {
	return sharedDecoder().Unmarshal(v, ptr)
}
