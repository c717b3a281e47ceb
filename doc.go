// Package hostvalue converts values between a serde-style serializable data model
// and the dynamic value model of a JavaScript-like host runtime.
//
// The two type systems disagree on numbers and memory: the data model has fixed
// width signed and unsigned integers up to 64 bits, while the host only has
// IEEE-754 doubles plus an opaque BigInt. The library maps one onto the other
// without silent precision loss.
//
// # Architecture Overview
//
//	hostvalue/          Root package with Memory and Allocator interfaces
//	├── host/           Host values: undefined, null, number, bigint, array, object, ...
//	├── model/          Serializable data model values
//	├── transcoder/     Encoder, Decoder, shapes, Go reflection adapter, WIT shapes
//	├── memory/         wazero linear memory adapter
//	└── errors/         Structured error types
//
// # Quick Start
//
// Encode a data model value:
//
//	enc := transcoder.NewEncoder()
//	hv, err := enc.Encode(model.Struct("Point",
//	    model.FieldOf("x", model.I32(1)),
//	    model.FieldOf("y", model.I32(2)),
//	))
//	fmt.Println(host.Inspect(hv)) // {"x": 1, "y": 2}
//
// Decode with a shape hint:
//
//	dec := transcoder.NewDecoder()
//	v, err := dec.Decode(host.Number(42), transcoder.Primitive(transcoder.ShapeU8))
//	// v.Kind == model.KindU8, v.Uint == 42
//
// Or go through Go types directly:
//
//	type User struct {
//	    Name string `host:"name"`
//	    Age  uint8  `host:"age"`
//	}
//	hv, err := enc.Marshal(User{Name: "ada", Age: 36})
//	var u User
//	err = dec.Unmarshal(hv, &u)
//
// # Numeric Policy
//
// Integers of 32 bits or fewer always encode as exact Numbers. i64 and u64 values
// encode as Numbers only within [-(2^53-1), 2^53-1]; outside that range Encode
// fails with an integer_overflow error unless Options.Int64 selects BigInt output.
// Floats pass through unchanged, including NaN, signed zero, subnormals and
// infinities.
//
// # Byte Buffers
//
// Bytes are always copied across the boundary in both directions. A produced
// TypedByteArray never aliases the caller's slice, and decoded bytes never alias
// the host buffer.
//
// # Thread Safety
//
// Encoders, Decoders and Compilers are safe for concurrent use. Each call keeps
// its own depth and path bookkeeping. Host Array, Object and TypedByteArray
// values are not synchronized.
//
// # Error Handling
//
// Errors are values from the errors package and carry the phase, kind and path:
//
//	[encode] integer_overflow at items[2].id: host type number - 64-bit integer 9007199254740992 is outside the safe integer range
//	[decode] invalid_integer_conversion at age: 300 cannot be converted to u8
//
// A failed call returns no partial result.
package hostvalue
