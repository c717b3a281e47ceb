package transcoder

import (
	hostvalue "github.com/wippyai/hostvalue"
	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/host"
)

type (
	Memory      = hostvalue.Memory
	MemorySizer = hostvalue.MemorySizer
	Allocator   = hostvalue.Allocator
)

// ToHostBytes copies a borrowed byte slice into a new TypedByteArray. Later changes
// to b are not visible through the result.
func ToHostBytes(b []byte) *host.TypedByteArray {
	out := host.NewTypedByteArray(len(b))
	out.CopyFrom(b)
	return out
}

// FromHostBytes copies a TypedByteArray into a new slice owned by the caller.
// A nil array yields an empty, non-nil slice.
func FromHostBytes(t *host.TypedByteArray) []byte {
	if t == nil {
		return []byte{}
	}
	out := make([]byte, t.Len())
	t.CopyTo(out)
	return out
}

// BytesFromMemory copies length bytes at ptr out of guest memory. Memory
// implementations may return views into linear memory, so the data is copied
// before the call returns. When mem is also a MemorySizer the range is checked
// against its size before reading.
func BytesFromMemory(mem Memory, ptr, length uint32) (*host.TypedByteArray, error) {
	if mem == nil {
		return nil, errors.NilPointer(errors.PhaseMemory, nil, "Memory")
	}
	if length == 0 {
		return host.NewTypedByteArray(0), nil
	}
	if sz, ok := mem.(MemorySizer); ok {
		if end := uint64(ptr) + uint64(length); end > uint64(sz.Size()) {
			return nil, errors.OutOfBounds(errors.PhaseMemory, nil, int(end), int(sz.Size()))
		}
	}
	data, err := mem.Read(ptr, length)
	if err != nil {
		return nil, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Value(ptr).
			Cause(err).
			Detail("read %d bytes at %d", length, ptr).
			Build()
	}
	return ToHostBytes(data), nil
}

// BytesToMemory allocates guest memory for t and copies its contents there. The
// allocation is freed if the write fails. Returns the guest pointer and length.
func BytesToMemory(mem Memory, alloc Allocator, t *host.TypedByteArray) (ptr, length uint32, err error) {
	if mem == nil {
		return 0, 0, errors.NilPointer(errors.PhaseMemory, nil, "Memory")
	}
	if t == nil || t.Len() == 0 {
		return 0, 0, nil
	}
	if alloc == nil {
		return 0, 0, errors.NilPointer(errors.PhaseMemory, nil, "Allocator")
	}
	if uint64(t.Len()) > uint64(^uint32(0)) {
		return 0, 0, errors.OutOfBounds(errors.PhaseMemory, nil, t.Len(), int(^uint32(0)))
	}
	length = uint32(t.Len())
	ptr, err = alloc.Alloc(length, 1)
	if err != nil {
		return 0, 0, errors.Wrap(errors.PhaseMemory, errors.KindInvalidData, err, "guest allocation failed")
	}
	if err := mem.Write(ptr, FromHostBytes(t)); err != nil {
		alloc.Free(ptr, length, 1)
		return 0, 0, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Value(ptr).
			Cause(err).
			Detail("write %d bytes at %d", length, ptr).
			Build()
	}
	return ptr, length, nil
}
