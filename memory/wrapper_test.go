package memory

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/host"
	"github.com/wippyai/hostvalue/transcoder"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func instantiate(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		t.Fatal("module does not export memory")
	}
	return mem
}

// bumpAllocator hands out increasing offsets and records frees.
type bumpAllocator struct {
	next  uint32
	freed []uint32
}

func (a *bumpAllocator) Alloc(size, align uint32) (uint32, error) {
	if align > 1 {
		a.next = (a.next + align - 1) &^ (align - 1)
	}
	ptr := a.next
	a.next += size
	return ptr, nil
}

func (a *bumpAllocator) Free(ptr, size, align uint32) {
	a.freed = append(a.freed, ptr)
}

func TestWrap_Nil(t *testing.T) {
	if mem := Wrap(nil); mem != nil {
		t.Error("expected nil for nil memory")
	}
}

func TestWrapAllocator_Nil(t *testing.T) {
	if alloc := WrapAllocator(context.Background(), nil); alloc != nil {
		t.Error("expected nil for nil function")
	}
}

func TestWrapper_ReadWrite(t *testing.T) {
	mem := Wrap(instantiate(t))

	data := []byte{1, 2, 3, 4}
	if err := mem.Write(0, data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	read, err := mem.Read(0, 4)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for i, b := range read {
		if b != data[i] {
			t.Errorf("byte %d: expected %d, got %d", i, data[i], b)
		}
	}
}

func TestWrapper_Size(t *testing.T) {
	w := &Wrapper{Mem: instantiate(t)}
	if got := w.Size(); got != 65536 {
		t.Errorf("Size() = %d, want 65536", got)
	}
}

func TestWrapper_OutOfBounds(t *testing.T) {
	mem := Wrap(instantiate(t))

	if _, err := mem.Read(65536, 1); err == nil {
		t.Error("expected error for out of bounds read")
	}
	if err := mem.Write(65536, []byte{1}); err == nil {
		t.Error("expected error for out of bounds write")
	}
}

func TestBytesFromMemory_Copies(t *testing.T) {
	raw := instantiate(t)
	mem := Wrap(raw)

	if err := mem.Write(100, []byte{0xde, 0xad, 0xbe, 0xef}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	arr, err := transcoder.BytesFromMemory(mem, 100, 4)
	if err != nil {
		t.Fatalf("BytesFromMemory failed: %v", err)
	}
	if arr.Len() != 4 || arr.At(0) != 0xde || arr.At(3) != 0xef {
		t.Fatalf("unexpected contents: %s", host.Inspect(arr))
	}

	// Mutating guest memory afterwards must not affect the host array.
	if !raw.WriteByte(100, 0x00) {
		t.Fatal("WriteByte failed")
	}
	if arr.At(0) != 0xde {
		t.Error("host array aliases guest memory")
	}
}

func TestBytesFromMemory_OutOfBounds(t *testing.T) {
	mem := Wrap(instantiate(t))

	_, err := transcoder.BytesFromMemory(mem, 65530, 16)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindOutOfBounds {
		t.Fatalf("expected out_of_bounds, got %v", err)
	}
	// checked against Size before the read is attempted
	if e.Cause != nil || e.Value != 65546 {
		t.Errorf("got cause %v value %v, want a size check at 65546", e.Cause, e.Value)
	}
}

func TestBytesToMemory(t *testing.T) {
	mem := Wrap(instantiate(t))
	alloc := &bumpAllocator{next: 8}

	arr := transcoder.ToHostBytes([]byte("hello"))
	ptr, n, err := transcoder.BytesToMemory(mem, alloc, arr)
	if err != nil {
		t.Fatalf("BytesToMemory failed: %v", err)
	}
	if ptr != 8 || n != 5 {
		t.Errorf("got ptr=%d len=%d, want ptr=8 len=5", ptr, n)
	}

	read, err := mem.Read(ptr, n)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(read) != "hello" {
		t.Errorf("guest memory = %q, want %q", read, "hello")
	}
}

func TestBytesToMemory_FreesOnFailure(t *testing.T) {
	mem := Wrap(instantiate(t))
	alloc := &bumpAllocator{next: 65534}

	_, _, err := transcoder.BytesToMemory(mem, alloc, transcoder.ToHostBytes([]byte{1, 2, 3, 4}))
	if err == nil {
		t.Fatal("expected error for write past the end of memory")
	}
	if len(alloc.freed) != 1 || alloc.freed[0] != 65534 {
		t.Errorf("allocation not freed: %v", alloc.freed)
	}
}

func TestBytesToMemory_Empty(t *testing.T) {
	mem := Wrap(instantiate(t))

	ptr, n, err := transcoder.BytesToMemory(mem, nil, host.NewTypedByteArray(0))
	if err != nil || ptr != 0 || n != 0 {
		t.Errorf("got (%d, %d, %v), want (0, 0, nil)", ptr, n, err)
	}
}
