package memory

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	hostvalue "github.com/wippyai/hostvalue"
)

// Wrap wraps a wazero api.Memory to implement hostvalue.Memory.
func Wrap(mem api.Memory) hostvalue.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// WrapAllocator wraps a guest realloc export (cabi_realloc signature) to implement
// hostvalue.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) hostvalue.Allocator {
	if fn == nil {
		return nil
	}
	return &AllocatorWrapper{Ctx: ctx, Fn: fn}
}

var (
	_ hostvalue.Memory      = (*Wrapper)(nil)
	_ hostvalue.MemorySizer = (*Wrapper)(nil)
	_ hostvalue.Allocator   = (*AllocatorWrapper)(nil)
)

// Wrapper adapts wazero api.Memory to the hostvalue.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// Read returns a view of guest memory. The view is invalidated by memory growth.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return fmt.Errorf("memory write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// AllocatorWrapper adapts a guest realloc function to hostvalue.Allocator.
type AllocatorWrapper struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc allocates memory using realloc(0, 0, align, size).
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, fmt.Errorf("allocation failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("allocation returned no result")
	}
	return uint32(results[0]), nil
}

// Free deallocates memory using realloc(ptr, size, align, 0).
func (a *AllocatorWrapper) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
