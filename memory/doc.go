// Package memory adapts wazero linear memory and guest allocators to the
// hostvalue Memory and Allocator interfaces.
package memory
