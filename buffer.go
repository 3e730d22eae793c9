package shadercache

import "fmt"

// KernelBuffer is the write primitive the upload pass targets. A
// backend wraps its GPU buffer object in this interface; see
// backend/native for a gogpu/wgpu HAL implementation.
//
// Write copies data to the buffer at the given byte offset. A failed
// write aborts the whole upload pass.
type KernelBuffer interface {
	Write(offset uint32, data []byte) error
}

// MemBuffer is an in-memory KernelBuffer, used by tests and CPU
// fallback paths.
type MemBuffer struct {
	data []byte
}

// NewMemBuffer creates a zeroed in-memory buffer of the given size.
func NewMemBuffer(size int) *MemBuffer {
	return &MemBuffer{data: make([]byte, size)}
}

// Write copies data into the buffer. Writes past the end fail without
// partial effect.
func (b *MemBuffer) Write(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(b.data)) {
		return fmt.Errorf("shadercache: write [%d,%d) exceeds buffer size %d", offset, end, len(b.data))
	}
	copy(b.data[offset:], data)
	return nil
}

// Bytes returns the backing storage. Callers must not hold the slice
// across writes.
func (b *MemBuffer) Bytes() []byte { return b.data }

// Len returns the buffer size in bytes.
func (b *MemBuffer) Len() int { return len(b.data) }
