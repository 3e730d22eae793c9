// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native provides a kernel buffer backed by gogpu/wgpu HAL
// resources, so shader kernels upload straight into a device buffer.
package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BufferDevice is the subset of hal.Device the kernel buffer needs.
// hal.Device satisfies it.
type BufferDevice interface {
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)
}

// BufferQueue is the subset of hal.Queue the kernel buffer needs.
// hal.Queue satisfies it.
type BufferQueue interface {
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error
}

var (
	_ BufferDevice = hal.Device(nil)
	_ BufferQueue  = hal.Queue(nil)
)

// Errors returned by kernel buffer operations.
var (
	ErrNilDevice = errors.New("native: device is required")
	ErrNilQueue  = errors.New("native: queue is required")
	ErrDestroyed = errors.New("native: kernel buffer is destroyed")
)

// KernelBuffer is a device buffer that shader kernels are uploaded
// into. It implements the shadercache write primitive over a HAL
// device and queue.
type KernelBuffer struct {
	device BufferDevice
	queue  BufferQueue
	buffer hal.Buffer
	size   uint64
}

// NewKernelBuffer allocates a device buffer of the given size. The
// buffer is created copy-destination and storage usable, which is what
// kernel upload and execution need.
func NewKernelBuffer(device BufferDevice, queue BufferQueue, size uint64, label string) (*KernelBuffer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if size == 0 {
		return nil, fmt.Errorf("native: kernel buffer size must be positive")
	}

	buffer, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageCopyDst | gputypes.BufferUsageStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create kernel buffer: %w", err)
	}

	return &KernelBuffer{
		device: device,
		queue:  queue,
		buffer: buffer,
		size:   size,
	}, nil
}

// Write copies kernel bytes to the device buffer at the given offset.
// Out-of-range writes fail before touching the queue; a failed queue
// write is reported so the upload pass can abort.
func (b *KernelBuffer) Write(offset uint32, data []byte) error {
	if b.buffer == nil {
		return ErrDestroyed
	}
	end := uint64(offset) + uint64(len(data))
	if end > b.size {
		return fmt.Errorf("native: write [%d,%d) exceeds kernel buffer size %d", offset, end, b.size)
	}
	if len(data) == 0 {
		return nil
	}
	if err := b.queue.WriteBuffer(b.buffer, uint64(offset), data); err != nil {
		return fmt.Errorf("native: write kernel bytes at %d: %w", offset, err)
	}
	return nil
}

// Size returns the buffer size in bytes.
func (b *KernelBuffer) Size() uint64 { return b.size }

// Buffer returns the underlying HAL buffer for binding into pipelines.
// Returns nil after Destroy.
func (b *KernelBuffer) Buffer() hal.Buffer { return b.buffer }

// Destroy releases the device buffer. Destroy is idempotent.
func (b *KernelBuffer) Destroy() {
	if b.buffer == nil {
		return
	}
	b.device.DestroyBuffer(b.buffer)
	b.buffer = nil
}
