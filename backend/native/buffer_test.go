// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/gputypes"
)

// mockHALBuffer is a test double for hal.Buffer.
type mockHALBuffer struct {
	size  uint64
	usage gputypes.BufferUsage
	label string
}

// Destroy implements hal.Resource.
func (b *mockHALBuffer) Destroy() {}

// NativeHandle implements hal.NativeHandle.
func (b *mockHALBuffer) NativeHandle() uintptr { return 0 }

// mockDevice is a test double for BufferDevice.
type mockDevice struct {
	createBufferFunc func(*hal.BufferDescriptor) (hal.Buffer, error)

	buffersCreated   int
	buffersDestroyed int
}

func (d *mockDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.buffersCreated++
	if d.createBufferFunc != nil {
		return d.createBufferFunc(desc)
	}
	return &mockHALBuffer{size: desc.Size, usage: desc.Usage, label: desc.Label}, nil
}

func (d *mockDevice) DestroyBuffer(hal.Buffer) {
	d.buffersDestroyed++
}

// mockQueue records buffer writes.
type mockQueue struct {
	writeErr error

	writes []struct {
		offset uint64
		data   []byte
	}
}

func (q *mockQueue) WriteBuffer(_ hal.Buffer, offset uint64, data []byte) error {
	if q.writeErr != nil {
		return q.writeErr
	}
	q.writes = append(q.writes, struct {
		offset uint64
		data   []byte
	}{offset, data})
	return nil
}

func TestNewKernelBuffer(t *testing.T) {
	device := &mockDevice{}
	queue := &mockQueue{}

	buf, err := NewKernelBuffer(device, queue, 4096, "kernel-cache")
	if err != nil {
		t.Fatalf("NewKernelBuffer: %v", err)
	}
	if buf.Size() != 4096 {
		t.Errorf("Size = %d, want 4096", buf.Size())
	}
	if buf.Buffer() == nil {
		t.Error("Buffer() = nil")
	}

	halBuf := buf.Buffer().(*mockHALBuffer)
	if halBuf.label != "kernel-cache" {
		t.Errorf("label = %q, want %q", halBuf.label, "kernel-cache")
	}
	wantUsage := gputypes.BufferUsageCopyDst | gputypes.BufferUsageStorage
	if halBuf.usage != wantUsage {
		t.Errorf("usage = %v, want %v", halBuf.usage, wantUsage)
	}
}

func TestNewKernelBufferValidation(t *testing.T) {
	device := &mockDevice{}
	queue := &mockQueue{}

	if _, err := NewKernelBuffer(nil, queue, 1024, ""); err != ErrNilDevice {
		t.Errorf("nil device err = %v, want ErrNilDevice", err)
	}
	if _, err := NewKernelBuffer(device, nil, 1024, ""); err != ErrNilQueue {
		t.Errorf("nil queue err = %v, want ErrNilQueue", err)
	}
	if _, err := NewKernelBuffer(device, queue, 0, ""); err == nil {
		t.Error("zero size accepted")
	}
}

func TestNewKernelBufferCreateFailure(t *testing.T) {
	createErr := errors.New("out of memory")
	device := &mockDevice{
		createBufferFunc: func(*hal.BufferDescriptor) (hal.Buffer, error) {
			return nil, createErr
		},
	}

	_, err := NewKernelBuffer(device, &mockQueue{}, 1024, "")
	if !errors.Is(err, createErr) {
		t.Errorf("err = %v, want wrapped create error", err)
	}
}

func TestKernelBufferWrite(t *testing.T) {
	device := &mockDevice{}
	queue := &mockQueue{}
	buf, err := NewKernelBuffer(device, queue, 256, "")
	if err != nil {
		t.Fatalf("NewKernelBuffer: %v", err)
	}

	data := []byte{1, 2, 3, 4}
	if err := buf.Write(64, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(queue.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(queue.writes))
	}
	if queue.writes[0].offset != 64 {
		t.Errorf("write offset = %d, want 64", queue.writes[0].offset)
	}

	// Empty writes never touch the queue.
	if err := buf.Write(0, nil); err != nil {
		t.Errorf("empty Write: %v", err)
	}
	if len(queue.writes) != 1 {
		t.Errorf("writes = %d after empty write, want 1", len(queue.writes))
	}
}

func TestKernelBufferWriteFailure(t *testing.T) {
	writeErr := errors.New("device lost")
	queue := &mockQueue{writeErr: writeErr}
	buf, err := NewKernelBuffer(&mockDevice{}, queue, 128, "")
	if err != nil {
		t.Fatalf("NewKernelBuffer: %v", err)
	}

	if err := buf.Write(0, []byte{1, 2, 3}); !errors.Is(err, writeErr) {
		t.Errorf("err = %v, want wrapped queue error", err)
	}
}

func TestKernelBufferWriteBounds(t *testing.T) {
	buf, err := NewKernelBuffer(&mockDevice{}, &mockQueue{}, 128, "")
	if err != nil {
		t.Fatalf("NewKernelBuffer: %v", err)
	}

	if err := buf.Write(64, make([]byte, 64)); err != nil {
		t.Errorf("write at end: %v", err)
	}
	if err := buf.Write(65, make([]byte, 64)); err == nil {
		t.Error("out-of-range write accepted")
	}
}

func TestKernelBufferDestroy(t *testing.T) {
	device := &mockDevice{}
	buf, err := NewKernelBuffer(device, &mockQueue{}, 128, "")
	if err != nil {
		t.Fatalf("NewKernelBuffer: %v", err)
	}

	buf.Destroy()
	buf.Destroy() // idempotent
	if device.buffersDestroyed != 1 {
		t.Errorf("buffersDestroyed = %d, want 1", device.buffersDestroyed)
	}
	if buf.Buffer() != nil {
		t.Error("Buffer() != nil after Destroy")
	}

	if err := buf.Write(0, []byte{1}); err != ErrDestroyed {
		t.Errorf("Write after Destroy err = %v, want ErrDestroyed", err)
	}
}
