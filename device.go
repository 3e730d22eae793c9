// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shadercache

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. a gogpu.App) implements the gpucontext provider and
// passes it in; shadercache receives the device, it does not create
// one. This keeps kernel buffers on the same device and queue as the
// rest of the application's GPU resources.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// shadercache-specific name while staying compatible with the
// gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// SyncDevice blocks until the device has drained outstanding work.
// Call it after an upload pass and before submitting command buffers
// that execute kernels from the freshly written region.
//
// gpucontext.Device is a type token, so the concrete device is checked
// for a drain method: a wait-style Poll, the wgpu device's typed Poll,
// or a HAL WaitIdle. Devices exposing none of these are left alone,
// as are nil handles and nil devices, which keeps CPU-only paths
// (such as MemBuffer targets) free of special cases.
func SyncDevice(h DeviceHandle) {
	if h == nil {
		return
	}
	switch d := h.Device().(type) {
	case interface{ Poll(wait bool) }:
		d.Poll(true)
	case interface{ Poll(wgpu.PollType) bool }:
		d.Poll(wgpu.PollWait)
	case interface{ WaitIdle() error }:
		_ = d.WaitIdle()
	}
}

// Flush uploads and then synchronizes the device, so the written
// buffer region is valid for submission when Flush returns.
func (c *Cache) Flush(h DeviceHandle, buf KernelBuffer, offset uint32, incremental bool) (int, error) {
	n, err := c.Upload(buf, offset, incremental)
	if err != nil {
		return 0, err
	}
	SyncDevice(h)
	return n, nil
}
