// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu places tensors in WebGPU device memory.
//
// WebGPU is available on Windows builds with a compatible adapter. Open
// returns ErrUnavailable elsewhere.
//
// Example:
//
//	dev, err := webgpu.Open()
//	if errors.Is(err, webgpu.ErrUnavailable) {
//	    // fall back to the host
//	}
//	defer dev.Release()
//	onGPU, err := dev.Transfer(x)
package webgpu

import (
	"github.com/born-ml/trainkit/internal/backend/webgpu"
)

// Device is an open WebGPU adapter and queue.
type Device = webgpu.Device

// Buffer is a tensor's storage buffer on the device.
type Buffer = webgpu.Buffer

// ErrUnavailable is returned when no WebGPU adapter can be opened.
var ErrUnavailable = webgpu.ErrUnavailable

// Open opens the high-performance WebGPU adapter.
func Open() (*Device, error) {
	return webgpu.Open()
}
