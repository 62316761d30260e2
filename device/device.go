// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device selects where tensors are placed.
//
// A Context pairs a compute backend with a transfer target. Contexts are
// passed explicitly to the code that places tensors.
//
// Example:
//
//	ctx := device.Auto(logger)
//	defer ctx.Release()
//	x, err := ctx.Put(x)
package device

import (
	"log/slog"

	"github.com/born-ml/trainkit/internal/device"
)

// Context holds a backend and a transfer target.
type Context = device.Context

// Transferer moves tensors to a target device.
type Transferer = device.Transferer

// CPU returns a host-only context.
func CPU() *Context {
	return device.CPU()
}

// WebGPU returns a context placing tensors in WebGPU memory.
func WebGPU() (*Context, error) {
	return device.WebGPU()
}

// Auto returns a WebGPU context when available, otherwise CPU.
func Auto(logger *slog.Logger) *Context {
	return device.Auto(logger)
}
