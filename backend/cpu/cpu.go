// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// The backend supports float32, float64 and the integer types for
// element-wise math, and converts between all data types with Cast.
// Programming errors such as shape mismatches panic.
package cpu

import (
	internalcpu "github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	sum := backend.Add(x, y)
func New() *Backend {
	return internalcpu.New()
}
