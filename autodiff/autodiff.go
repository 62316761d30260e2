// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation (backpropagation)
// using a gradient tape. It wraps any backend to add autodiff capabilities.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := backend.Sum(backend.Mul(w, w))
//	grads := autodiff.Backward(loss, backend)
//	gw := grads[w]
package autodiff

import (
	"github.com/born-ml/trainkit/internal/autodiff"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Backend wraps a backend and records operations for differentiation.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// New wraps backend with automatic differentiation.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// Backward computes gradients of the scalar out with respect to every
// tensor recorded on backend's tape.
func Backward(out *tensor.RawTensor, backend autodiff.BackwardCapable) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(out, backend)
}
