// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package geom provides differentiable geometric transforms.
package geom

import (
	"github.com/born-ml/trainkit/internal/geom"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Rotate rotates each 2D point xy[i] by theta[i] radians counterclockwise.
// With an autodiff backend that is recording, gradients reach xy and theta.
//
// Example:
//
//	out, err := geom.Rotate(cpu.New(), xy, theta) // xy [N,2], theta [N]
func Rotate(b tensor.Backend, xy, theta *tensor.RawTensor) (*tensor.RawTensor, error) {
	return geom.Rotate(b, xy, theta)
}
