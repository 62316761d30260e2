// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/trainkit/internal/tensor"
)

// Selector picks rows along the first dimension.
type Selector = tensor.Selector

// Indices selects rows by position. Negative indices count from the end.
type Indices = tensor.Indices

// Mask selects the rows where a boolean tensor is true.
type Mask = tensor.Mask

// ErrIndexOutOfRange is returned when a selector addresses a missing row.
var ErrIndexOutOfRange = tensor.ErrIndexOutOfRange

// IndicesFrom converts an integer tensor into Indices.
func IndicesFrom(r *RawTensor) (Indices, error) {
	return tensor.IndicesFrom(r)
}

// MaskOf wraps a boolean tensor as a row selector.
func MaskOf(mask *RawTensor) Mask {
	return tensor.MaskOf(mask)
}

// IndexSelect returns x[sel] as a new packed tensor.
//
// Example:
//
//	rows, err := tensor.IndexSelect(x, tensor.Indices{0, 2})
func IndexSelect(x *RawTensor, sel Selector) (*RawTensor, error) {
	return tensor.IndexSelect(x, sel)
}
