// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types used across trainkit.
//
// # Overview
//
// A RawTensor carries host memory with a shape, element strides, a data
// type and a device tag. Tensors transferred to an accelerator also hold a
// DeviceBuffer mirror of their contents.
//
// # Basic Usage
//
//	import "github.com/born-ml/trainkit/tensor"
//
//	func main() {
//	    xy := tensor.MustFromSlice([]float32{1, 0, 0, 1}, tensor.Shape{2, 2}, tensor.CPU)
//
//	    // Strided view, no copy
//	    t, _ := xy.Permute(1, 0)
//
//	    // Packed copy
//	    packed := t.Contiguous()
//
//	    // Row selection
//	    rows, _ := tensor.IndexSelect(packed, tensor.Indices{1, -1})
//	}
//
// # Supported Data Types
//
//   - float32, float64 (floating-point)
//   - int16, int32, int64 (signed integers)
//   - uint8 (unsigned bytes)
//   - bool
//
// Int16 tensors are usually widened to int64 before use as indices; see
// container.ToLong.
package tensor
