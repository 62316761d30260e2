// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/trainkit/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsInt64(), etc.
//   - Strided views via Permute() and packing via Contiguous()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
//	clone := raw.Clone()
type RawTensor = tensor.RawTensor

// DType constrains the Go element types tensors can hold.
type DType = tensor.DType

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// DataType is the runtime element type of a tensor.
type DataType = tensor.DataType

// Device identifies where a tensor lives.
type Device = tensor.Device

// DeviceBuffer is accelerator memory mirroring a tensor.
type DeviceBuffer = tensor.DeviceBuffer

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int16   = tensor.Int16
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
)

// Supported devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewRaw creates a zero-filled contiguous tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// MustFromSlice is FromSlice that panics on error.
func MustFromSlice[T DType](data []T, shape Shape, device Device) *RawTensor {
	return tensor.MustFromSlice(data, shape, device)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Zeros(shape, dtype, device)
}

// Full creates a tensor filled with value.
func Full[T DType](shape Shape, value T, device Device) *RawTensor {
	return tensor.Full(shape, value, device)
}

// Narrow returns a view of length elements of x along dim, from start.
func Narrow(x *RawTensor, dim, start, length int) (*RawTensor, error) {
	return tensor.Narrow(x, dim, start, length)
}

// Cat concatenates tensors along dim.
func Cat(tensors []*RawTensor, dim int) (*RawTensor, error) {
	return tensor.Cat(tensors, dim)
}
