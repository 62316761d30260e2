package tensor

import "fmt"

// FromSlice creates a contiguous tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	xy, err := tensor.FromSlice([]float32{1, 0, 0, 1}, tensor.Shape{2, 2}, tensor.CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, DataTypeOf[T](), device)
	if err != nil {
		return nil, err
	}
	copy(Elems[T](raw), data)
	return raw, nil
}

// MustFromSlice is FromSlice for literals in tests and examples. It panics on error.
func MustFromSlice[T DType](data []T, shape Shape, device Device) *RawTensor {
	raw, err := FromSlice(data, shape, device)
	if err != nil {
		panic(err)
	}
	return raw
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	return MustRaw(shape, dtype, device)
}

// Full creates a tensor filled with value.
func Full[T DType](shape Shape, value T, device Device) *RawTensor {
	raw := MustRaw(shape, DataTypeOf[T](), device)
	data := Elems[T](raw)
	for i := range data {
		data[i] = value
	}
	return raw
}

// FullLike creates a tensor with the shape, dtype and device of like, filled
// with value. Only float tensors are supported.
func FullLike(like *RawTensor, value float64) *RawTensor {
	switch like.DType() {
	case Float32:
		return Full(like.Shape(), float32(value), like.Device())
	case Float64:
		return Full(like.Shape(), value, like.Device())
	default:
		panic(fmt.Sprintf("full_like: unsupported dtype %s (only float32/float64 supported)", like.DType()))
	}
}

// ToFloat64 returns a copy of a float tensor's elements widened to float64.
func ToFloat64(r *RawTensor) []float64 {
	r = r.Contiguous()
	switch r.DType() {
	case Float32:
		src := r.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	case Float64:
		return append([]float64(nil), r.AsFloat64()...)
	default:
		panic(fmt.Sprintf("to_float64: unsupported dtype %s", r.DType()))
	}
}
