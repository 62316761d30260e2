package cpu

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
)

// Reshape returns a view of x with a new shape. Non-contiguous inputs are packed first.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	view, err := x.Contiguous().View(shape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// Narrow returns the [start, start+length) slab of x along dim.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	out, err := tensor.Narrow(x, dim, start, length)
	if err != nil {
		panic(err.Error())
	}
	return out
}

// Cat concatenates tensors along dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	out, err := tensor.Cat(tensors, dim)
	if err != nil {
		panic(err.Error())
	}
	return out
}
