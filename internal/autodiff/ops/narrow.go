package ops

import "github.com/born-ml/trainkit/internal/tensor"

// NarrowOp records taking the [start, start+length) slab of a tensor along dim.
//
// Backward: the output gradient is written into a zero tensor of the input
// shape at the same position; the rest of the input receives no gradient.
type NarrowOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
	start  int
}

// NewNarrowOp creates a new NarrowOp.
func NewNarrowOp(input, output *tensor.RawTensor, dim, start int) *NarrowOp {
	return &NarrowOp{input: input, output: output, dim: dim, start: start}
}

// Backward scatters the gradient back into the input shape.
func (op *NarrowOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NarrowInto(op.input.Shape(), outputGrad, op.dim, op.start)
	if err != nil {
		panic(err)
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *NarrowOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the narrowed tensor.
func (op *NarrowOp) Output() *tensor.RawTensor { return op.output }
