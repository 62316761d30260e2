package ops

import "github.com/born-ml/trainkit/internal/tensor"

// AddOp represents element-wise addition: output = a + b.
//
// Backward pass: gradient flows unchanged to both inputs.
type AddOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad, outputGrad}
}

// Inputs returns the input tensors [a, b].
func (op *AddOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the output tensor a + b.
func (op *AddOp) Output() *tensor.RawTensor { return op.output }
