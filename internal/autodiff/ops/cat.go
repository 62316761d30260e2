package ops

import "github.com/born-ml/trainkit/internal/tensor"

// CatOp represents a concatenation along a dimension.
//
// Backward: the output gradient is split along dim at the input boundaries
// and each input receives the slice it contributed.
type CatOp struct {
	inputs []*tensor.RawTensor
	dim    int
	output *tensor.RawTensor
}

// NewCatOp creates a new cat operation.
func NewCatOp(inputs []*tensor.RawTensor, dim int, output *tensor.RawTensor) *CatOp {
	return &CatOp{inputs: inputs, dim: dim, output: output}
}

// Backward computes gradients for the input tensors.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dim := op.dim
	if dim < 0 {
		dim += len(outputGrad.Shape())
	}
	grads := make([]*tensor.RawTensor, len(op.inputs))
	start := 0
	for i, input := range op.inputs {
		size := input.Shape()[dim]
		grads[i] = backend.Narrow(outputGrad, dim, start, size)
		start += size
	}
	return grads
}

// Inputs returns the input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the concatenated tensor.
func (op *CatOp) Output() *tensor.RawTensor { return op.output }
