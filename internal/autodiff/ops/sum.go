package ops

import "github.com/born-ml/trainkit/internal/tensor"

// SumOp represents a full reduction: y = sum(x).
//
// Backward pass: every input element receives the scalar output gradient.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	g := tensor.ToFloat64(outputGrad)[0]
	return []*tensor.RawTensor{tensor.FullLike(op.input, g)}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the scalar output.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }
