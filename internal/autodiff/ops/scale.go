package ops

import "github.com/born-ml/trainkit/internal/tensor"

// MulScalarOp represents scaling by a constant: output = s * x.
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(input, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, scalar: scalar}
}

// Backward computes grad_input = s * outputGrad.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor s * x.
func (op *MulScalarOp) Output() *tensor.RawTensor { return op.output }
