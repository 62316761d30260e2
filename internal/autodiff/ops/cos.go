package ops

import "github.com/born-ml/trainkit/internal/tensor"

// CosOp represents the cosine operation: y = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
//   - grad_input = grad_output * (-sin(input))
type CosOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewCosOp creates a new CosOp.
func NewCosOp(input, output *tensor.RawTensor) *CosOp {
	return &CosOp{input: input, output: output}
}

// Backward computes input gradient for cos.
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	negSin := backend.MulScalar(backend.Sin(op.input), -1)
	return []*tensor.RawTensor{backend.Mul(outputGrad, negSin)}
}

// Inputs returns the input tensor [x].
func (op *CosOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor cos(x).
func (op *CosOp) Output() *tensor.RawTensor { return op.output }
