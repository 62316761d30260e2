package autodiff

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable interface).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of out using the backend's tape.
// The output gradient is seeded with ones, so for a scalar loss the result
// holds d(loss)/d(t) for every recorded tensor t.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y := backend.Mul(x, x) // y = x²
//	gradients := autodiff.Backward(backend.Sum(y), backend)
//	grad := gradients[x] // 2x
func Backward(out *tensor.RawTensor, backend BackwardCapable) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}
	if !out.DType().IsFloat() {
		panic(fmt.Sprintf("backward: unsupported dtype %s (only float32/float64 supported)", out.DType()))
	}

	return tape.Backward(out, tensor.FullLike(out, 1), backend)
}
