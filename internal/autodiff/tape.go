package autodiff

import (
	"github.com/born-ml/trainkit/internal/autodiff/ops"
	"github.com/born-ml/trainkit/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic differentiation.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	gradients := tape.Backward(loss, outputGrad, backend)
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 32),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward computes gradients of output with respect to every tensor that
// contributed to it, by walking the tape in reverse.
//
// Algorithm:
//  1. Seed the gradient of output with outputGrad
//  2. Walk operations in reverse order
//  3. For each operation whose output has a gradient, apply the chain rule
//  4. Accumulate gradients when the same tensor is used multiple times
//
// Returns a map from RawTensor to its accumulated gradient.
func (t *GradientTape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient computations must not land on the tape.
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	grads[output] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		opGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		t.accumulateGrads(op, op.Backward(opGrad, backend), grads, backend)
	}

	return grads
}

// accumulateGrads accumulates gradients for each input tensor.
func (t *GradientTape) accumulateGrads(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	for j, input := range op.Inputs() {
		if j >= len(inputGrads) {
			break
		}
		inputGrad := inputGrads[j]
		if inputGrad == nil {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrad)
		} else {
			grads[input] = inputGrad
		}
	}
}
