// Package optim implements optimization algorithms and learning-rate
// schedules for training.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum and weight decay
//   - Adam: Adaptive Moment Estimation
//   - StepLR: piecewise-constant learning-rate schedule
//   - Scheduled: wrapper applying a schedule, per-group coefficients and
//     gradient clipping around an inner optimizer
//
// Design inspired by PyTorch's torch.optim.
//
// Example usage:
//
//	opt, err := optim.NewScheduled([][]*nn.Parameter{net.Parameters()}, optim.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	for epoch := 0.0; epoch < numEpochs; epoch += 1.0 / numBatches {
//	    opt.ZeroGrad()
//	    grads := autodiff.Backward(loss, backend)
//	    nn.AttachGrads(net.Parameters(), grads)
//	    lr := opt.Step(epoch)
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/nn"
	"github.com/born-ml/trainkit/internal/tensor"
	"gonum.org/v1/gonum/blas/blas32"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Gradients are read from the parameters themselves (see nn.AttachGrads),
// so they can be clipped in place before Step.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient,
	// using each group's current learning rate.
	Step()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// ParamGroups returns the parameter groups. Callers may change LR.
	ParamGroups() []*ParamGroup

	// StateDict returns the optimizer's internal state (moment buffers,
	// step counts) for serialization.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict restores state produced by StateDict.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

// ParamGroup is a set of parameters sharing one learning rate.
type ParamGroup struct {
	Params []*nn.Parameter
	LR     float32
}

// newGroups builds parameter groups with lr 0 and checks every parameter
// is a float32 tensor.
func newGroups(groups [][]*nn.Parameter) ([]*ParamGroup, error) {
	out := make([]*ParamGroup, len(groups))
	for i, params := range groups {
		for _, p := range params {
			if p.Tensor().DType() != tensor.Float32 {
				return nil, fmt.Errorf("parameter %s: optimizers require float32, got %s", p.Name(), p.Tensor().DType())
			}
		}
		out[i] = &ParamGroup{Params: params}
	}
	return out, nil
}

// forEachParam calls fn for every parameter with a flat index across groups.
func forEachParam(groups []*ParamGroup, fn func(i int, g *ParamGroup, p *nn.Parameter)) {
	i := 0
	for _, g := range groups {
		for _, p := range g.Params {
			fn(i, g, p)
			i++
		}
	}
}

func zeroGrad(groups []*ParamGroup) {
	forEachParam(groups, func(_ int, _ *ParamGroup, p *nn.Parameter) {
		p.ZeroGrad()
	})
}

// vec views a float32 tensor as a blas32 vector.
func vec(t *tensor.RawTensor) blas32.Vector {
	data := t.AsFloat32()
	return blas32.Vector{N: len(data), Data: data, Inc: 1}
}

// gradVec returns a float32 copy of p's gradient as a blas32 vector.
func gradVec(p *nn.Parameter) blas32.Vector {
	g := p.Grad().Contiguous().AsFloat32()
	data := make([]float32, len(g))
	copy(data, g)
	return blas32.Vector{N: len(data), Data: data, Inc: 1}
}

// loadBuffer validates a saved per-parameter buffer and returns a packed
// float32 copy of it.
func loadBuffer(key string, raw *tensor.RawTensor, p *nn.Parameter) (*tensor.RawTensor, error) {
	if !raw.Shape().Equal(p.Tensor().Shape()) {
		return nil, fmt.Errorf("%s: shape mismatch for parameter %s: expected %v, got %v",
			key, p.Name(), p.Tensor().Shape(), raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		return nil, fmt.Errorf("%s: expected float32, got %s", key, raw.DType())
	}
	return raw.Clone(), nil
}
