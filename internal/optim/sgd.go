package optim

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/nn"
	"github.com/born-ml/trainkit/internal/tensor"
	"gonum.org/v1/gonum/blas/blas32"
)

// SGD implements Stochastic Gradient Descent with optional momentum and
// L2 weight decay.
//
// Update rule:
//
//	d = grad + weight_decay * param
//	buf = momentum * buf + d          (buf = d on the first step)
//	param = param - lr * buf          (lr * d without momentum)
type SGD struct {
	groups      []*ParamGroup
	momentum    float32
	weightDecay float32
	buffers     map[*nn.Parameter]*tensor.RawTensor
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	Momentum    float32 // Momentum factor (default: 0.0, range: [0, 1))
	WeightDecay float32 // L2 penalty (default: 0.0)
}

// NewSGD creates a new SGD optimizer over groups. Group learning rates
// start at 0 and are set by the caller before each Step.
func NewSGD(groups [][]*nn.Parameter, config SGDConfig) (*SGD, error) {
	pg, err := newGroups(groups)
	if err != nil {
		return nil, fmt.Errorf("sgd: %w", err)
	}
	return &SGD{
		groups:      pg,
		momentum:    config.Momentum,
		weightDecay: config.WeightDecay,
		buffers:     make(map[*nn.Parameter]*tensor.RawTensor),
	}, nil
}

// Step performs a single optimization step.
// Parameters with no gradient are skipped.
func (s *SGD) Step() {
	forEachParam(s.groups, func(_ int, g *ParamGroup, p *nn.Parameter) {
		if p.Grad() == nil {
			return
		}
		param := vec(p.Tensor())
		d := gradVec(p)
		if s.weightDecay != 0 {
			blas32.Axpy(s.weightDecay, param, d)
		}

		if s.momentum != 0 {
			buf, ok := s.buffers[p]
			if !ok {
				buf = tensor.MustFromSlice(d.Data, p.Tensor().Shape(), tensor.CPU)
				s.buffers[p] = buf
			} else {
				b := vec(buf)
				blas32.Scal(s.momentum, b)
				blas32.Axpy(1, d, b)
			}
			d = vec(buf)
		}

		blas32.Axpy(-g.LR, d, param)
	})
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.groups)
}

// ParamGroups returns the parameter groups.
func (s *SGD) ParamGroups() []*ParamGroup {
	return s.groups
}

// StateDict returns the momentum buffers.
//
// State keys: "momentum_buffer.{param_index}" -> buffer tensor, where the
// index counts parameters across all groups. Parameters that never
// received a gradient have no buffer.
func (s *SGD) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	forEachParam(s.groups, func(i int, _ *ParamGroup, p *nn.Parameter) {
		if buf, ok := s.buffers[p]; ok {
			stateDict[fmt.Sprintf("momentum_buffer.%d", i)] = buf
		}
	})
	return stateDict
}

// LoadStateDict restores momentum buffers. Existing buffers are discarded.
func (s *SGD) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	buffers := make(map[*nn.Parameter]*tensor.RawTensor)
	var err error
	forEachParam(s.groups, func(i int, _ *ParamGroup, p *nn.Parameter) {
		key := fmt.Sprintf("momentum_buffer.%d", i)
		raw, ok := stateDict[key]
		if !ok || err != nil {
			return
		}
		buffers[p], err = loadBuffer(key, raw, p)
	})
	if err != nil {
		return fmt.Errorf("sgd: %w", err)
	}
	s.buffers = buffers
	return nil
}
