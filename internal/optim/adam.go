package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/trainkit/internal/nn"
	"github.com/born-ml/trainkit/internal/tensor"
	"gonum.org/v1/gonum/blas/blas32"
)

// Adam implements the Adam optimizer (Adaptive Moment Estimation).
//
// Algorithm:
//
//	g = grad + weight_decay * param
//	m_t = beta1 * m_{t-1} + (1-beta1) * g        // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * g²       // Second moment
//	m_hat = m_t / (1 - beta1^t)                  // Bias correction
//	v_hat = v_t / (1 - beta2^t)                  // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// The step count t is kept per parameter and only advances on steps where
// that parameter has a gradient.
//
// Reference: Kingma & Ba, "Adam: A Method for Stochastic Optimization" (2014).
type Adam struct {
	groups      []*ParamGroup
	beta1       float32
	beta2       float32
	eps         float32
	weightDecay float32
	t           map[*nn.Parameter]int64             // Per-parameter step count
	m           map[*nn.Parameter]*tensor.RawTensor // First moment estimates
	v           map[*nn.Parameter]*tensor.RawTensor // Second moment estimates
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	Betas       [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps         float32    // Term for numerical stability (default: 1e-8)
	WeightDecay float32    // L2 penalty (default: 0.0)
}

// NewAdam creates a new Adam optimizer over groups.
//
// Default hyperparameters:
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(groups [][]*nn.Parameter, config AdamConfig) (*Adam, error) {
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	pg, err := newGroups(groups)
	if err != nil {
		return nil, fmt.Errorf("adam: %w", err)
	}

	return &Adam{
		groups:      pg,
		beta1:       config.Betas[0],
		beta2:       config.Betas[1],
		eps:         config.Eps,
		weightDecay: config.WeightDecay,
		t:           make(map[*nn.Parameter]int64),
		m:           make(map[*nn.Parameter]*tensor.RawTensor),
		v:           make(map[*nn.Parameter]*tensor.RawTensor),
	}, nil
}

// Step performs a single optimization step using the Adam algorithm.
func (a *Adam) Step() {
	forEachParam(a.groups, func(_ int, g *ParamGroup, p *nn.Parameter) {
		if p.Grad() == nil {
			return
		}
		a.t[p]++
		biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t[p])))
		biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t[p])))

		m, ok := a.m[p]
		if !ok {
			m = tensor.Zeros(p.Tensor().Shape(), tensor.Float32, tensor.CPU)
			a.m[p] = m
		}
		v, ok := a.v[p]
		if !ok {
			v = tensor.Zeros(p.Tensor().Shape(), tensor.Float32, tensor.CPU)
			a.v[p] = v
		}

		param := vec(p.Tensor())
		grad := gradVec(p)
		if a.weightDecay != 0 {
			blas32.Axpy(a.weightDecay, param, grad)
		}

		// m_t = beta1 * m_{t-1} + (1-beta1) * grad
		mv := vec(m)
		blas32.Scal(a.beta1, mv)
		blas32.Axpy(1-a.beta1, grad, mv)

		vData := v.AsFloat32()
		for i, gi := range grad.Data {
			vData[i] = a.beta2*vData[i] + (1-a.beta2)*gi*gi
		}

		for i := range param.Data {
			mHat := mv.Data[i] / biasCorrection1
			vHat := vData[i] / biasCorrection2
			param.Data[i] -= g.LR * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		}
	})
}

// ZeroGrad clears all parameter gradients.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.groups)
}

// ParamGroups returns the parameter groups.
func (a *Adam) ParamGroups() []*ParamGroup {
	return a.groups
}

// Timestep returns the number of steps p has been updated.
func (a *Adam) Timestep(p *nn.Parameter) int64 {
	return a.t[p]
}

// StateDict returns the moment estimates and step counts of every
// parameter updated at least once.
//
// State keys:
//   - "exp_avg.{param_index}": first moment
//   - "exp_avg_sq.{param_index}": second moment
//   - "step.{param_index}": int64 scalar
func (a *Adam) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	forEachParam(a.groups, func(i int, _ *ParamGroup, p *nn.Parameter) {
		m, ok := a.m[p]
		if !ok {
			return
		}
		stateDict[fmt.Sprintf("exp_avg.%d", i)] = m
		stateDict[fmt.Sprintf("exp_avg_sq.%d", i)] = a.v[p]
		stateDict[fmt.Sprintf("step.%d", i)] = tensor.MustFromSlice([]int64{a.t[p]}, tensor.Shape{}, tensor.CPU)
	})
	return stateDict
}

// LoadStateDict restores moment estimates and step counts.
func (a *Adam) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	t := make(map[*nn.Parameter]int64)
	m := make(map[*nn.Parameter]*tensor.RawTensor)
	v := make(map[*nn.Parameter]*tensor.RawTensor)
	var err error
	forEachParam(a.groups, func(i int, _ *ParamGroup, p *nn.Parameter) {
		if err != nil {
			return
		}
		mKey, vKey, sKey := fmt.Sprintf("exp_avg.%d", i), fmt.Sprintf("exp_avg_sq.%d", i), fmt.Sprintf("step.%d", i)
		mRaw, hasM := stateDict[mKey]
		vRaw, hasV := stateDict[vKey]
		step, hasStep := stateDict[sKey]
		if hasM != hasV || hasM != hasStep {
			err = fmt.Errorf("parameter %d: %s, %s and %s must be saved together", i, mKey, vKey, sKey)
			return
		}
		if !hasM {
			return
		}
		if step.DType() != tensor.Int64 || step.NumElements() != 1 {
			err = fmt.Errorf("%s must be an int64 scalar, got %v", sKey, step)
			return
		}
		t[p] = step.Contiguous().AsInt64()[0]
		if m[p], err = loadBuffer(mKey, mRaw, p); err != nil {
			return
		}
		v[p], err = loadBuffer(vKey, vRaw, p)
	})
	if err != nil {
		return fmt.Errorf("adam: %w", err)
	}

	a.t, a.m, a.v = t, m, v
	return nil
}
