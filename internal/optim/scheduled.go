package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/trainkit/internal/nn"
	"gonum.org/v1/gonum/floats"
)

// Scheduled wraps an inner optimizer with a step learning-rate schedule,
// per-group rate coefficients and optional gradient clipping.
//
// Each Step clips gradients (when enabled), looks up the base rate for the
// epoch, sets every group's rate to base*coef[group] and runs the inner
// optimizer.
type Scheduled struct {
	opt    Optimizer
	name   string
	sched  *StepLR
	coef   []float32
	clip   bool
	low    float32
	high   float32
	lastLR float32
}

// NewScheduled builds the inner optimizer named by cfg.Opt over groups,
// one parameter group per slice. SGD uses cfg's momentum and weight decay;
// Adam uses cfg's betas and eps without weight decay.
func NewScheduled(groups [][]*nn.Parameter, cfg Config) (*Scheduled, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("optimizer config: %w", err)
	}
	sched, err := NewStepLR(cfg.LR, cfg.LREpochs)
	if err != nil {
		return nil, err
	}

	var opt Optimizer
	switch cfg.Opt {
	case OptSGD:
		opt, err = NewSGD(groups, SGDConfig{Momentum: cfg.Momentum, WeightDecay: cfg.WeightDecay})
	case OptAdam:
		opt, err = NewAdam(groups, AdamConfig{Betas: cfg.Betas, Eps: cfg.Eps})
	}
	if err != nil {
		return nil, err
	}

	coef := make([]float32, len(groups))
	for i := range coef {
		coef[i] = 1
	}
	return &Scheduled{
		opt:   opt,
		name:  cfg.Opt,
		sched: sched,
		coef:  coef,
		clip:  cfg.ClipGrads,
		low:   cfg.ClipLow,
		high:  cfg.ClipHigh,
	}, nil
}

// Name returns the inner optimizer's name ("sgd" or "adam").
func (s *Scheduled) Name() string { return s.name }

// Inner returns the wrapped optimizer.
func (s *Scheduled) Inner() Optimizer { return s.opt }

// Schedule returns the learning-rate schedule.
func (s *Scheduled) Schedule() *StepLR { return s.sched }

// LR returns the base rate applied by the last Step, 0 before the first.
func (s *Scheduled) LR() float32 { return s.lastLR }

// Coef returns a copy of the per-group rate coefficients.
func (s *Scheduled) Coef() []float32 {
	return append([]float32(nil), s.coef...)
}

// SetCoef sets the rate coefficient of one parameter group.
func (s *Scheduled) SetCoef(group int, coef float32) error {
	if group < 0 || group >= len(s.coef) {
		return fmt.Errorf("parameter group %d out of range [0, %d)", group, len(s.coef))
	}
	s.coef[group] = coef
	return nil
}

// ZeroGrad clears all parameter gradients.
func (s *Scheduled) ZeroGrad() {
	s.opt.ZeroGrad()
}

// Step updates the parameters for the given (possibly fractional) epoch and
// returns the base learning rate, before group coefficients.
func (s *Scheduled) Step(epoch float64) float32 {
	if s.clip {
		s.Clip()
	}
	lr := s.sched.At(epoch)
	for i, g := range s.opt.ParamGroups() {
		g.LR = lr * s.coef[i]
	}
	s.opt.Step()
	s.lastLR = lr
	return lr
}

// Clip clamps every gradient element into [low, high] in place. Values
// below low are raised in one pass, values above high lowered in a second.
func (s *Scheduled) Clip() {
	low, high := s.low, s.high
	grads := s.gradients()
	for _, g := range grads {
		for i, v := range g {
			if v < low {
				g[i] = low
			}
		}
	}
	for _, g := range grads {
		for i, v := range g {
			if v > high {
				g[i] = high
			}
		}
	}
}

// GradNorm returns the L2 norm of all gradients taken together.
func (s *Scheduled) GradNorm() float64 {
	var sq float64
	for _, g := range s.gradients() {
		v := make([]float64, len(g))
		for i, x := range g {
			v[i] = float64(x)
		}
		n := floats.Norm(v, 2)
		sq += n * n
	}
	return math.Sqrt(sq)
}

// gradients returns writable float32 views of every existing gradient.
// Strided gradients are packed and reattached first.
func (s *Scheduled) gradients() [][]float32 {
	var out [][]float32
	forEachParam(s.opt.ParamGroups(), func(_ int, _ *ParamGroup, p *nn.Parameter) {
		g := p.Grad()
		if g == nil {
			return
		}
		if !g.IsContiguous() {
			g = g.Clone()
			p.SetGrad(g)
		}
		out = append(out, g.AsFloat32())
	})
	return out
}
