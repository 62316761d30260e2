package nn

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/internal/tensor"
)

var host = cpu.New()

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors updated in place by optimizers. The gradient is
// owned by the parameter, so clipping may modify it in place.
//
// Example:
//
//	weight := nn.NewParameter("actor.weight", weightTensor)
//	nn.AttachGrads([]*nn.Parameter{weight}, grads)
//	g := weight.Grad()
type Parameter struct {
	name   string            // Parameter name (e.g., "actor.weight")
	tensor *tensor.RawTensor // The parameter tensor
	grad   *tensor.RawTensor // Gradient tensor (nil until accumulated)
}

// NewParameter creates a new trainable parameter. The tensor is packed if
// it is strided, since updates write to its memory directly.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t.Contiguous(),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.RawTensor {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before any gradient was accumulated.
func (p *Parameter) Grad() *tensor.RawTensor {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter) SetGrad(grad *tensor.RawTensor) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}

// AccumulateGrad adds g to the parameter's gradient. g must have the
// parameter's shape; it is converted to the parameter's dtype and copied.
func (p *Parameter) AccumulateGrad(g *tensor.RawTensor) error {
	if !g.Shape().Equal(p.tensor.Shape()) {
		return fmt.Errorf("%s: gradient shape %v does not match parameter shape %v", p.name, g.Shape(), p.tensor.Shape())
	}
	g = host.Cast(g, p.tensor.DType())
	if p.grad == nil {
		p.grad = g.Clone()
		return nil
	}
	p.grad = host.Add(p.grad, g)
	return nil
}

// CopyFrom overwrites the parameter's values with src, in place.
// Shapes must match; src is converted to the parameter's dtype.
func (p *Parameter) CopyFrom(src *tensor.RawTensor) error {
	if !src.Shape().Equal(p.tensor.Shape()) {
		return fmt.Errorf("%s: shape mismatch: expected %v, got %v", p.name, p.tensor.Shape(), src.Shape())
	}
	src = host.Cast(src, p.tensor.DType()).Contiguous()
	copy(p.tensor.Data(), src.Data())
	return nil
}
