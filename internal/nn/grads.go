package nn

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/serialization"
	"github.com/born-ml/trainkit/internal/tensor"
)

// AttachGrads accumulates gradients computed by a tape onto params.
// grads is keyed by the tensor each gradient belongs to; parameters that
// did not take part in the computation are left alone.
func AttachGrads(params []*Parameter, grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	for _, p := range params {
		g, ok := grads[p.Tensor()]
		if !ok {
			continue
		}
		if err := p.AccumulateGrad(g); err != nil {
			return err
		}
	}
	return nil
}

// ZeroGrads clears the gradients of params.
func ZeroGrads(params []*Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// Save writes m's state dict to a SafeTensors file.
func Save(m Module, path string, metadata map[string]string) error {
	if err := serialization.WriteSafeTensors(path, m.StateDict(), metadata); err != nil {
		return fmt.Errorf("save module: %w", err)
	}
	return nil
}
