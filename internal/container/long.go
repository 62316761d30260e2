package container

import (
	"github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/internal/tensor"
)

var caster = cpu.New()

// ToLong returns a copy of v with every int16 tensor widened to int64.
// Other tensors and leaves are shared with v; v itself is never modified.
func ToLong(v Value) (Value, error) {
	return Transform(v, func(t *tensor.RawTensor) (*tensor.RawTensor, error) {
		if t.DType() != tensor.Int16 {
			return t, nil
		}
		return caster.Cast(t, tensor.Int64), nil
	})
}
