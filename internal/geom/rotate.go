// Package geom holds coordinate transforms built from backend operations,
// so they run under any backend and differentiate under autodiff.
package geom

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
)

// Rotate rotates each point xy[i] counter-clockwise by theta[i] radians:
//
//	out[i] = [[cos θᵢ, -sin θᵢ], [sin θᵢ, cos θᵢ]] · xy[i]
//
// xy has shape [N, 2] and theta shape [N]; both must share a float dtype.
// Every step goes through b, so with a recording autodiff backend the
// result is differentiable with respect to both inputs.
func Rotate(b tensor.Backend, xy, theta *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := checkRotate(xy, theta); err != nil {
		return nil, err
	}
	n := xy.Shape()[0]

	x := b.Narrow(xy, 1, 0, 1)
	y := b.Narrow(xy, 1, 1, 1)
	th := b.Reshape(theta, tensor.Shape{n, 1})
	st, ct := b.Sin(th), b.Cos(th)

	rx := b.Sub(b.Mul(ct, x), b.Mul(st, y))
	ry := b.Add(b.Mul(st, x), b.Mul(ct, y))
	return b.Cat([]*tensor.RawTensor{rx, ry}, 1), nil
}

func checkRotate(xy, theta *tensor.RawTensor) error {
	shape := xy.Shape()
	if len(shape) != 2 || shape[1] != 2 {
		return fmt.Errorf("rotate: xy must have shape [N, 2], got %v", shape)
	}
	if len(theta.Shape()) != 1 || theta.Shape()[0] != shape[0] {
		return fmt.Errorf("rotate: theta must have shape [%d], got %v", shape[0], theta.Shape())
	}
	if !xy.DType().IsFloat() {
		return fmt.Errorf("rotate: xy must be float32 or float64, got %s", xy.DType())
	}
	if xy.DType() != theta.DType() {
		return fmt.Errorf("rotate: dtype mismatch: xy %s, theta %s", xy.DType(), theta.DType())
	}
	return nil
}
