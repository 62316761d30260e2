// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op (Add, Mul, Sin, Cat) implements backward pass
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	out, _ := geom.Rotate(backend, xy, theta)
//	grads := autodiff.Backward(backend.Sum(out), backend)
package autodiff

import (
	"github.com/born-ml/trainkit/internal/autodiff/ops"
	"github.com/born-ml/trainkit/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)
	b.tape.Record(ops.NewAddOp(a, c, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(a, c)
	b.tape.Record(ops.NewSubOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(a, c)
	b.tape.Record(ops.NewMulOp(a, c, result))
	return result
}

// MulScalar scales x by s and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := b.inner.MulScalar(x, s)
	b.tape.Record(ops.NewMulScalarOp(x, result, s))
	return result
}

// Sin computes element-wise sine and records the operation.
func (b *AutodiffBackend[B]) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sin(x)
	b.tape.Record(ops.NewSinOp(x, result))
	return result
}

// Cos computes element-wise cosine and records the operation.
func (b *AutodiffBackend[B]) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Cos(x)
	b.tape.Record(ops.NewCosOp(x, result))
	return result
}

// Sum reduces x to a scalar and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// Reshape changes the shape of x and records the operation.
func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, shape)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// Narrow takes a slab of x along dim and records the operation.
func (b *AutodiffBackend[B]) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	result := b.inner.Narrow(x, dim, start, length)
	if dim < 0 {
		dim += len(x.Shape())
	}
	b.tape.Record(ops.NewNarrowOp(x, result, dim, start))
	return result
}

// Cat concatenates tensors along dim and records the operation.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Cat(tensors, dim)
	b.tape.Record(ops.NewCatOp(tensors, dim, result))
	return result
}

// Cast converts x to dtype. Casts are not differentiable and are not recorded.
func (b *AutodiffBackend[B]) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.inner.Cast(x, dtype)
}
