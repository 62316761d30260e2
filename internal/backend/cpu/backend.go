// Package cpu implements the CPU backend with pure Go kernels.
package cpu

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/parallel"
	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/constraints"
)

// number is the set of element types arithmetic kernels are instantiated for.
type number interface {
	constraints.Integer | constraints.Float
}

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend. Element-wise kernels over large tensors
// are split across all CPUs.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(par parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    par,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, opAdd)
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, opSub)
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, opMul)
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := cpu.alloc("mul_scalar", x.Shape(), x.DType())
	x = x.Contiguous()

	switch x.DType() {
	case tensor.Float32:
		scaleKernel(cpu.par, result.AsFloat32(), x.AsFloat32(), float32(s))
	case tensor.Float64:
		scaleKernel(cpu.par, result.AsFloat64(), x.AsFloat64(), s)
	case tensor.Int16:
		scaleKernel(cpu.par, result.AsInt16(), x.AsInt16(), int16(s))
	case tensor.Int32:
		scaleKernel(cpu.par, result.AsInt32(), x.AsInt32(), int32(s))
	case tensor.Int64:
		scaleKernel(cpu.par, result.AsInt64(), x.AsInt64(), int64(s))
	default:
		panic(fmt.Sprintf("mul_scalar: unsupported dtype %s", x.DType()))
	}
	return result
}

func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// binaryOp selects the arithmetic of an element-wise kernel.
type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
)

// binary validates operands and dispatches a typed element-wise kernel.
func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor, kind binaryOp) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	result := cpu.alloc(op, a.Shape(), a.DType())
	a, b = a.Contiguous(), b.Contiguous()

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(cpu.par, result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kind)
	case tensor.Float64:
		binaryKernel(cpu.par, result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kind)
	case tensor.Int16:
		binaryKernel(cpu.par, result.AsInt16(), a.AsInt16(), b.AsInt16(), kind)
	case tensor.Int32:
		binaryKernel(cpu.par, result.AsInt32(), a.AsInt32(), b.AsInt32(), kind)
	case tensor.Int64:
		binaryKernel(cpu.par, result.AsInt64(), a.AsInt64(), b.AsInt64(), kind)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

func binaryKernel[T number](par parallel.Config, dst, a, b []T, kind binaryOp) {
	parallel.Range(len(dst), par, func(lo, hi int) {
		switch kind {
		case opAdd:
			for i := lo; i < hi; i++ {
				dst[i] = a[i] + b[i]
			}
		case opSub:
			for i := lo; i < hi; i++ {
				dst[i] = a[i] - b[i]
			}
		case opMul:
			for i := lo; i < hi; i++ {
				dst[i] = a[i] * b[i]
			}
		}
	})
}

func scaleKernel[T number](par parallel.Config, dst, src []T, s T) {
	parallel.Range(len(dst), par, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = src[i] * s
		}
	})
}
