package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/trainkit/internal/parallel"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Sin computes element-wise sine.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("sin", x, math.Sin)
}

// Cos computes element-wise cosine.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("cos", x, math.Cos)
}

func (cpu *CPUBackend) unaryFloat(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())
	x = x.Contiguous()

	switch x.DType() {
	case tensor.Float32:
		dst, src := result.AsFloat32(), x.AsFloat32()
		parallel.Range(len(dst), cpu.par, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dst[i] = float32(f(float64(src[i])))
			}
		})
	case tensor.Float64:
		dst, src := result.AsFloat64(), x.AsFloat64()
		parallel.Range(len(dst), cpu.par, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dst[i] = f(src[i])
			}
		})
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}
	return result
}

// Sum reduces all elements to a 0-D tensor of the same dtype.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("sum", tensor.Shape{}, x.DType())
	x = x.Contiguous()

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumKernel(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumKernel(x.AsFloat64())
	case tensor.Int16:
		result.AsInt16()[0] = sumKernel(x.AsInt16())
	case tensor.Int32:
		result.AsInt32()[0] = sumKernel(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sumKernel(x.AsInt64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

func sumKernel[T number](data []T) T {
	var total T
	for _, v := range data {
		total += v
	}
	return total
}
