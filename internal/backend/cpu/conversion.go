package cpu

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
)

// Cast converts the tensor to a different data type.
// Same-dtype casts return x unchanged.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	result := cpu.alloc("cast", x.Shape(), dtype)
	x = x.Contiguous()

	switch x.DType() {
	case tensor.Float32:
		castFrom(result, x.AsFloat32())
	case tensor.Float64:
		castFrom(result, x.AsFloat64())
	case tensor.Int16:
		castFrom(result, x.AsInt16())
	case tensor.Int32:
		castFrom(result, x.AsInt32())
	case tensor.Int64:
		castFrom(result, x.AsInt64())
	case tensor.Uint8:
		castFrom(result, x.AsUint8())
	case tensor.Bool:
		src := x.AsBool()
		u := make([]uint8, len(src))
		for i, v := range src {
			if v {
				u[i] = 1
			}
		}
		castFrom(result, u)
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
	return result
}

// castFrom writes src converted to result's dtype.
func castFrom[S number](result *tensor.RawTensor, src []S) {
	switch result.DType() {
	case tensor.Float32:
		convert(result.AsFloat32(), src)
	case tensor.Float64:
		convert(result.AsFloat64(), src)
	case tensor.Int16:
		convert(result.AsInt16(), src)
	case tensor.Int32:
		convert(result.AsInt32(), src)
	case tensor.Int64:
		convert(result.AsInt64(), src)
	case tensor.Uint8:
		convert(result.AsUint8(), src)
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range src {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", result.DType()))
	}
}

func convert[D, S number](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}
