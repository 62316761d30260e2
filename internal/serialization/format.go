package serialization

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
)

// SafeTensors dtype names.
const (
	DTypeF32  = "F32"
	DTypeF64  = "F64"
	DTypeI16  = "I16"
	DTypeI32  = "I32"
	DTypeI64  = "I64"
	DTypeU8   = "U8"
	DTypeBool = "BOOL"
)

// MetadataKey is the reserved header entry holding string metadata.
const MetadataKey = "__metadata__"

// TensorMeta describes where a tensor's bytes live in the data section.
type TensorMeta struct {
	Name   string
	Offset int64 // Bytes from the start of the data section
	Size   int64 // Size in bytes
}

// DTypeName converts tensor.DataType to its SafeTensors name.
func DTypeName(dt tensor.DataType) (string, error) {
	switch dt {
	case tensor.Float32:
		return DTypeF32, nil
	case tensor.Float64:
		return DTypeF64, nil
	case tensor.Int16:
		return DTypeI16, nil
	case tensor.Int32:
		return DTypeI32, nil
	case tensor.Int64:
		return DTypeI64, nil
	case tensor.Uint8:
		return DTypeU8, nil
	case tensor.Bool:
		return DTypeBool, nil
	default:
		return "", fmt.Errorf("unsupported dtype: %s", dt)
	}
}

// ParseDType converts a SafeTensors dtype name to tensor.DataType.
// F16 and BF16 are rejected; they have no host representation here.
func ParseDType(s string) (tensor.DataType, error) {
	switch s {
	case DTypeF32:
		return tensor.Float32, nil
	case DTypeF64:
		return tensor.Float64, nil
	case DTypeI16:
		return tensor.Int16, nil
	case DTypeI32:
		return tensor.Int32, nil
	case DTypeI64:
		return tensor.Int64, nil
	case DTypeU8:
		return tensor.Uint8, nil
	case DTypeBool:
		return tensor.Bool, nil
	default:
		return 0, fmt.Errorf("unsupported dtype: %s", s)
	}
}
