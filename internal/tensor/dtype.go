// Package tensor provides the core tensor types used by trainkit: untyped
// raw tensors with shape, strides, dtype and device, plus the Backend
// interface that compute backends implement.
package tensor

import "fmt"

// DType is a constraint for Go element types that map to a DataType.
type DType interface {
	~float32 | ~float64 | ~int16 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int16
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Int16:
		return 2
	case Uint8, Bool:
		return 1
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// IsFloat reports whether the data type is a floating point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// DataTypeOf returns the DataType matching the Go type T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic(fmt.Sprintf("unsupported element type %T", dummy))
	}
}
