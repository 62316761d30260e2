package tensor

// Backend defines the interface that compute backends implement.
// Backends handle the actual computation for tensor operations and panic on
// programming errors such as mismatched shapes or unsupported dtypes.
//
// Implementations:
//   - CPU: pure Go kernels (internal/backend/cpu)
//   - Autodiff: decorator recording operations on a gradient tape (internal/autodiff)
type Backend interface {
	// Element-wise binary operations. Operands must have equal shapes.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MulScalar multiplies every element by s.
	MulScalar(x *RawTensor, s float64) *RawTensor

	// Math operations (element-wise, float dtypes only)
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor

	// Sum reduces all elements to a 0-D tensor.
	Sum(x *RawTensor) *RawTensor

	// Shape operations
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Narrow(x *RawTensor, dim, start, length int) *RawTensor
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// Cast converts to a different data type.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
