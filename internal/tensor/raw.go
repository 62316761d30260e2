package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device a tensor lives on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// DeviceBuffer is accelerator memory mirroring a tensor's host data.
// Implementations are provided by accelerator backends.
type DeviceBuffer interface {
	// Device returns the device holding the buffer.
	Device() Device
	// Size returns the buffer size in bytes.
	Size() uint64
	// Release frees the accelerator memory.
	Release()
}

// RawTensor is the low-level, untyped tensor representation.
//
// The host byte buffer is shared between views: Permute and Reshape of a
// contiguous tensor return views over the same memory, and Contiguous
// materializes a packed copy when the layout requires it.
type RawTensor struct {
	data   []byte   // Shared host memory
	shape  Shape    // Tensor dimensions
	stride []int    // Element strides
	offset int      // Element offset into data
	dtype  DataType // Runtime type information
	device Device   // Compute device

	devBuf DeviceBuffer // Accelerator mirror, nil on CPU
}

// NewRaw creates a new zero-filled, contiguous RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// MustRaw is NewRaw for shapes known to be valid. It panics on error.
func MustRaw(shape Shape, dtype DataType, device Device) *RawTensor {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// DeviceBuffer returns the accelerator mirror, or nil for host tensors.
func (r *RawTensor) DeviceBuffer() DeviceBuffer {
	return r.devBuf
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the packed size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsContiguous reports whether the tensor is laid out row-major without gaps.
func (r *RawTensor) IsContiguous() bool {
	expected := r.shape.ComputeStrides()
	for i, dim := range r.shape {
		if dim > 1 && r.stride[i] != expected[i] {
			return false
		}
	}
	return true
}

// Data returns the packed bytes of a contiguous tensor.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	r.mustContiguous()
	start := r.offset * r.dtype.Size()
	return r.data[start : start+r.ByteSize()]
}

func (r *RawTensor) mustContiguous() {
	if !r.IsContiguous() {
		panic(fmt.Sprintf("tensor %v with strides %v is not contiguous; call Contiguous first", r.shape, r.stride))
	}
}

// Elems returns a typed view of a contiguous tensor's elements.
// Panics if T does not match the tensor's dtype.
func Elems[T DType](r *RawTensor) []T {
	if want := DataTypeOf[T](); r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	n := r.NumElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

// AsFloat32 interprets the data as []float32.
func (r *RawTensor) AsFloat32() []float32 { return Elems[float32](r) }

// AsFloat64 interprets the data as []float64.
func (r *RawTensor) AsFloat64() []float64 { return Elems[float64](r) }

// AsInt16 interprets the data as []int16.
func (r *RawTensor) AsInt16() []int16 { return Elems[int16](r) }

// AsInt32 interprets the data as []int32.
func (r *RawTensor) AsInt32() []int32 { return Elems[int32](r) }

// AsInt64 interprets the data as []int64.
func (r *RawTensor) AsInt64() []int64 { return Elems[int64](r) }

// AsUint8 interprets the data as []uint8.
func (r *RawTensor) AsUint8() []uint8 { return Elems[uint8](r) }

// AsBool interprets the data as []bool.
func (r *RawTensor) AsBool() []bool { return Elems[bool](r) }

// Clone returns a packed deep copy on the same device.
// The accelerator mirror is not shared with the copy.
func (r *RawTensor) Clone() *RawTensor {
	out := MustRaw(r.shape, r.dtype, r.device)
	copyStrided(out, r)
	return out
}

// Contiguous returns r itself when it is already packed, otherwise a packed copy.
func (r *RawTensor) Contiguous() *RawTensor {
	if r.IsContiguous() {
		return r
	}
	out := MustRaw(r.shape, r.dtype, r.device)
	copyStrided(out, r)
	return out
}

// Permute returns a view with dimensions reordered according to axes.
// The view shares memory with r and is usually not contiguous.
func (r *RawTensor) Permute(axes ...int) (*RawTensor, error) {
	ndim := len(r.shape)
	if len(axes) != ndim {
		return nil, fmt.Errorf("permute: expected %d axes, got %d", ndim, len(axes))
	}
	seen := make([]bool, ndim)
	shape := make(Shape, ndim)
	stride := make([]int, ndim)
	for i, a := range axes {
		axis, err := normalizeDim(a, ndim)
		if err != nil {
			return nil, fmt.Errorf("permute: %w", err)
		}
		if seen[axis] {
			return nil, fmt.Errorf("permute: axis %d repeated", axis)
		}
		seen[axis] = true
		shape[i] = r.shape[axis]
		stride[i] = r.stride[axis]
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape,
		stride: stride,
		offset: r.offset,
		dtype:  r.dtype,
		device: r.device,
	}, nil
}

// View returns a tensor sharing r's memory with a new shape.
// r must be contiguous and the element count must match.
func (r *RawTensor) View(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("view: cannot view %v (%d elements) as %v", r.shape, r.NumElements(), shape)
	}
	if !r.IsContiguous() {
		return nil, fmt.Errorf("view: tensor %v is not contiguous", r.shape)
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		offset: r.offset,
		dtype:  r.dtype,
		device: r.device,
		devBuf: r.devBuf,
	}, nil
}

// OnDevice returns a view of r placed on device with the given accelerator
// mirror. Host memory is shared with r.
func (r *RawTensor) OnDevice(device Device, buf DeviceBuffer) *RawTensor {
	return &RawTensor{
		data:   r.data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		offset: r.offset,
		dtype:  r.dtype,
		device: device,
		devBuf: buf,
	}
}

// String returns a short description of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", r.dtype, r.shape, r.device)
}

// copyStrided packs src (any layout) into the contiguous dst.
func copyStrided(dst, src *RawTensor) {
	esize := src.dtype.Size()
	n := src.NumElements()
	if n == 0 {
		return
	}
	out := dst.Data()
	if src.IsContiguous() {
		start := src.offset * esize
		copy(out, src.data[start:start+n*esize])
		return
	}

	ndim := len(src.shape)
	index := make([]int, ndim)
	for i := 0; i < n; i++ {
		pos := src.offset
		for d := 0; d < ndim; d++ {
			pos += index[d] * src.stride[d]
		}
		copy(out[i*esize:(i+1)*esize], src.data[pos*esize:(pos+1)*esize])

		for d := ndim - 1; d >= 0; d-- {
			index[d]++
			if index[d] < src.shape[d] {
				break
			}
			index[d] = 0
		}
	}
}
