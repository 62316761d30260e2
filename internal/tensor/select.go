package tensor

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a selector addresses a row that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// Selector picks rows along the first dimension of a tensor.
type Selector interface {
	// Rows resolves the selector against a leading dimension of size n.
	Rows(n int) ([]int, error)
}

// Indices selects rows by position. Negative positions count from the end.
type Indices []int

// Rows implements Selector.
func (idx Indices) Rows(n int) ([]int, error) {
	rows := make([]int, len(idx))
	for i, v := range idx {
		row := v
		if row < 0 {
			row += n
		}
		if row < 0 || row >= n {
			return nil, fmt.Errorf("%w: index %d for dimension of size %d", ErrIndexOutOfRange, v, n)
		}
		rows[i] = row
	}
	return rows, nil
}

// IndicesFrom builds an Indices selector from an integer tensor.
func IndicesFrom(r *RawTensor) (Indices, error) {
	r = r.Contiguous()
	if len(r.Shape()) != 1 {
		return nil, fmt.Errorf("index tensor must be 1D, got shape %v", r.Shape())
	}
	out := make(Indices, r.NumElements())
	switch r.DType() {
	case Int16:
		for i, v := range r.AsInt16() {
			out[i] = int(v)
		}
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = int(v)
		}
	case Int64:
		for i, v := range r.AsInt64() {
			out[i] = int(v)
		}
	default:
		return nil, fmt.Errorf("index tensor must have an integer dtype, got %s", r.DType())
	}
	return out, nil
}

// Mask selects the rows whose mask entry is true.
type Mask struct {
	mask *RawTensor
}

// MaskOf wraps a 1D bool tensor as a Selector.
func MaskOf(mask *RawTensor) Mask {
	return Mask{mask: mask}
}

// Rows implements Selector.
func (m Mask) Rows(n int) ([]int, error) {
	if m.mask == nil {
		return nil, errors.New("mask selector has no mask tensor")
	}
	mask := m.mask.Contiguous()
	if mask.DType() != Bool {
		return nil, fmt.Errorf("mask must have dtype bool, got %s", mask.DType())
	}
	if len(mask.Shape()) != 1 || mask.Shape()[0] != n {
		return nil, fmt.Errorf("mask shape %v does not match leading dimension %d", mask.Shape(), n)
	}
	var rows []int
	for i, keep := range mask.AsBool() {
		if keep {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// IndexSelect returns a new contiguous tensor holding the rows of x picked by sel.
// x is not modified. 0-D tensors cannot be indexed.
func IndexSelect(x *RawTensor, sel Selector) (*RawTensor, error) {
	if len(x.Shape()) == 0 {
		return nil, fmt.Errorf("cannot index a 0-d tensor")
	}
	rows, err := sel.Rows(x.Shape()[0])
	if err != nil {
		return nil, err
	}

	shape := x.Shape().Clone()
	shape[0] = len(rows)
	out, err := NewRaw(shape, x.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	src := x.Contiguous().Data()
	dst := out.Data()
	rowBytes := x.Shape()[1:].NumElements() * x.DType().Size()
	for i, row := range rows {
		copy(dst[i*rowBytes:(i+1)*rowBytes], src[row*rowBytes:(row+1)*rowBytes])
	}
	return out, nil
}
