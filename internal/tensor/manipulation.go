package tensor

import "fmt"

// Narrow returns a contiguous copy of x restricted to [start, start+length) along dim.
func Narrow(x *RawTensor, dim, start, length int) (*RawTensor, error) {
	shape := x.Shape()
	d, err := normalizeDim(dim, len(shape))
	if err != nil {
		return nil, fmt.Errorf("narrow: %w", err)
	}
	if start < 0 || length < 0 || start+length > shape[d] {
		return nil, fmt.Errorf("narrow: range [%d, %d) out of bounds for dimension %d of size %d",
			start, start+length, d, shape[d])
	}

	outShape := shape.Clone()
	outShape[d] = length
	out, err := NewRaw(outShape, x.DType(), x.Device())
	if err != nil {
		return nil, err
	}
	copyBlocks(out.Data(), x.Contiguous().Data(), shape, d, start, length, x.DType().Size(), false)
	return out, nil
}

// NarrowInto writes src into a zero tensor of the given shape at
// [start, start+src.Shape()[dim]) along dim. It is the adjoint of Narrow.
func NarrowInto(shape Shape, src *RawTensor, dim, start int) (*RawTensor, error) {
	d, err := normalizeDim(dim, len(shape))
	if err != nil {
		return nil, fmt.Errorf("narrow_into: %w", err)
	}
	length := src.Shape()[d]
	if start < 0 || start+length > shape[d] {
		return nil, fmt.Errorf("narrow_into: range [%d, %d) out of bounds for dimension %d of size %d",
			start, start+length, d, shape[d])
	}
	out, err := NewRaw(shape, src.DType(), src.Device())
	if err != nil {
		return nil, err
	}
	copyBlocks(out.Data(), src.Contiguous().Data(), shape, d, start, length, src.DType().Size(), true)
	return out, nil
}

// copyBlocks moves the [start, start+length) slab along dim between a full
// tensor of shape full and a narrowed one. When scatter is true the narrowed
// data in src is written into the full dst, otherwise the slab is gathered.
func copyBlocks(dst, src []byte, full Shape, dim, start, length, esize int, scatter bool) {
	outer := full[:dim].NumElements()
	inner := full[dim+1:].NumElements() * esize
	fullRow := full[dim] * inner
	narrowRow := length * inner
	for o := 0; o < outer; o++ {
		fullOff := o*fullRow + start*inner
		narrowOff := o * narrowRow
		if scatter {
			copy(dst[fullOff:fullOff+narrowRow], src[narrowOff:narrowOff+narrowRow])
		} else {
			copy(dst[narrowOff:narrowOff+narrowRow], src[fullOff:fullOff+narrowRow])
		}
	}
}

// Cat concatenates tensors along dim. All inputs must share dtype and all
// dimensions except dim.
func Cat(tensors []*RawTensor, dim int) (*RawTensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("cat: no tensors")
	}
	first := tensors[0]
	d, err := normalizeDim(dim, len(first.Shape()))
	if err != nil {
		return nil, fmt.Errorf("cat: %w", err)
	}

	outShape := first.Shape().Clone()
	outShape[d] = 0
	for i, t := range tensors {
		if t.DType() != first.DType() {
			return nil, fmt.Errorf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), first.DType())
		}
		if len(t.Shape()) != len(first.Shape()) {
			return nil, fmt.Errorf("cat: tensor %d has rank %d, expected %d", i, len(t.Shape()), len(first.Shape()))
		}
		for j, size := range t.Shape() {
			if j != d && size != first.Shape()[j] {
				return nil, fmt.Errorf("cat: tensor %d has size %d at dimension %d, expected %d", i, size, j, first.Shape()[j])
			}
		}
		outShape[d] += t.Shape()[d]
	}

	out, err := NewRaw(outShape, first.DType(), first.Device())
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	esize := first.DType().Size()
	start := 0
	for _, t := range tensors {
		length := t.Shape()[d]
		copyBlocks(dst, t.Contiguous().Data(), outShape, d, start, length, esize, true)
		start += length
	}
	return out, nil
}
