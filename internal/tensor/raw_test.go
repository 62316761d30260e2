package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawTensorZeroCopyAccess(t *testing.T) {
	raw, err := NewRaw(Shape{3, 2}, Int16, CPU)
	require.NoError(t, err)

	data := raw.AsInt16()
	require.Len(t, data, 6)

	data[0] = 42
	assert.Equal(t, int16(42), raw.AsInt16()[0], "AsInt16 should return a zero-copy slice")
	assert.Equal(t, 12, raw.ByteSize())
}

func TestRawTensorDTypeMismatchPanics(t *testing.T) {
	raw := Zeros(Shape{2}, Float32, CPU)
	assert.Panics(t, func() { raw.AsInt64() })
}

func TestRawTensorEmpty(t *testing.T) {
	raw, err := NewRaw(Shape{0, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.NumElements())
	assert.Empty(t, raw.AsFloat32())
}

func TestRawTensorInvalidShape(t *testing.T) {
	_, err := NewRaw(Shape{2, -1}, Float32, CPU)
	assert.Error(t, err)
}

func TestPermuteAndContiguous(t *testing.T) {
	x := MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, CPU)

	xt, err := x.Permute(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, xt.Shape())
	assert.False(t, xt.IsContiguous())
	assert.Panics(t, func() { xt.AsFloat32() })

	packed := xt.Contiguous()
	assert.True(t, packed.IsContiguous())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, packed.AsFloat32())

	// Contiguous tensors are returned as-is.
	assert.Same(t, x, x.Contiguous())
}

func TestPermuteErrors(t *testing.T) {
	x := Zeros(Shape{2, 3}, Float32, CPU)

	_, err := x.Permute(0)
	assert.Error(t, err)

	_, err = x.Permute(1, 1)
	assert.Error(t, err)

	_, err = x.Permute(0, 2)
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	x := MustFromSlice([]int64{1, 2, 3}, Shape{3}, CPU)
	y := x.Clone()
	y.AsInt64()[0] = 100
	assert.Equal(t, int64(1), x.AsInt64()[0])
}

func TestViewSharesMemory(t *testing.T) {
	x := MustFromSlice([]float64{1, 2, 3, 4}, Shape{2, 2}, CPU)
	v, err := x.View(Shape{4})
	require.NoError(t, err)
	v.AsFloat64()[3] = 9
	assert.Equal(t, 9.0, x.AsFloat64()[3])

	_, err = x.View(Shape{3})
	assert.Error(t, err)
}

func TestOnDevice(t *testing.T) {
	x := MustFromSlice([]float32{1, 2}, Shape{2}, CPU)
	y := x.OnDevice(WebGPU, nil)
	assert.Equal(t, WebGPU, y.Device())
	assert.Equal(t, CPU, x.Device())
	assert.Equal(t, x.AsFloat32(), y.AsFloat32())
}
