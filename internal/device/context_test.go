package device_test

import (
	"testing"

	"github.com/born-ml/trainkit/internal/device"
	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUContextPut(t *testing.T) {
	ctx := device.CPU()
	defer ctx.Release()

	assert.Equal(t, tensor.CPU, ctx.Target())
	assert.Equal(t, "CPU", ctx.Backend.Name())

	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	out, err := ctx.Put(xt)
	require.NoError(t, err)
	assert.True(t, out.IsContiguous())
	assert.Equal(t, []float32{1, 3, 2, 4}, out.AsFloat32())

	// The copy must not alias the source.
	out.AsFloat32()[0] = 42
	assert.Equal(t, float32(1), x.AsFloat32()[0])
}

func TestAutoFallsBackToCPU(t *testing.T) {
	ctx := device.Auto(nil)
	defer ctx.Release()

	x := tensor.MustFromSlice([]int64{7}, tensor.Shape{1}, tensor.CPU)
	out, err := ctx.Put(x)
	require.NoError(t, err)
	assert.Equal(t, ctx.Target(), out.Device())
	assert.Equal(t, []int64{7}, out.AsInt64())
}
