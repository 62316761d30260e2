package webgpu_test

import (
	"testing"

	"github.com/born-ml/trainkit/internal/backend/webgpu"
	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openOrSkip(t *testing.T) *webgpu.Device {
	t.Helper()
	d, err := webgpu.Open()
	if err != nil {
		require.ErrorIs(t, err, webgpu.ErrUnavailable)
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(d.Release)
	return d
}

func TestOpenReportsUnavailable(t *testing.T) {
	d, err := webgpu.Open()
	if err == nil {
		d.Release()
		t.Skip("WebGPU available")
	}
	assert.ErrorIs(t, err, webgpu.ErrUnavailable)
	assert.Nil(t, d)
}

func TestTransferRoundTrip(t *testing.T) {
	d := openOrSkip(t)

	x := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	moved, err := d.Transfer(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.WebGPU, moved.Device())
	assert.Equal(t, []float32{1, 2, 3}, moved.AsFloat32())

	buf, ok := moved.DeviceBuffer().(*webgpu.Buffer)
	require.True(t, ok)
	assert.Equal(t, uint64(12), buf.Size())

	back, err := d.Download(buf)
	require.NoError(t, err)
	assert.Equal(t, x.Data(), back)

	n, _ := d.Stats()
	assert.Equal(t, 1, n)
	buf.Release()
	buf.Release()
	n, _ = d.Stats()
	assert.Equal(t, 0, n)
}

func TestTransferPacksStridedInput(t *testing.T) {
	d := openOrSkip(t)

	x := tensor.MustFromSlice([]int16{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	moved, err := d.Transfer(xt)
	require.NoError(t, err)
	assert.True(t, moved.IsContiguous())
	assert.Equal(t, []int16{1, 4, 2, 5, 3, 6}, moved.AsInt16())
	moved.DeviceBuffer().Release()
}
