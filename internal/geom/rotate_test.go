package geom_test

import (
	"math"
	"testing"

	"github.com/born-ml/trainkit/internal/autodiff"
	"github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/internal/geom"
	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points(data ...float64) *tensor.RawTensor {
	return tensor.MustFromSlice(data, tensor.Shape{len(data) / 2, 2}, tensor.CPU)
}

func angles(data ...float64) *tensor.RawTensor {
	return tensor.MustFromSlice(data, tensor.Shape{len(data)}, tensor.CPU)
}

func TestRotateZeroIsIdentity(t *testing.T) {
	xy := tensor.MustFromSlice([]float32{1.5, -2, 0, 3, 7.25, 0.125}, tensor.Shape{3, 2}, tensor.CPU)
	theta := tensor.MustFromSlice([]float32{0, 0, 0}, tensor.Shape{3}, tensor.CPU)

	out, err := geom.Rotate(cpu.New(), xy, theta)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, xy.AsFloat32(), out.AsFloat32())
}

func TestRotateQuarterTurn(t *testing.T) {
	out, err := geom.Rotate(cpu.New(), points(1, 0, 0, 1), angles(math.Pi/2, math.Pi/2))
	require.NoError(t, err)

	got := out.AsFloat64()
	want := []float64{0, 1, -1, 0}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestRotatePreservesNorm(t *testing.T) {
	xy := points(3, 4, -1, 2, 0.5, -7, 0, 0)
	theta := angles(0.3, -2.1, math.Pi, 1)

	out, err := geom.Rotate(cpu.New(), xy, theta)
	require.NoError(t, err)

	in, got := xy.AsFloat64(), out.AsFloat64()
	for i := 0; i < 4; i++ {
		before := math.Hypot(in[2*i], in[2*i+1])
		after := math.Hypot(got[2*i], got[2*i+1])
		assert.InDelta(t, before, after, 1e-12, "point %d", i)
	}
}

func TestRotateStridedInput(t *testing.T) {
	// xyT holds points (1,0) and (0,2) as columns.
	xyT := tensor.MustFromSlice([]float64{1, 0, 0, 2}, tensor.Shape{2, 2}, tensor.CPU)
	xy, err := xyT.Permute(1, 0)
	require.NoError(t, err)

	out, err := geom.Rotate(cpu.New(), xy, angles(math.Pi, 0))
	require.NoError(t, err)
	got := out.AsFloat64()
	assert.InDelta(t, -1, got[0], 1e-12)
	assert.InDelta(t, 0, got[1], 1e-12)
	assert.InDelta(t, 0, got[2], 1e-12)
	assert.InDelta(t, 2, got[3], 1e-12)
}

func TestRotateGradients(t *testing.T) {
	xyData := []float64{1, 2, -0.5, 3}
	thetaData := []float64{0.4, -1.2}

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	xy, theta := points(xyData...), angles(thetaData...)
	out, err := geom.Rotate(backend, xy, theta)
	require.NoError(t, err)
	grads := autodiff.Backward(backend.Sum(out), backend)

	require.Contains(t, grads, xy)
	require.Contains(t, grads, theta)
	gxy, gtheta := grads[xy].AsFloat64(), grads[theta].AsFloat64()

	// loss = Σ (c+s)·x + (c-s)·y
	for i, th := range thetaData {
		s, c := math.Sin(th), math.Cos(th)
		x, y := xyData[2*i], xyData[2*i+1]
		assert.InDelta(t, c+s, gxy[2*i], 1e-12)
		assert.InDelta(t, c-s, gxy[2*i+1], 1e-12)
		assert.InDelta(t, (c-s)*x-(s+c)*y, gtheta[i], 1e-12)
	}
}

func TestRotateValidation(t *testing.T) {
	b := cpu.New()
	tests := []struct {
		name      string
		xy, theta *tensor.RawTensor
	}{
		{"xy not [N,2]", tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{1, 3}, tensor.CPU), angles(0)},
		{"theta length", points(1, 2), angles(0, 1)},
		{"int dtype", tensor.MustFromSlice([]int64{1, 2}, tensor.Shape{1, 2}, tensor.CPU),
			tensor.MustFromSlice([]int64{0}, tensor.Shape{1}, tensor.CPU)},
		{"mixed dtype", points(1, 2), tensor.MustFromSlice([]float32{0}, tensor.Shape{1}, tensor.CPU)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geom.Rotate(b, tt.xy, tt.theta)
			assert.Error(t, err)
		})
	}
}
