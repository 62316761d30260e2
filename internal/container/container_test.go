package container_test

import (
	"errors"
	"testing"

	"github.com/born-ml/trainkit/internal/container"
	"github.com/born-ml/trainkit/internal/device"
	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i16(data ...int16) *tensor.RawTensor {
	return tensor.MustFromSlice(data, tensor.Shape{len(data)}, tensor.CPU)
}

func TestIndexDict(t *testing.T) {
	data := map[string]*tensor.RawTensor{
		"feats": tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.CPU),
		"ids":   tensor.MustFromSlice([]int64{10, 20, 30}, tensor.Shape{3}, tensor.CPU),
	}

	tests := []struct {
		name      string
		sel       tensor.Selector
		wantFeats []float32
		wantIDs   []int64
	}{
		{"indices", tensor.Indices{2, 0}, []float32{5, 6, 1, 2}, []int64{30, 10}},
		{"negative", tensor.Indices{-1}, []float32{5, 6}, []int64{30}},
		{"repeat", tensor.Indices{1, 1}, []float32{3, 4, 3, 4}, []int64{20, 20}},
		{"mask", tensor.MaskOf(tensor.MustFromSlice([]bool{true, false, true}, tensor.Shape{3}, tensor.CPU)),
			[]float32{1, 2, 5, 6}, []int64{10, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := container.IndexDict(data, tt.sel)
			require.NoError(t, err)
			require.Len(t, out, 2)
			assert.Equal(t, tt.wantFeats, out["feats"].AsFloat32())
			assert.Equal(t, tt.wantIDs, out["ids"].AsInt64())
		})
	}

	// Input untouched.
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, data["feats"].AsFloat32())
	assert.Equal(t, []int64{10, 20, 30}, data["ids"].AsInt64())
}

func TestIndexDictErrors(t *testing.T) {
	data := map[string]*tensor.RawTensor{
		"ok":     i16(1, 2, 3),
		"scalar": tensor.MustFromSlice([]float32{1}, tensor.Shape{}, tensor.CPU),
	}
	_, err := container.IndexDict(data, tensor.Indices{0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scalar")

	_, err = container.IndexDict(map[string]*tensor.RawTensor{"a": i16(1)}, tensor.Indices{5})
	assert.True(t, errors.Is(err, tensor.ErrIndexOutOfRange))
}

func TestMergeDict(t *testing.T) {
	target := map[string]int{"a": 1, "b": 2}
	container.MergeDict(map[string]int{"b": 20, "c": 30}, target)
	assert.Equal(t, map[string]int{"a": 1, "b": 20, "c": 30}, target)

	container.MergeDict(nil, target)
	assert.Len(t, target, 3)
}

func TestTransformRebuildsShape(t *testing.T) {
	a, b := i16(1), i16(2)
	in := container.Of(map[string]any{
		"x":    a,
		"list": []any{b, "label", 3},
		"nested": map[string]any{
			"empty": []any{},
		},
	})

	calls := 0
	out, err := container.Transform(in, func(r *tensor.RawTensor) (*tensor.RawTensor, error) {
		calls++
		return r.Clone(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	m := out.(container.Map)
	assert.NotSame(t, a, m["x"].(container.Array).T)
	list := m["list"].(container.Seq)
	require.Len(t, list, 3)
	assert.Equal(t, container.Other{V: "label"}, list[1])
	assert.Equal(t, container.Other{V: 3}, list[2])
	assert.Empty(t, m["nested"].(container.Map)["empty"])

	// Input containers still hold the original leaves.
	assert.Same(t, a, in.(container.Map)["x"].(container.Array).T)
}

func TestTransformWrapsPath(t *testing.T) {
	boom := errors.New("boom")
	in := container.Of(map[string]any{"outer": []any{i16(1), i16(2)}})

	n := 0
	_, err := container.Transform(in, func(r *tensor.RawTensor) (*tensor.RawTensor, error) {
		n++
		if n == 2 {
			return nil, boom
		}
		return r, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "outer: [1]: boom", err.Error())
}

func TestToLong(t *testing.T) {
	small := i16(1, -2, 300)
	f := tensor.MustFromSlice([]float32{0.5}, tensor.Shape{1}, tensor.CPU)
	in := container.Map{
		"small": container.Array{T: small},
		"f":     container.Array{T: f},
		"seq":   container.Seq{container.Array{T: small}, container.Other{V: "x"}},
	}

	out, err := container.ToLong(in)
	require.NoError(t, err)

	m := out.(container.Map)
	widened := m["small"].(container.Array).T
	assert.Equal(t, tensor.Int64, widened.DType())
	assert.Equal(t, []int64{1, -2, 300}, widened.AsInt64())
	assert.Same(t, f, m["f"].(container.Array).T)
	assert.Equal(t, tensor.Int64, m["seq"].(container.Seq)[0].(container.Array).T.DType())

	// Mapping and sequence branches are both pure.
	assert.Same(t, small, in["small"].(container.Array).T)
	assert.Equal(t, tensor.Int16, in["seq"].(container.Seq)[0].(container.Array).T.DType())
}

func TestToDevice(t *testing.T) {
	ctx := device.CPU()
	defer ctx.Release()

	x := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	in := container.Seq{container.Array{T: xt}, container.Map{"meta": container.Other{V: 7}}}
	out, err := container.ToDevice(ctx, in)
	require.NoError(t, err)

	moved := out.(container.Seq)[0].(container.Array).T
	assert.True(t, moved.IsContiguous())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, moved.AsFloat32())
	assert.Equal(t, container.Other{V: 7}, out.(container.Seq)[1].(container.Map)["meta"])
}

func TestTensorsAndString(t *testing.T) {
	a, b := i16(1), i16(2)
	v := container.Map{"b": container.Array{T: b}, "a": container.Seq{container.Array{T: a}}}

	assert.Equal(t, []*tensor.RawTensor{a, b}, container.Tensors(v))
	assert.Equal(t, "{a: [Tensor[int16][1] on CPU], b: Tensor[int16][1] on CPU}", container.String(v))
}
