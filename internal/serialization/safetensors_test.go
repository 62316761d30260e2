package serialization_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/trainkit/internal/loader"
	"github.com/born-ml/trainkit/internal/serialization"
	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSafeTensorsRoundTrip tests round-trip: write → read → verify.
func TestSafeTensorsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.safetensors")

	original := map[string]*tensor.RawTensor{
		"weight": tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU),
		"bias":   tensor.MustFromSlice([]float64{0.1, 0.2, 0.3}, tensor.Shape{3}, tensor.CPU),
		"ids":    tensor.MustFromSlice([]int16{-1, 7}, tensor.Shape{2}, tensor.CPU),
		"step":   tensor.MustFromSlice([]int64{12}, tensor.Shape{}, tensor.CPU),
		"mask":   tensor.MustFromSlice([]bool{true, false}, tensor.Shape{2}, tensor.CPU),
	}

	require.NoError(t, serialization.WriteSafeTensors(path, original, map[string]string{"format": "pt"}))

	reader, err := loader.NewSafeTensorsReader(path)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "pt", reader.Metadata()["format"])
	assert.Equal(t, []string{"bias", "ids", "mask", "step", "weight"}, reader.TensorNames())

	for name, want := range original {
		got, err := reader.LoadTensor(name, tensor.CPU)
		require.NoError(t, err, name)
		assert.Equal(t, want.DType(), got.DType(), name)
		assert.Equal(t, want.Shape(), got.Shape(), name)
		assert.Equal(t, want.Data(), got.Data(), name)
	}

	info, err := reader.TensorInfo("ids")
	require.NoError(t, err)
	assert.Equal(t, serialization.DTypeI16, info.DType)
}

func TestSafeTensorsPacksStridedTensors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strided.safetensors")

	x := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	require.NoError(t, serialization.WriteSafeTensors(path, map[string]*tensor.RawTensor{"xt": xt}, nil))

	loaded, _, err := loader.ReadSafeTensors(path, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, loaded["xt"].Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, loaded["xt"].AsFloat32())
}

func TestWriteSafeTensorsKeepsOldFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.safetensors")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	err := serialization.WriteSafeTensors(path, map[string]*tensor.RawTensor{"": tensor.Zeros(tensor.Shape{1}, tensor.Float32, tensor.CPU)}, nil)
	require.ErrorIs(t, err, serialization.ErrInvalidTensorName)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSafeTensorsHeaderLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.safetensors")
	require.NoError(t, serialization.WriteSafeTensors(path, map[string]*tensor.RawTensor{
		"a": tensor.MustFromSlice([]float32{1}, tensor.Shape{1}, tensor.CPU),
	}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	headerSize := binary.LittleEndian.Uint64(data[:8])
	assert.Equal(t, `{"a":{"dtype":"F32","shape":[1],"data_offsets":[0,4]}}`, string(data[8:8+headerSize]))
	assert.Len(t, data, 8+int(headerSize)+4)
}

func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name    string
		metas   []serialization.TensorMeta
		size    int64
		wantErr error
	}{
		{"ok", []serialization.TensorMeta{{Name: "b", Offset: 4, Size: 4}, {Name: "a", Offset: 0, Size: 4}}, 8, nil},
		{"overlap", []serialization.TensorMeta{{Name: "a", Offset: 0, Size: 6}, {Name: "b", Offset: 4, Size: 4}}, 8, serialization.ErrOffsetOverlap},
		{"out of bounds", []serialization.TensorMeta{{Name: "a", Offset: 4, Size: 8}}, 8, serialization.ErrOutOfBounds},
		{"negative", []serialization.TensorMeta{{Name: "a", Offset: -1, Size: 1}}, 8, serialization.ErrNegativeOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := serialization.ValidateTensorOffsets(tt.metas, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDTypeNames(t *testing.T) {
	for _, dt := range []tensor.DataType{tensor.Float32, tensor.Float64, tensor.Int16, tensor.Int32, tensor.Int64, tensor.Uint8, tensor.Bool} {
		name, err := serialization.DTypeName(dt)
		require.NoError(t, err)
		back, err := serialization.ParseDType(name)
		require.NoError(t, err)
		assert.Equal(t, dt, back)
	}
	_, err := serialization.ParseDType("BF16")
	assert.Error(t, err)
}
