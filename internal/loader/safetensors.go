package loader

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/trainkit/internal/serialization"
	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]

// SafeTensorInfo describes a tensor in SafeTensors format.
type SafeTensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end]
}

// SafeTensorsHeader is the JSON header in SafeTensors format.
type SafeTensorsHeader struct {
	Metadata map[string]string
	Tensors  map[string]SafeTensorInfo
}

// UnmarshalJSON implements custom JSON unmarshaling for SafeTensorsHeader.
func (h *SafeTensorsHeader) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	if metadataRaw, ok := rawMap[serialization.MetadataKey]; ok {
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Tensors = make(map[string]SafeTensorInfo, len(rawMap))
	for key, value := range rawMap {
		if key == serialization.MetadataKey {
			continue
		}
		var info SafeTensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}

	return nil
}

// SafeTensorsReader reads SafeTensors format files.
type SafeTensorsReader struct {
	file       *os.File
	header     SafeTensorsHeader
	dataOffset int64 // Offset where tensor data starts
}

// NewSafeTensorsReader opens path and validates its header.
func NewSafeTensorsReader(path string) (*SafeTensorsReader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for checkpoint loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := newReader(file)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func newReader(file *os.File) (*SafeTensorsReader, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > serialization.MaxHeaderSize || int64(headerSize)+8 > stat.Size() {
		return nil, fmt.Errorf("%w: %d bytes", serialization.ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header SafeTensorsHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	dataOffset := int64(8 + headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	if err := validateHeader(&header, stat.Size()-dataOffset); err != nil {
		return nil, err
	}

	return &SafeTensorsReader{
		file:       file,
		header:     header,
		dataOffset: dataOffset,
	}, nil
}

// validateHeader checks names, dtypes, sizes and offsets of every entry.
func validateHeader(h *SafeTensorsHeader, dataSize int64) error {
	metas := make([]serialization.TensorMeta, 0, len(h.Tensors))
	for name, info := range h.Tensors {
		if err := serialization.ValidateTensorName(name); err != nil {
			return err
		}
		dtype, err := serialization.ParseDType(info.DType)
		if err != nil {
			return fmt.Errorf("tensor %s: %w", name, err)
		}
		shape := tensor.Shape(info.Shape)
		if err := shape.Validate(); err != nil {
			return fmt.Errorf("tensor %s: %w", name, err)
		}
		size := info.DataOffsets[1] - info.DataOffsets[0]
		if want := int64(shape.NumElements() * dtype.Size()); size != want {
			return fmt.Errorf("tensor %s: data size %d does not match %s%v (%d bytes)",
				name, size, dtype, shape, want)
		}
		metas = append(metas, serialization.TensorMeta{Name: name, Offset: info.DataOffsets[0], Size: size})
	}
	return serialization.ValidateTensorOffsets(metas, dataSize)
}

// Close closes the SafeTensors file.
func (r *SafeTensorsReader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// Metadata returns the metadata map from the header.
func (r *SafeTensorsReader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns the names of all tensors in the file, sorted.
func (r *SafeTensorsReader) TensorNames() []string {
	names := maps.Keys(r.header.Tensors)
	slices.Sort(names)
	return names
}

// TensorInfo returns information about a specific tensor.
func (r *SafeTensorsReader) TensorInfo(name string) (*SafeTensorInfo, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("tensor %s not found", name)
	}
	return &info, nil
}

// ReadTensorData reads raw tensor data for a given tensor name.
func (r *SafeTensorsReader) ReadTensorData(name string) ([]byte, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	data := make([]byte, info.DataOffsets[1]-info.DataOffsets[0])
	if _, err := r.file.ReadAt(data, r.dataOffset+info.DataOffsets[0]); err != nil {
		return nil, fmt.Errorf("failed to read tensor data for %s: %w", name, err)
	}
	return data, nil
}

// LoadTensor loads a tensor onto device.
func (r *SafeTensorsReader) LoadTensor(name string, device tensor.Device) (*tensor.RawTensor, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, err := serialization.ParseDType(info.DType)
	if err != nil {
		return nil, fmt.Errorf("failed to convert dtype for tensor %s: %w", name, err)
	}

	data, err := r.ReadTensorData(name)
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(tensor.Shape(info.Shape), dtype, device)
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor %s: %w", name, err)
	}
	copy(raw.Data(), data)

	return raw, nil
}

// LoadAll loads every tensor in the file onto device.
func (r *SafeTensorsReader) LoadAll(device tensor.Device) (map[string]*tensor.RawTensor, error) {
	out := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, name := range r.TensorNames() {
		raw, err := r.LoadTensor(name, device)
		if err != nil {
			return nil, err
		}
		out[name] = raw
	}
	return out, nil
}

// ReadSafeTensors loads every tensor and the metadata of the file at path.
func ReadSafeTensors(path string, device tensor.Device) (map[string]*tensor.RawTensor, map[string]string, error) {
	r, err := NewSafeTensorsReader(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = r.Close() // Read-only file
	}()

	tensors, err := r.LoadAll(device)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return tensors, r.Metadata(), nil
}
