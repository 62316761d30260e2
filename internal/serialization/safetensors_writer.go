package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SafeTensorsWriter writes tensors in SafeTensors format.
type SafeTensorsWriter struct {
	file   *os.File
	closed bool
}

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// NewSafeTensorsWriter creates a new SafeTensors file writer.
func NewSafeTensorsWriter(path string) (*SafeTensorsWriter, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &SafeTensorsWriter{file: file}, nil
}

// WriteSafeTensors writes tensors to a SafeTensors file.
//
// The file is written under a temporary name in the same directory and
// renamed into place, so a failed write never truncates an existing file.
func WriteSafeTensors(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	writer, err := NewSafeTensorsWriter(tmp)
	if err != nil {
		return err
	}

	if err := writer.WriteStateDict(tensors, metadata); err != nil {
		_ = writer.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := writer.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// WriteStateDict writes a state dictionary to the SafeTensors file.
//
// Tensors are written in alphabetical order by name. Strided tensors are
// packed before writing.
func (w *SafeTensorsWriter) WriteStateDict(stateDict map[string]*tensor.RawTensor, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	tensorNames := maps.Keys(stateDict)
	slices.Sort(tensorNames)

	header := make(map[string]any, len(stateDict)+1)
	if len(metadata) > 0 {
		header[MetadataKey] = metadata
	}

	var currentOffset int64
	for _, name := range tensorNames {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		raw := stateDict[name]
		if raw == nil {
			return fmt.Errorf("tensor %s is nil", name)
		}
		dtype, err := DTypeName(raw.DType())
		if err != nil {
			return fmt.Errorf("tensor %s: %w", name, err)
		}

		shape := raw.Shape()
		shapeInt64 := make([]int64, len(shape))
		for i, dim := range shape {
			shapeInt64[i] = int64(dim)
		}

		size := int64(raw.ByteSize())
		header[name] = SafeTensorHeader{
			DType:       dtype,
			Shape:       shapeInt64,
			DataOffsets: [2]int64{currentOffset, currentOffset + size},
		}
		currentOffset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	buf := bufio.NewWriter(w.file)

	headerSize := uint64(len(headerJSON))
	if err := binary.Write(buf, binary.LittleEndian, headerSize); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := buf.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, name := range tensorNames {
		if _, err := buf.Write(stateDict[name].Contiguous().Data()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

// Close closes the writer and the underlying file.
func (w *SafeTensorsWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}
