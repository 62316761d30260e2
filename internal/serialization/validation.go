package serialization

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := slices.Clone(tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Err:     ErrNegativeOffset,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}

		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Err:     ErrOffsetOverlap,
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects names that are too long, empty, reserved or
// contain control bytes.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Err:     ErrTensorNameTooLong,
			Tensor:  name[:64] + "...",
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}
	if name == "" || name == MetadataKey {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: "empty or reserved name",
		}
	}
	if strings.Contains(name, "\x00") {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: "contains null byte",
		}
	}
	return nil
}
