package container

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// IndexDict returns a new map with result[k] = data[k][sel] for every key.
// The selected rows are copied; data is not modified.
func IndexDict(data map[string]*tensor.RawTensor, sel tensor.Selector) (map[string]*tensor.RawTensor, error) {
	keys := maps.Keys(data)
	slices.Sort(keys)

	out := make(map[string]*tensor.RawTensor, len(data))
	for _, k := range keys {
		if data[k] == nil {
			return nil, fmt.Errorf("index_dict: %s: nil tensor", k)
		}
		rows, err := tensor.IndexSelect(data[k], sel)
		if err != nil {
			return nil, fmt.Errorf("index_dict: %s: %w", k, err)
		}
		out[k] = rows
	}
	return out, nil
}

// MergeDict copies every entry of source into target, overwriting existing
// keys. Keys only present in target are kept.
func MergeDict[K comparable, V any](source, target map[K]V) {
	maps.Copy(target, source)
}
