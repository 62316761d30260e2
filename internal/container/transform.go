package container

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
)

// LeafFunc maps one tensor leaf to its replacement.
type LeafFunc func(*tensor.RawTensor) (*tensor.RawTensor, error)

// Transform returns a copy of v's container shape with every Array leaf
// replaced by leaf(t). Other leaves are shared with v. Maps are visited in
// sorted key order. Errors are wrapped with the path to the failing leaf.
func Transform(v Value, leaf LeafFunc) (Value, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case Array:
		if n.T == nil {
			return n, nil
		}
		t, err := leaf(n.T)
		if err != nil {
			return nil, err
		}
		return Array{T: t}, nil
	case Map:
		out := make(Map, len(n))
		for _, k := range n.Keys() {
			child, err := Transform(n[k], leaf)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = child
		}
		return out, nil
	case Seq:
		out := make(Seq, len(n))
		for i, e := range n {
			child, err := Transform(e, leaf)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = child
		}
		return out, nil
	case Other:
		return n, nil
	default:
		return nil, fmt.Errorf("container: unknown value type %T", v)
	}
}
