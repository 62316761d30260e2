// Package container transforms nested containers of tensors.
//
// A Value is one of four shapes:
//   - Array: a tensor leaf
//   - Map: string-keyed mapping of values
//   - Seq: ordered sequence of values
//   - Other: any non-tensor leaf, passed through untouched
//
// Transform rebuilds the container shape around a leaf function and never
// mutates the input. ToDevice and ToLong are Transform with fixed leaves.
package container

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Value is a node of a nested container.
type Value interface {
	isValue()
}

// Array is a tensor leaf.
type Array struct {
	T *tensor.RawTensor
}

// Map is a string-keyed mapping of values.
type Map map[string]Value

// Seq is an ordered sequence of values.
type Seq []Value

// Other is a non-tensor leaf.
type Other struct {
	V any
}

func (Array) isValue() {}
func (Map) isValue()   {}
func (Seq) isValue()   {}
func (Other) isValue() {}

// Of converts plain Go data into a Value. Tensors become Array, map[string]any
// and map[string]*tensor.RawTensor become Map, []any and []*tensor.RawTensor
// become Seq, and anything else becomes Other. Values are returned as is.
func Of(x any) Value {
	switch v := x.(type) {
	case Value:
		return v
	case *tensor.RawTensor:
		return Array{T: v}
	case map[string]*tensor.RawTensor:
		m := make(Map, len(v))
		for k, t := range v {
			m[k] = Array{T: t}
		}
		return m
	case map[string]any:
		m := make(Map, len(v))
		for k, e := range v {
			m[k] = Of(e)
		}
		return m
	case []*tensor.RawTensor:
		s := make(Seq, len(v))
		for i, t := range v {
			s[i] = Array{T: t}
		}
		return s
	case []any:
		s := make(Seq, len(v))
		for i, e := range v {
			s[i] = Of(e)
		}
		return s
	default:
		return Other{V: x}
	}
}

// Keys returns the map keys in sorted order.
func (m Map) Keys() []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Tensors returns every Array leaf of v in traversal order (sorted map keys).
func Tensors(v Value) []*tensor.RawTensor {
	var out []*tensor.RawTensor
	_, _ = Transform(v, func(t *tensor.RawTensor) (*tensor.RawTensor, error) {
		out = append(out, t)
		return t, nil
	})
	return out
}

// String formats v as a compact tree, e.g. {a: Tensor[int16][2] on CPU, b: [1, 2]}.
func String(v Value) string {
	switch n := v.(type) {
	case Array:
		return n.T.String()
	case Map:
		s := "{"
		for i, k := range n.Keys() {
			if i > 0 {
				s += ", "
			}
			s += k + ": " + String(n[k])
		}
		return s + "}"
	case Seq:
		s := "["
		for i, e := range n {
			if i > 0 {
				s += ", "
			}
			s += String(e)
		}
		return s + "]"
	case Other:
		return fmt.Sprint(n.V)
	default:
		return "<nil>"
	}
}
