// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package container applies tensor operations across nested containers.
//
// A Value is a tensor (Array), a string-keyed map, a sequence or any other
// value. Transform rebuilds a container with every tensor replaced by a
// leaf function; the input is never modified.
//
// Example:
//
//	batch := container.Of(map[string]any{
//	    "feats": feats,
//	    "ids":   []any{ids16, "meta"},
//	})
//	batch, err = container.ToLong(batch)
//	batch, err = container.ToDevice(ctx, batch)
package container

import (
	"github.com/born-ml/trainkit/internal/container"
	"github.com/born-ml/trainkit/internal/device"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Value is a tensor, a map, a sequence or an opaque value.
type Value = container.Value

// Array is a tensor leaf.
type Array = container.Array

// Map is a string-keyed container.
type Map = container.Map

// Seq is an ordered container.
type Seq = container.Seq

// Other is an opaque leaf passed through unchanged.
type Other = container.Other

// LeafFunc maps one tensor to another.
type LeafFunc = container.LeafFunc

// Of converts Go values (tensors, maps, slices) into a Value.
func Of(x any) Value {
	return container.Of(x)
}

// Transform rebuilds v with every tensor replaced by leaf(tensor).
func Transform(v Value, leaf LeafFunc) (Value, error) {
	return container.Transform(v, leaf)
}

// IndexDict returns a new map with data[k][sel] for every key.
func IndexDict(data map[string]*tensor.RawTensor, sel tensor.Selector) (map[string]*tensor.RawTensor, error) {
	return container.IndexDict(data, sel)
}

// MergeDict copies every entry of source into target, overwriting.
func MergeDict[K comparable, V any](source, target map[K]V) {
	container.MergeDict(source, target)
}

// ToDevice transfers every tensor in v with ctx.
func ToDevice(ctx *device.Context, v Value) (Value, error) {
	return container.ToDevice(ctx, v)
}

// ToLong widens every int16 tensor in v to int64.
func ToLong(v Value) (Value, error) {
	return container.ToLong(v)
}

// Tensors returns the tensors of v in traversal order.
func Tensors(v Value) []*tensor.RawTensor {
	return container.Tensors(v)
}
