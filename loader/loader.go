// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader reads SafeTensors checkpoints.
//
// Example:
//
//	tensors, metadata, err := loader.ReadSafeTensors("model.safetensors", tensor.CPU)
package loader

import (
	"github.com/born-ml/trainkit/internal/loader"
	"github.com/born-ml/trainkit/internal/tensor"
)

// SafeTensorsReader reads tensors from a SafeTensors file.
type SafeTensorsReader = loader.SafeTensorsReader

// SafeTensorInfo describes one tensor in a SafeTensors header.
type SafeTensorInfo = loader.SafeTensorInfo

// Open opens a SafeTensors file and validates its header.
func Open(path string) (*SafeTensorsReader, error) {
	return loader.NewSafeTensorsReader(path)
}

// ReadSafeTensors loads every tensor and the metadata of a file.
func ReadSafeTensors(path string, device tensor.Device) (map[string]*tensor.RawTensor, map[string]string, error) {
	return loader.ReadSafeTensors(path, device)
}
