// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides trainable parameters, parameter containers and
// pretrained-weight loading.
//
// # Overview
//
// A Module exposes its parameters by qualified name and converts to and
// from a state dict (name to tensor). ParamSet is a ready-made Module that
// can nest other modules under a prefix.
//
// # Loading pretrained weights
//
//	net := nn.NewParamSet()
//	net.Add("actor.weight", w)
//	net.Add("actor.bias", b)
//
//	report, err := nn.LoadPretrainFile(net, "pretrain.safetensors", tensor.CPU)
//	if err != nil {
//	    return err
//	}
//	log.Info("pretrained weights", "report", report)
//
// Entries whose names are unknown or whose shapes differ are skipped and
// counted in the report.
package nn

import (
	"github.com/born-ml/trainkit/internal/nn"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Parameter is a named trainable tensor with an optional gradient.
type Parameter = nn.Parameter

// Module is anything with named parameters and a state dict.
type Module = nn.Module

// ParamSet is a Module holding an ordered set of named parameters.
type ParamSet = nn.ParamSet

// LoadReport summarizes a pretrained-weight load.
type LoadReport = nn.LoadReport

// Tensorer is implemented by wrappers holding a tensor, such as Parameter.
type Tensorer = nn.Tensorer

// NewParameter creates a parameter named name over t.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, t)
}

// NewParamSet creates a ParamSet from params, keyed by their names.
func NewParamSet(params ...*Parameter) *ParamSet {
	return nn.NewParamSet(params...)
}

// AttachGrads accumulates tape gradients onto params.
func AttachGrads(params []*Parameter, grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	return nn.AttachGrads(params, grads)
}

// LoadPretrain copies every entry of pretrain whose name and shape match a
// parameter of net. Values may be tensors or Tensorer wrappers.
func LoadPretrain(net Module, pretrain map[string]any) LoadReport {
	return nn.LoadPretrain(net, pretrain)
}

// LoadPretrainFile applies LoadPretrain with the tensors of a SafeTensors file.
func LoadPretrainFile(net Module, path string, device tensor.Device) (LoadReport, error) {
	return nn.LoadPretrainFile(net, path, device)
}

// Save writes m's state dict to a SafeTensors file.
func Save(m Module, path string, metadata map[string]string) error {
	return nn.Save(m, path, metadata)
}
