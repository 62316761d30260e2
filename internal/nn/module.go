// Package nn holds trainable parameters and the modules that own them.
//
// This package provides:
//   - Parameter: a named tensor with an owned gradient
//   - Module: anything exposing named parameters and a state dict
//   - ParamSet: an ordered, composable Module
//   - LoadPretrain: partial loading of pretrained weights
//
// Design inspired by PyTorch's nn.Module.
package nn

import (
	"fmt"

	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Module is the base interface for components owning trainable parameters.
type Module interface {
	// Parameters returns all trainable parameters in registration order.
	Parameters() []*Parameter

	// NamedParameters returns all trainable parameters keyed by qualified
	// name (e.g., "actor.0.weight").
	NamedParameters() map[string]*Parameter

	// StateDict returns a map of qualified names to tensors.
	// The tensors are the parameters' own memory, not copies.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies every entry of stateDict into the matching parameter.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

// ParamSet is an ordered collection of parameters. Child modules are
// registered under a prefix, so "actor" + "weight" becomes "actor.weight".
type ParamSet struct {
	names  []string
	params []*Parameter
	byName map[string]*Parameter
}

// NewParamSet creates a ParamSet holding params under their own names.
// Panics on duplicate names.
func NewParamSet(params ...*Parameter) *ParamSet {
	s := &ParamSet{byName: make(map[string]*Parameter, len(params))}
	for _, p := range params {
		s.mustAdd(p.Name(), p)
	}
	return s
}

// Add creates a parameter named name over t and registers it.
// Panics on duplicate names.
func (s *ParamSet) Add(name string, t *tensor.RawTensor) *Parameter {
	p := NewParameter(name, t)
	s.mustAdd(name, p)
	return p
}

// Register adds every parameter of m under prefix + "." + its name.
// The parameters (values and gradients) are shared with m.
func (s *ParamSet) Register(prefix string, m Module) {
	named := m.NamedParameters()
	names := maps.Keys(named)
	slices.Sort(names)
	for _, name := range names {
		s.mustAdd(prefix+"."+name, named[name])
	}
}

func (s *ParamSet) mustAdd(name string, p *Parameter) {
	if _, dup := s.byName[name]; dup {
		panic(fmt.Sprintf("ParamSet: duplicate parameter %q", name))
	}
	s.names = append(s.names, name)
	s.params = append(s.params, p)
	s.byName[name] = p
}

// Get returns the parameter registered as name, or nil.
func (s *ParamSet) Get(name string) *Parameter {
	return s.byName[name]
}

// Names returns the qualified names in registration order.
func (s *ParamSet) Names() []string {
	return slices.Clone(s.names)
}

// Parameters returns all parameters in registration order.
func (s *ParamSet) Parameters() []*Parameter {
	return s.params
}

// NamedParameters returns all parameters keyed by qualified name.
func (s *ParamSet) NamedParameters() map[string]*Parameter {
	return maps.Clone(s.byName)
}

// StateDict returns a map of qualified names to tensors.
func (s *ParamSet) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor, len(s.params))
	for i, p := range s.params {
		stateDict[s.names[i]] = p.tensor
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary.
// Every parameter must be present with a matching shape, and no other
// keys may be present.
func (s *ParamSet) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, p := range s.params {
		raw, ok := stateDict[s.names[i]]
		if !ok {
			return fmt.Errorf("missing %s in state dict", s.names[i])
		}
		if err := p.CopyFrom(raw); err != nil {
			return fmt.Errorf("failed to load %s: %w", s.names[i], err)
		}
	}

	if len(stateDict) > len(s.params) {
		keys := maps.Keys(stateDict)
		slices.Sort(keys)
		for _, k := range keys {
			if _, ok := s.byName[k]; !ok {
				return fmt.Errorf("unexpected %s in state dict", k)
			}
		}
	}
	return nil
}
