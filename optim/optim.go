// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers and learning-rate schedules.
//
// # Overview
//
// Scheduled wraps SGD or Adam with a step schedule, per-group rate
// coefficients and optional gradient clipping. Its state (schedule,
// coefficients and optimizer buffers) can be saved to a SafeTensors file
// and restored.
//
// # Basic Usage
//
//	cfg, err := optim.LoadConfig("optim.yaml")
//	if err != nil {
//	    return err
//	}
//	opt, err := optim.NewScheduled([][]*nn.Parameter{net.Parameters()}, cfg)
//	if err != nil {
//	    return err
//	}
//
//	for batch := 0; batch < numBatches; batch++ {
//	    opt.ZeroGrad()
//	    // forward, backward, nn.AttachGrads...
//	    lr := opt.Step(float64(epoch) + float64(batch)/float64(numBatches))
//	}
package optim

import (
	"github.com/born-ml/trainkit/internal/nn"
	"github.com/born-ml/trainkit/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// ParamGroup is a set of parameters sharing one learning rate.
type ParamGroup = optim.ParamGroup

// Config holds the hyperparameters of a Scheduled optimizer.
type Config = optim.Config

// Scheduled applies a schedule, coefficients and clipping around an optimizer.
type Scheduled = optim.Scheduled

// State is a Scheduled optimizer snapshot.
type State = optim.State

// StepLR is a piecewise-constant learning-rate schedule.
type StepLR = optim.StepLR

// StepLRState is the serializable form of a StepLR.
type StepLRState = optim.StepLRState

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// Optimizer names.
const (
	OptSGD  = optim.OptSGD
	OptAdam = optim.OptAdam
)

// Configuration errors.
var (
	ErrUnsupportedOptimizer = optim.ErrUnsupportedOptimizer
	ErrScheduleLength       = optim.ErrScheduleLength
)

// DefaultConfig returns Adam with lr 1e-3 dropping to 1e-4 at epoch 32.
func DefaultConfig() Config {
	return optim.DefaultConfig()
}

// LoadConfig reads a YAML config over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return optim.LoadConfig(path)
}

// NewScheduled creates the optimizer named by cfg with one group per slice.
func NewScheduled(groups [][]*nn.Parameter, cfg Config) (*Scheduled, error) {
	return optim.NewScheduled(groups, cfg)
}

// NewStepLR creates a schedule; len(lr) must be len(lrEpochs)+1.
func NewStepLR(lr []float32, lrEpochs []int) (*StepLR, error) {
	return optim.NewStepLR(lr, lrEpochs)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(groups [][]*nn.Parameter, config SGDConfig) (*SGD, error) {
	return optim.NewSGD(groups, config)
}

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(groups [][]*nn.Parameter, config AdamConfig) (*Adam, error) {
	return optim.NewAdam(groups, config)
}

// ReadState reads a snapshot written by Scheduled.SaveState.
func ReadState(path string) (State, error) {
	return optim.ReadState(path)
}
