package optim

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Optimizer names accepted by Config.Opt.
const (
	OptSGD  = "sgd"
	OptAdam = "adam"
)

// ErrUnsupportedOptimizer is returned for an unknown Config.Opt.
var ErrUnsupportedOptimizer = errors.New("unsupported optimizer")

// Config holds the hyperparameters of a Scheduled optimizer.
//
// Example config.yaml:
//
//	opt: sgd
//	lr: [0.01, 0.001]
//	lr_epochs: [32]
//	momentum: 0.9
//	weight_decay: 1e-4
//	clip_grads: true
//	clip_low: -1
//	clip_high: 1
type Config struct {
	Opt      string    `yaml:"opt"`       // "sgd" or "adam" (default: "adam")
	LR       []float32 `yaml:"lr"`        // Rates of the step schedule
	LREpochs []int     `yaml:"lr_epochs"` // Epoch thresholds, one fewer than LR

	Momentum    float32 `yaml:"momentum"`     // SGD only
	WeightDecay float32 `yaml:"weight_decay"` // L2 penalty, SGD only

	Betas [2]float32 `yaml:"betas"` // Adam only (default: [0.9, 0.999])
	Eps   float32    `yaml:"eps"`   // Adam only (default: 1e-8)

	ClipGrads bool    `yaml:"clip_grads"` // Clamp gradients before each step
	ClipLow   float32 `yaml:"clip_low"`
	ClipHigh  float32 `yaml:"clip_high"`
}

// DefaultConfig returns Adam with lr 1e-3 dropping to 1e-4 at epoch 32.
func DefaultConfig() Config {
	return Config{
		Opt:      OptAdam,
		LR:       []float32{1e-3, 1e-4},
		LREpochs: []int{32},
		Momentum: 0.9,
		Betas:    [2]float32{0.9, 0.999},
		Eps:      1e-8,
	}
}

// Validate checks the optimizer name, the schedule and the clip range.
func (c Config) Validate() error {
	switch c.Opt {
	case OptSGD, OptAdam:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOptimizer, c.Opt)
	}
	if err := checkSchedule(c.LR, c.LREpochs); err != nil {
		return err
	}
	if c.ClipGrads && c.ClipLow > c.ClipHigh {
		return fmt.Errorf("clip range [%g, %g] is empty", c.ClipLow, c.ClipHigh)
	}
	return nil
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values; unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
