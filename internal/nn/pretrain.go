package nn

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/born-ml/trainkit/internal/loader"
	"github.com/born-ml/trainkit/internal/tensor"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Tensorer is implemented by values wrapping a tensor, such as *Parameter.
type Tensorer interface {
	Tensor() *tensor.RawTensor
}

// LoadReport lists what LoadPretrain did with each key. All lists are sorted.
type LoadReport struct {
	Loaded        []string // Copied into the module
	ShapeMismatch []string // Present in both, shapes differ; parameter kept
	Missing       []string // Module parameters absent from the checkpoint
	Unexpected    []string // Checkpoint keys the module does not have
	Unsupported   []string // Checkpoint values that are not tensors
}

// String returns a one-line summary.
func (r LoadReport) String() string {
	return fmt.Sprintf("loaded %d, shape mismatch %d, missing %d, unexpected %d",
		len(r.Loaded), len(r.ShapeMismatch), len(r.Missing), len(r.Unexpected)+len(r.Unsupported))
}

// LogValue implements slog.LogValuer.
func (r LoadReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("loaded", len(r.Loaded)),
		slog.String("shape_mismatch", strings.Join(r.ShapeMismatch, ",")),
		slog.String("missing", strings.Join(r.Missing, ",")),
		slog.String("unexpected", strings.Join(append(slices.Clone(r.Unexpected), r.Unsupported...), ",")),
	)
}

// LoadPretrain copies every pretrained value whose key exists in net with
// exactly the same shape into net's parameter, in place. Values wrapping a
// tensor (Tensorer) are unwrapped first. Everything else is skipped without
// error: values that are not tensors are reported Unsupported whatever their
// key, shape mismatches and missing keys keep the current parameter, and
// keys net does not have are ignored.
func LoadPretrain(net Module, pretrain map[string]any) LoadReport {
	var report LoadReport
	params := net.NamedParameters()

	keys := maps.Keys(pretrain)
	slices.Sort(keys)
	for _, key := range keys {
		value := unwrap(pretrain[key])
		if value == nil {
			report.Unsupported = append(report.Unsupported, key)
			continue
		}
		p, ok := params[key]
		if !ok {
			report.Unexpected = append(report.Unexpected, key)
			continue
		}
		if err := p.CopyFrom(value); err != nil {
			report.ShapeMismatch = append(report.ShapeMismatch, key)
			continue
		}
		report.Loaded = append(report.Loaded, key)
	}

	for _, name := range maps.Keys(params) {
		if _, ok := pretrain[name]; !ok {
			report.Missing = append(report.Missing, name)
		}
	}
	slices.Sort(report.Missing)
	return report
}

func unwrap(v any) *tensor.RawTensor {
	switch t := v.(type) {
	case *tensor.RawTensor:
		return t
	case *Parameter:
		if t == nil {
			return nil
		}
		return t.Tensor()
	case Tensorer:
		return t.Tensor()
	default:
		return nil
	}
}

// LoadPretrainFile reads a SafeTensors checkpoint and applies LoadPretrain.
// Only I/O and format errors are returned.
func LoadPretrainFile(net Module, path string, device tensor.Device) (LoadReport, error) {
	tensors, _, err := loader.ReadSafeTensors(path, device)
	if err != nil {
		return LoadReport{}, fmt.Errorf("load pretrain: %w", err)
	}
	pretrain := make(map[string]any, len(tensors))
	for k, t := range tensors {
		pretrain[k] = t
	}
	return LoadPretrain(net, pretrain), nil
}
