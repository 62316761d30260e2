package optim

import (
	"encoding/json"
	"fmt"

	"github.com/born-ml/trainkit/internal/loader"
	"github.com/born-ml/trainkit/internal/serialization"
	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Snapshot metadata keys.
const (
	metaLRFunc     = "lr_func"
	metaCoef       = "coef"
	metaOpt        = "opt"
	metaSnapshotID = "snapshot_id"
)

// State is a snapshot of a Scheduled optimizer: its schedule, its group
// coefficients and the inner optimizer's buffers.
type State struct {
	LRFunc   StepLRState                  `json:"lr_func"`
	Coef     []float32                    `json:"coef"`
	OptState map[string]*tensor.RawTensor `json:"-"`

	// Opt and ID are set by ReadState from the file metadata.
	Opt string `json:"-"`
	ID  string `json:"-"`
}

// State returns a snapshot. Buffers are shared with the optimizer; they
// are copied on LoadState.
func (s *Scheduled) State() State {
	return State{
		LRFunc:   s.sched.State(),
		Coef:     s.Coef(),
		OptState: s.opt.StateDict(),
	}
}

// LoadState restores the schedule, the coefficients and the inner
// optimizer's buffers. Nothing is changed if any part is invalid.
func (s *Scheduled) LoadState(st State) error {
	if len(st.Coef) != len(s.coef) {
		return fmt.Errorf("load state: %d coefficients for %d parameter groups", len(st.Coef), len(s.coef))
	}
	sched, err := NewStepLR(st.LRFunc.LR, st.LRFunc.LREpochs)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if err := s.opt.LoadStateDict(st.OptState); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	s.sched = sched
	copy(s.coef, st.Coef)
	return nil
}

// SaveState writes a snapshot to a SafeTensors file. Optimizer buffers are
// stored as tensors; the schedule and coefficients are JSON metadata.
// Returns the snapshot's random id, also stored in the metadata.
func (s *Scheduled) SaveState(path string) (string, error) {
	st := s.State()
	lrFunc, err := json.Marshal(st.LRFunc)
	if err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}
	coef, err := json.Marshal(st.Coef)
	if err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}

	id := uuid.NewString()
	metadata := map[string]string{
		metaLRFunc:     string(lrFunc),
		metaCoef:       string(coef),
		metaOpt:        s.name,
		metaSnapshotID: id,
	}
	if err := serialization.WriteSafeTensors(path, st.OptState, metadata); err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}
	return id, nil
}

// ReadState reads a snapshot written by SaveState.
func ReadState(path string) (State, error) {
	tensors, metadata, err := loader.ReadSafeTensors(path, tensor.CPU)
	if err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}

	var st State
	for _, key := range []string{metaLRFunc, metaCoef} {
		if _, ok := metadata[key]; !ok {
			return State{}, fmt.Errorf("read state %s: missing %q metadata", path, key)
		}
	}
	if err := json.Unmarshal([]byte(metadata[metaLRFunc]), &st.LRFunc); err != nil {
		return State{}, fmt.Errorf("read state %s: %s: %w", path, metaLRFunc, err)
	}
	if err := json.Unmarshal([]byte(metadata[metaCoef]), &st.Coef); err != nil {
		return State{}, fmt.Errorf("read state %s: %s: %w", path, metaCoef, err)
	}
	st.OptState = tensors
	st.Opt = metadata[metaOpt]
	st.ID = metadata[metaSnapshotID]
	return st, nil
}

// LoadStateFile restores a snapshot written by SaveState. The file must
// come from the same kind of inner optimizer.
func (s *Scheduled) LoadStateFile(path string) error {
	st, err := ReadState(path)
	if err != nil {
		return err
	}
	if st.Opt != "" && st.Opt != s.name {
		return fmt.Errorf("load state %s: snapshot is for %s, optimizer is %s", path, st.Opt, s.name)
	}
	return s.LoadState(st)
}

// StateKeys returns the sorted names of the optimizer buffers in st.
func (st State) StateKeys() []string {
	keys := maps.Keys(st.OptState)
	slices.Sort(keys)
	return keys
}
