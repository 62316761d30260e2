package optim

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrScheduleLength is returned when a step schedule does not have exactly
// one more learning rate than epoch thresholds.
var ErrScheduleLength = errors.New("schedule needs exactly one more learning rate than epoch thresholds")

// StepLR is a piecewise-constant learning-rate schedule.
//
// For thresholds e_0 < e_1 < ... the rate is lr[i] for the first i with
// epoch < e_i, and the last rate once every threshold has been passed:
//
//	s, _ := optim.NewStepLR([]float32{1e-3, 1e-4}, []int{32})
//	s.At(31.5) // 1e-3
//	s.At(32)   // 1e-4
type StepLR struct {
	lr       []float32
	lrEpochs []int
}

// StepLRState is the serializable form of a StepLR.
type StepLRState struct {
	LR       []float32 `json:"lr"`
	LREpochs []int     `json:"lr_epochs"`
}

// NewStepLR creates a schedule. len(lr) must equal len(lrEpochs)+1.
// Thresholds are used in the given order.
func NewStepLR(lr []float32, lrEpochs []int) (*StepLR, error) {
	if err := checkSchedule(lr, lrEpochs); err != nil {
		return nil, err
	}
	return &StepLR{lr: slices.Clone(lr), lrEpochs: slices.Clone(lrEpochs)}, nil
}

func checkSchedule(lr []float32, lrEpochs []int) error {
	if len(lr) != len(lrEpochs)+1 {
		return fmt.Errorf("%w: %d rates, %d thresholds", ErrScheduleLength, len(lr), len(lrEpochs))
	}
	return nil
}

// At returns the learning rate for epoch. Epochs may be fractional.
func (s *StepLR) At(epoch float64) float32 {
	for i, e := range s.lrEpochs {
		if epoch < float64(e) {
			return s.lr[i]
		}
	}
	return s.lr[len(s.lr)-1]
}

// State returns a copy of the schedule's configuration.
func (s *StepLR) State() StepLRState {
	return StepLRState{LR: slices.Clone(s.lr), LREpochs: slices.Clone(s.lrEpochs)}
}

// LoadState replaces the schedule with st.
func (s *StepLR) LoadState(st StepLRState) error {
	if err := checkSchedule(st.LR, st.LREpochs); err != nil {
		return err
	}
	s.lr, s.lrEpochs = slices.Clone(st.LR), slices.Clone(st.LREpochs)
	return nil
}
