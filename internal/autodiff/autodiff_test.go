package autodiff_test

import (
	"math"
	"testing"

	"github.com/born-ml/trainkit/internal/autodiff"
	"github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/internal/tensor"
)

// TestAutodiffBackend_Name tests the Name method.
func TestAutodiffBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	expected := "Autodiff(CPU)"
	if backend.Name() != expected {
		t.Errorf("Name() = %s, want %s", backend.Name(), expected)
	}
}

// TestAutodiffBackend_Device tests the Device method.
func TestAutodiffBackend_Device(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want %v", backend.Device(), tensor.CPU)
	}
}

// TestTape_Recording tests tape recording on/off.
func TestTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("Tape should not be recording initially")
	}
	tape.StartRecording()
	if !tape.IsRecording() {
		t.Error("Tape should be recording after StartRecording()")
	}
	tape.StopRecording()
	if tape.IsRecording() {
		t.Error("Tape should not be recording after StopRecording()")
	}
}

// TestTape_Clear tests tape clearing.
func TestTape_Clear(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	a := tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPU)
	b := tensor.MustFromSlice([]float32{3, 4}, tensor.Shape{2}, tensor.CPU)
	backend.Add(a, b)

	if tape.NumOps() == 0 {
		t.Error("Tape should have recorded operations")
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("Tape should be empty after Clear(), got %d ops", tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("Tape should still be recording after Clear()")
	}
}

func TestTape_NotRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())

	a := tensor.MustFromSlice([]float32{1}, tensor.Shape{1}, tensor.CPU)
	backend.Mul(a, a)
	backend.Cast(a, tensor.Float64)

	if n := backend.Tape().NumOps(); n != 0 {
		t.Errorf("NumOps() = %d, want 0 while not recording", n)
	}
}

// TestBackward_Square checks d(sum(x²))/dx = 2x, accumulated over both uses of x.
func TestBackward_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.MustFromSlice([]float32{1, -2, 3}, tensor.Shape{3}, tensor.CPU)
	loss := backend.Sum(backend.Mul(x, x))

	grads := autodiff.Backward(loss, backend)
	got := grads[x].AsFloat32()
	want := []float32{2, -4, 6}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("grad[%d] = %f, want %f", i, got[i], want[i])
		}
	}
	if backend.Tape().NumOps() != 2 {
		t.Errorf("backward must not record ops, tape has %d", backend.Tape().NumOps())
	}
}

// TestBackward_SinChain checks d(sum(sin(2x)))/dx = 2cos(2x) against finite differences.
func TestBackward_SinChain(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	points := []float64{0.1, 0.7, -1.3}
	x := tensor.MustFromSlice(points, tensor.Shape{3}, tensor.CPU)
	loss := backend.Sum(backend.Sin(backend.MulScalar(x, 2)))

	got := autodiff.Backward(loss, backend)[x].AsFloat64()

	const eps = 1e-6
	f := func(v float64) float64 { return math.Sin(2 * v) }
	for i, p := range points {
		numerical := (f(p+eps) - f(p-eps)) / (2 * eps)
		if math.Abs(got[i]-numerical) > 1e-6 {
			t.Errorf("grad[%d] = %f, numerical %f", i, got[i], numerical)
		}
	}
}

func TestBackward_PanicsWithoutOps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := tensor.MustFromSlice([]float32{1}, tensor.Shape{1}, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty tape")
		}
	}()
	autodiff.Backward(x, backend)
}
