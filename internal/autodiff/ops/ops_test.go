package ops_test

import (
	"math"
	"testing"

	"github.com/born-ml/trainkit/internal/autodiff/ops"
	"github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Helper to check float32 slices are equal within epsilon.
func float32Equal(a, b []float32, epsilon float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

func vec(data ...float32) *tensor.RawTensor {
	return tensor.MustFromSlice(data, tensor.Shape{len(data)}, tensor.CPU)
}

// TestAddOp_Backward tests AddOp backward pass.
func TestAddOp_Backward(t *testing.T) {
	backend := cpu.New()

	a, b := vec(1, 2, 3), vec(4, 5, 6)
	op := ops.NewAddOp(a, b, backend.Add(a, b))

	inputGrads := op.Backward(vec(1, 1, 1), backend)

	// For addition: grad_a = grad_b = outputGrad
	expected := []float32{1, 1, 1}
	if !float32Equal(inputGrads[0].AsFloat32(), expected, 1e-6) {
		t.Errorf("AddOp grad_a: got %v, want %v", inputGrads[0].AsFloat32(), expected)
	}
	if !float32Equal(inputGrads[1].AsFloat32(), expected, 1e-6) {
		t.Errorf("AddOp grad_b: got %v, want %v", inputGrads[1].AsFloat32(), expected)
	}
}

// TestSubOp_Backward tests SubOp backward pass.
func TestSubOp_Backward(t *testing.T) {
	backend := cpu.New()

	a, b := vec(5, 6), vec(1, 2)
	op := ops.NewSubOp(a, b, backend.Sub(a, b))

	inputGrads := op.Backward(vec(2, 3), backend)

	if !float32Equal(inputGrads[0].AsFloat32(), []float32{2, 3}, 1e-6) {
		t.Errorf("SubOp grad_a: got %v", inputGrads[0].AsFloat32())
	}
	if !float32Equal(inputGrads[1].AsFloat32(), []float32{-2, -3}, 1e-6) {
		t.Errorf("SubOp grad_b: got %v", inputGrads[1].AsFloat32())
	}
}

// TestMulOp_Backward tests MulOp backward pass.
func TestMulOp_Backward(t *testing.T) {
	backend := cpu.New()

	a, b := vec(2, 3), vec(4, 5)
	op := ops.NewMulOp(a, b, backend.Mul(a, b))

	inputGrads := op.Backward(vec(1, 1), backend)

	// grad_a = b, grad_b = a
	if !float32Equal(inputGrads[0].AsFloat32(), []float32{4, 5}, 1e-6) {
		t.Errorf("MulOp grad_a: got %v", inputGrads[0].AsFloat32())
	}
	if !float32Equal(inputGrads[1].AsFloat32(), []float32{2, 3}, 1e-6) {
		t.Errorf("MulOp grad_b: got %v", inputGrads[1].AsFloat32())
	}
}

func TestMulScalarOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := vec(1, 2)
	op := ops.NewMulScalarOp(x, backend.MulScalar(x, 3), 3)

	grads := op.Backward(vec(1, 2), backend)
	if !float32Equal(grads[0].AsFloat32(), []float32{3, 6}, 1e-6) {
		t.Errorf("MulScalarOp grad: got %v", grads[0].AsFloat32())
	}
}

// TestSinCosOp_Backward checks d/dx sin = cos and d/dx cos = -sin.
func TestSinCosOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := vec(0, math.Pi/2, 1)
	ones := vec(1, 1, 1)

	sinGrad := ops.NewSinOp(x, backend.Sin(x)).Backward(ones, backend)[0].AsFloat32()
	cosGrad := ops.NewCosOp(x, backend.Cos(x)).Backward(ones, backend)[0].AsFloat32()

	wantSin := []float32{1, 0, float32(math.Cos(1))}
	wantCos := []float32{0, -1, float32(-math.Sin(1))}
	if !float32Equal(sinGrad, wantSin, 1e-6) {
		t.Errorf("SinOp grad: got %v, want %v", sinGrad, wantSin)
	}
	if !float32Equal(cosGrad, wantCos, 1e-6) {
		t.Errorf("CosOp grad: got %v, want %v", cosGrad, wantCos)
	}
}

func TestSumOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	op := ops.NewSumOp(x, backend.Sum(x))

	grad := op.Backward(tensor.MustFromSlice([]float64{2.5}, tensor.Shape{}, tensor.CPU), backend)[0]
	if !grad.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("SumOp grad shape: got %v", grad.Shape())
	}
	for i, v := range grad.AsFloat64() {
		if v != 2.5 {
			t.Errorf("SumOp grad[%d] = %v, want 2.5", i, v)
		}
	}
}

func TestReshapeOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := vec(1, 2, 3, 4)
	out := backend.Reshape(x, tensor.Shape{2, 2})
	op := ops.NewReshapeOp(x, out)

	grad := op.Backward(tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU), backend)[0]
	if !grad.Shape().Equal(tensor.Shape{4}) {
		t.Errorf("ReshapeOp grad shape: got %v, want [4]", grad.Shape())
	}
}

// TestNarrowCatOp_Backward checks that Narrow scatters and Cat splits gradients.
func TestNarrowCatOp_Backward(t *testing.T) {
	backend := cpu.New()

	x := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.CPU)
	col := backend.Narrow(x, 1, 1, 1)
	narrowGrad := ops.NewNarrowOp(x, col, 1, 1).Backward(
		tensor.MustFromSlice([]float32{7, 8, 9}, tensor.Shape{3, 1}, tensor.CPU), backend)[0]

	want := []float32{0, 7, 0, 8, 0, 9}
	if !float32Equal(narrowGrad.AsFloat32(), want, 0) {
		t.Errorf("NarrowOp grad: got %v, want %v", narrowGrad.AsFloat32(), want)
	}

	a := tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2, 1}, tensor.CPU)
	b := tensor.MustFromSlice([]float32{3, 4, 5, 6}, tensor.Shape{2, 2}, tensor.CPU)
	out := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	catGrads := ops.NewCatOp([]*tensor.RawTensor{a, b}, 1, out).Backward(
		tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU), backend)

	if !float32Equal(catGrads[0].Contiguous().AsFloat32(), []float32{1, 4}, 0) {
		t.Errorf("CatOp grad_a: got %v", catGrads[0].Contiguous().AsFloat32())
	}
	if !float32Equal(catGrads[1].Contiguous().AsFloat32(), []float32{2, 3, 5, 6}, 0) {
		t.Errorf("CatOp grad_b: got %v", catGrads[1].Contiguous().AsFloat32())
	}
}
