package network

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultWeightShapes(t *testing.T) {
	w := DefaultWeights()
	for i, spec := range Layers {
		r, c := w.Layer(i).Dims()
		if r != spec.In || c != spec.Out {
			t.Errorf("%s: got %dx%d, want %dx%d", spec.Matrix, r, c, spec.In, spec.Out)
		}
		if w.Layer(i).Name() != spec.Matrix {
			t.Errorf("layer %d name = %s, want %s", i, w.Layer(i).Name(), spec.Matrix)
		}
	}

	if got := w.Layer(0).At(9, 5); got != 1.0 {
		t.Errorf("inputToHidden1[9][5] = %v, want 1.0", got)
	}
	if got := w.Layer(4).At(5, 0); got != -1.0 {
		t.Errorf("hidden4ToOutput[5][0] = %v, want -1.0", got)
	}
}

func TestWeightsExportIsCopy(t *testing.T) {
	w := DefaultWeights()
	m := w.Matrices()
	m.InputToHidden1[0][0] = 42

	if w.Layer(0).At(0, 0) != 0.1 {
		t.Error("mutating exported matrices changed the weights")
	}
}

func TestNewWeightsCopiesInput(t *testing.T) {
	m := DefaultMatrices()
	w, err := NewWeights(m)
	if err != nil {
		t.Fatalf("NewWeights: %v", err)
	}
	m.Hidden3ToHidden4[2][2] = 99

	if w.Layer(3).At(2, 2) != 0.7 {
		t.Error("mutating source matrices changed the weights")
	}
}

func TestNewWeightsShapeMismatch(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Matrices)
		wantMatrix string
	}{
		{"eleven input rows", func(m *Matrices) {
			m.InputToHidden1 = append(m.InputToHidden1, []float64{0, 0, 0, 0, 0, 0})
		}, "inputToHidden1"},
		{"short row", func(m *Matrices) {
			m.Hidden1ToHidden2[3] = m.Hidden1ToHidden2[3][:5]
		}, "hidden1ToHidden2"},
		{"missing matrix", func(m *Matrices) {
			m.Hidden2ToHidden3 = nil
		}, "hidden2ToHidden3"},
		{"wide output", func(m *Matrices) {
			m.Hidden4ToOutput[0] = []float64{0.5, 0.5}
		}, "hidden4ToOutput"},
		{"nan weight", func(m *Matrices) {
			m.Hidden4ToOutput[1] = []float64{math.NaN()}
		}, "hidden4ToOutput"},
		{"infinite weight", func(m *Matrices) {
			m.InputToHidden1[2] = []float64{0.1, math.Inf(1), 0.3, -0.4, 0.5, -0.6}
		}, "inputToHidden1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMatrices()
			tt.mutate(&m)

			_, err := NewWeights(m)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("error = %v, want ErrShapeMismatch", err)
			}
			var pe *PropagationError
			if !errors.As(err, &pe) || pe.Matrix != tt.wantMatrix {
				t.Errorf("matrix = %v, want %s", pe, tt.wantMatrix)
			}
		})
	}
}
