package network

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// WeightMatrix is an immutable [rows, cols] weight table connecting two layers.
// Row i holds the outgoing weights of source node i.
type WeightMatrix struct {
	name string
	m    *mat.Dense
}

// newWeightMatrix copies rows into a matrix after checking its shape.
// Every entry must be finite.
func newWeightMatrix(name string, rows [][]float64, wantRows, wantCols int) (WeightMatrix, error) {
	if len(rows) != wantRows {
		return WeightMatrix{}, shapeError(name, fmt.Errorf("got %d rows, want %d", len(rows), wantRows))
	}
	data := make([]float64, 0, wantRows*wantCols)
	for i, row := range rows {
		if len(row) != wantCols {
			return WeightMatrix{}, shapeError(name, fmt.Errorf("row %d has %d columns, want %d", i, len(row), wantCols))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return WeightMatrix{}, shapeError(name, fmt.Errorf("row %d column %d is %v, want a finite weight", i, j, v))
			}
		}
		data = append(data, row...)
	}
	return WeightMatrix{name: name, m: mat.NewDense(wantRows, wantCols, data)}, nil
}

// Name returns the matrix name, e.g. "inputToHidden1".
func (w WeightMatrix) Name() string {
	return w.name
}

// Dims returns the matrix shape. A zero WeightMatrix has shape 0×0.
func (w WeightMatrix) Dims() (rows, cols int) {
	if w.m == nil {
		return 0, 0
	}
	return w.m.Dims()
}

// At returns the weight from source node i to target node j.
func (w WeightMatrix) At(i, j int) float64 {
	return w.m.At(i, j)
}

// Rows returns a copy of the matrix as nested slices.
func (w WeightMatrix) Rows() [][]float64 {
	r, c := w.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		mat.Row(out[i], i, w.m)
	}
	return out
}

// Matrices is the raw, mutable form of the five weight tables, used for
// construction and export.
type Matrices struct {
	InputToHidden1   [][]float64 `json:"inputToHidden1" yaml:"input_to_hidden1"`
	Hidden1ToHidden2 [][]float64 `json:"hidden1ToHidden2" yaml:"hidden1_to_hidden2"`
	Hidden2ToHidden3 [][]float64 `json:"hidden2ToHidden3" yaml:"hidden2_to_hidden3"`
	Hidden3ToHidden4 [][]float64 `json:"hidden3ToHidden4" yaml:"hidden3_to_hidden4"`
	Hidden4ToOutput  [][]float64 `json:"hidden4ToOutput" yaml:"hidden4_to_output"`
}

// Weights holds the five validated matrices in layer order.
type Weights struct {
	layers [NumLayers]WeightMatrix
}

// NewWeights validates and copies m. Any dimension that disagrees with the
// declared layer sizes yields a ShapeMismatch error.
func NewWeights(m Matrices) (*Weights, error) {
	raw := [NumLayers][][]float64{
		m.InputToHidden1,
		m.Hidden1ToHidden2,
		m.Hidden2ToHidden3,
		m.Hidden3ToHidden4,
		m.Hidden4ToOutput,
	}
	w := &Weights{}
	for i, spec := range Layers {
		wm, err := newWeightMatrix(spec.Matrix, raw[i], spec.In, spec.Out)
		if err != nil {
			return nil, err
		}
		w.layers[i] = wm
	}
	return w, nil
}

// Layer returns the matrix feeding layer i (0 = input→H1).
func (w *Weights) Layer(i int) WeightMatrix {
	return w.layers[i]
}

// Matrices exports copies of all five tables.
func (w *Weights) Matrices() Matrices {
	return Matrices{
		InputToHidden1:   w.layers[0].Rows(),
		Hidden1ToHidden2: w.layers[1].Rows(),
		Hidden2ToHidden3: w.layers[2].Rows(),
		Hidden3ToHidden4: w.layers[3].Rows(),
		Hidden4ToOutput:  w.layers[4].Rows(),
	}
}

// validate rechecks every shape; used by NewEngine for Weights values that
// did not come from NewWeights.
func (w *Weights) validate() error {
	for i, spec := range Layers {
		r, c := w.layers[i].Dims()
		if r != spec.In || c != spec.Out {
			return shapeError(spec.Matrix, fmt.Errorf("got %dx%d, want %dx%d", r, c, spec.In, spec.Out))
		}
	}
	return nil
}

// DefaultMatrices returns the hand-authored weights.
func DefaultMatrices() Matrices {
	return Matrices{
		// 10 inputs to first hidden layer
		InputToHidden1: [][]float64{
			{0.1, -0.2, 0.3, -0.4, 0.5, -0.6},
			{-0.1, 0.2, -0.3, 0.4, -0.5, 0.6},
			{0.2, -0.3, 0.4, -0.5, 0.6, -0.7},
			{-0.2, 0.3, -0.4, 0.5, -0.6, 0.7},
			{0.3, -0.4, 0.5, -0.6, 0.7, -0.8},
			{-0.3, 0.4, -0.5, 0.6, -0.7, 0.8},
			{0.4, -0.5, 0.6, -0.7, 0.8, -0.9},
			{-0.4, 0.5, -0.6, 0.7, -0.8, 0.9},
			{0.5, -0.6, 0.7, -0.8, 0.9, -1.0},
			{-0.5, 0.6, -0.7, 0.8, -0.9, 1.0},
		},
		Hidden1ToHidden2: [][]float64{
			{0.2, -0.3, 0.4, -0.5, 0.6, -0.7},
			{-0.2, 0.3, -0.4, 0.5, -0.6, 0.7},
			{0.3, -0.4, 0.5, -0.6, 0.7, -0.8},
			{-0.3, 0.4, -0.5, 0.6, -0.7, 0.8},
			{0.4, -0.5, 0.6, -0.7, 0.8, -0.9},
			{-0.4, 0.5, -0.6, 0.7, -0.8, 0.9},
		},
		Hidden2ToHidden3: [][]float64{
			{0.3, -0.4, 0.5, -0.6, 0.7, -0.8},
			{-0.3, 0.4, -0.5, 0.6, -0.7, 0.8},
			{0.4, -0.5, 0.6, -0.7, 0.8, -0.9},
			{-0.4, 0.5, -0.6, 0.7, -0.8, 0.9},
			{0.5, -0.6, 0.7, -0.8, 0.9, -1.0},
			{-0.5, 0.6, -0.7, 0.8, -0.9, 1.0},
		},
		Hidden3ToHidden4: [][]float64{
			{0.4, -0.5, 0.6, -0.7, 0.8, -0.9},
			{-0.4, 0.5, -0.6, 0.7, -0.8, 0.9},
			{0.5, -0.6, 0.7, -0.8, 0.9, -1.0},
			{-0.5, 0.6, -0.7, 0.8, -0.9, 1.0},
			{0.6, -0.7, 0.8, -0.9, 1.0, -1.1},
			{-0.6, 0.7, -0.8, 0.9, -1.0, 1.1},
		},
		// Fourth hidden to output
		Hidden4ToOutput: [][]float64{
			{0.5},
			{-0.6},
			{0.7},
			{-0.8},
			{0.9},
			{-1.0},
		},
	}
}

var defaultWeights = func() *Weights {
	w, err := NewWeights(DefaultMatrices())
	if err != nil {
		panic(fmt.Sprintf("network: built-in weights: %v", err))
	}
	return w
}()

// DefaultWeights returns the shared built-in weights. The value is immutable.
func DefaultWeights() *Weights {
	return defaultWeights
}
