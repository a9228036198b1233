package viz

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

// The helpers below are display analytics only. They read a finished
// Result and never feed back into propagation or explanation.

// Contribution is one input's share of the first hidden layer's response.
type Contribution struct {
	Field climate.Field
	Name  string
	Value float64 // 0-100
}

// InputContributions scores each input as Σ_j |w_ij · x_i · h1_j|, scaled
// by 100 and capped at 100, using normalized input values.
func InputContributions(w *network.Weights, res network.Result) []Contribution {
	m := w.Layer(0)
	h1 := res.Activations.Hidden1[:]
	terms := make([]float64, network.NumHidden)

	out := make([]Contribution, network.NumInputs)
	for i := range out {
		x := res.Normalized[i]
		for j := range terms {
			terms[j] = math.Abs(m.At(i, j) * x * h1[j])
		}
		v := floats.Sum(terms) * 100
		if v > 100 {
			v = 100
		}
		f := climate.Field(i)
		out[i] = Contribution{Field: f, Name: f.String(), Value: v}
	}
	return out
}

// WeightedSums returns the pre-activation sum of every node in layer i
// (0 = hidden1 ... 4 = output), recomputed from the previous layer's
// values with gonum's dot product. It matches Result.Sums up to rounding.
func WeightedSums(w *network.Weights, res network.Result, i int) []float64 {
	var prev []float64
	switch i {
	case 0:
		prev = res.Normalized[:]
	case 1:
		prev = res.Activations.Hidden1[:]
	case 2:
		prev = res.Activations.Hidden2[:]
	case 3:
		prev = res.Activations.Hidden3[:]
	case 4:
		prev = res.Activations.Hidden4[:]
	default:
		return nil
	}

	m := w.Layer(i)
	rows, cols := m.Dims()
	col := make([]float64, rows)
	sums := make([]float64, cols)
	for j := range sums {
		for r := range col {
			col[r] = m.At(r, j)
		}
		sums[j] = floats.Dot(prev, col)
	}
	return sums
}

// EdgeSignal is the value carried along the edge from node i to node j of
// layer l: the source value times the weight. Views use it for stroke width.
func EdgeSignal(w *network.Weights, res network.Result, l, i, j int) float64 {
	var src float64
	switch l {
	case 0:
		src = res.Normalized[i]
	case 1, 2, 3, 4:
		h := res.Activations.Hidden(l - 1)
		src = h[i]
	}
	return src * w.Layer(l).At(i, j)
}

// MaxAbs returns the largest magnitude in v, or 0 for an empty slice.
func MaxAbs(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(v)), math.Abs(floats.Min(v)))
}
