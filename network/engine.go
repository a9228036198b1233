// Package network provides the fixed-weight biodiversity impact network:
// input normalization, five-layer forward propagation and impact levels.
package network

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/biodiv/climate"
)

// ActivationSet holds one value per node for every layer after the input.
type ActivationSet struct {
	Hidden1 [NumHidden]float64 `json:"hidden1"`
	Hidden2 [NumHidden]float64 `json:"hidden2"`
	Hidden3 [NumHidden]float64 `json:"hidden3"`
	Hidden4 [NumHidden]float64 `json:"hidden4"`
	Output  float64            `json:"output"`
}

// Hidden returns hidden layer i (0-3).
func (a *ActivationSet) Hidden(i int) [NumHidden]float64 {
	switch i {
	case 0:
		return a.Hidden1
	case 1:
		return a.Hidden2
	case 2:
		return a.Hidden3
	case 3:
		return a.Hidden4
	}
	panic(fmt.Sprintf("network: hidden layer %d out of range", i))
}

// Result is one complete propagation.
type Result struct {
	Normalized  [NumInputs]float64 `json:"normalized"`  // Input layer values
	Sums        ActivationSet      `json:"sums"`        // Pre-activation weighted sums
	Activations ActivationSet      `json:"activations"` // Post-activation values
	Score       float64            `json:"score"`       // Sigmoid output in (0, 1)
}

// Engine runs forward propagation over a fixed set of weights.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	weights *Weights
}

// NewEngine creates an engine, rejecting missing or misshapen weights.
func NewEngine(w *Weights) (*Engine, error) {
	if w == nil {
		return nil, shapeError("weights", errors.New("nil weights"))
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: w}, nil
}

// MustNewEngine is like NewEngine but panics on error.
func MustNewEngine(w *Weights) *Engine {
	e, err := NewEngine(w)
	if err != nil {
		panic(fmt.Sprintf("network: %v", err))
	}
	return e
}

var defaultEngine = MustNewEngine(DefaultWeights())

// Default returns the engine built from the hand-authored weights.
func Default() *Engine {
	return defaultEngine
}

// Propagate runs the default engine.
func Propagate(in climate.Input) (Result, error) {
	return defaultEngine.Propagate(in)
}

// Weights returns the engine's weights.
func (e *Engine) Weights() *Weights {
	return e.weights
}

// Propagate normalizes in and runs all five layers. On error the zero
// Result is returned; partial results are never exposed.
func (e *Engine) Propagate(in climate.Input) (Result, error) {
	if e == nil || e.weights == nil {
		return Result{}, shapeError("weights", errors.New("engine has no weights"))
	}
	if err := in.Validate(); err != nil {
		return Result{}, fromFieldError(err)
	}

	var res Result
	res.Normalized = Normalize(in)

	// input -> hidden1 Leaky-ReLU
	e.forward(0, res.Normalized[:], res.Sums.Hidden1[:], res.Activations.Hidden1[:])
	// hidden1 -> hidden2 ELU
	e.forward(1, res.Activations.Hidden1[:], res.Sums.Hidden2[:], res.Activations.Hidden2[:])
	// hidden2 -> hidden3 Tanh
	e.forward(2, res.Activations.Hidden2[:], res.Sums.Hidden3[:], res.Activations.Hidden3[:])
	// hidden3 -> hidden4 ReLU
	e.forward(3, res.Activations.Hidden3[:], res.Sums.Hidden4[:], res.Activations.Hidden4[:])

	// hidden4 -> output sigmoid
	var sum, out [NumOutputs]float64
	e.forward(4, res.Activations.Hidden4[:], sum[:], out[:])
	res.Sums.Output = sum[0]
	res.Activations.Output = out[0]
	res.Score = out[0]

	return res, nil
}

// PropagateValues decodes a field map and propagates it. Missing, unknown
// and non-finite fields are reported as InvalidInput.
func (e *Engine) PropagateValues(values map[string]float64) (Result, error) {
	in, err := climate.Decode(values)
	if err != nil {
		return Result{}, fromFieldError(err)
	}
	return e.Propagate(in)
}

// forward computes sums = in · W and out = act(sums) for layer i.
// The row vector product is taken as Wᵀ·in.
func (e *Engine) forward(i int, in, sums, out []float64) {
	w := e.weights.layers[i]
	act := Layers[i].Activation

	x := mat.NewVecDense(len(in), in)
	var y mat.VecDense
	y.MulVec(w.m.T(), x)

	for j := range out {
		sums[j] = y.AtVec(j)
		out[j] = act.Apply(sums[j])
	}
}
