package network

import "github.com/pthm-cable/biodiv/climate"

// Network dimensions (compile-time constants for array sizing).
const (
	NumInputs  = climate.NumConsumed // invasiveSpecies is not an input node
	NumHidden  = 6
	NumOutputs = 1
	NumLayers  = 5 // matrix multiplies
)

// LayerSpec describes one stage: a matrix multiply followed by an activation.
type LayerSpec struct {
	Name       string     // Target layer name
	Matrix     string     // Weight matrix name
	In         int        // Source width (matrix rows)
	Out        int        // Target width (matrix cols)
	Activation Activation // Element-wise nonlinearity
}

// Layers lists the pipeline stages in execution order.
var Layers = [NumLayers]LayerSpec{
	{Name: "hidden1", Matrix: "inputToHidden1", In: NumInputs, Out: NumHidden, Activation: LeakyReLU},
	{Name: "hidden2", Matrix: "hidden1ToHidden2", In: NumHidden, Out: NumHidden, Activation: ELU},
	{Name: "hidden3", Matrix: "hidden2ToHidden3", In: NumHidden, Out: NumHidden, Activation: Tanh},
	{Name: "hidden4", Matrix: "hidden3ToHidden4", In: NumHidden, Out: NumHidden, Activation: ReLU},
	{Name: "output", Matrix: "hidden4ToOutput", In: NumHidden, Out: NumOutputs, Activation: Sigmoid},
}
