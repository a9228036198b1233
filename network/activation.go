package network

import "math"

// Activation selects an element-wise nonlinearity.
type Activation int

const (
	LeakyReLU Activation = iota
	ELU
	Tanh
	ReLU
	Sigmoid
)

// LeakySlope is the negative-side slope of LeakyReLU.
const LeakySlope = 0.1

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return LeakySlope * x
	case ELU:
		if x > 0 {
			return x
		}
		return math.Expm1(x)
	case Tanh:
		return math.Tanh(x)
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	default:
		return x
	}
}

// String returns the activation's display name.
func (a Activation) String() string {
	switch a {
	case LeakyReLU:
		return "LeakyReLU"
	case ELU:
		return "ELU"
	case Tanh:
		return "Tanh"
	case ReLU:
		return "ReLU"
	case Sigmoid:
		return "Sigmoid"
	default:
		return "Linear"
	}
}
