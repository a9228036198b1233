// Package explain turns propagation results into human-readable observations.
package explain

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

// Thresholds used by the rules.
const (
	StrongActivation = 0.1 // |activation| above this is reported
	HighCO2          = 600 // ppm; strictly above triggers the CO2 note
)

// Fixed observations.
const (
	StressMessage = "Increased temperature with decreased precipitation creates stress conditions"
	CO2Message    = "High CO2 levels contribute to ocean acidification"
)

// Explain lists observations for one propagation, in rule order:
// strong first-layer nodes, strong second-layer nodes, the
// temperature/precipitation stress note, then the CO2 note.
// Only hidden layers 1 and 2 are inspected. The result is never nil.
func Explain(in climate.Input, h1, h2 [network.NumHidden]float64) []string {
	lines := []string{}

	lines = appendStrong(lines, h1)
	// Node numbers restart at 1 for the second layer
	lines = appendStrong(lines, h2)

	if in.TemperatureChange > 0 && in.PrecipitationChange < 0 {
		lines = append(lines, StressMessage)
	}
	if in.CO2Levels > HighCO2 {
		lines = append(lines, CO2Message)
	}

	return lines
}

// FromResult explains a completed propagation.
func FromResult(in climate.Input, res network.Result) []string {
	return Explain(in, res.Activations.Hidden1, res.Activations.Hidden2)
}

// Join renders the observations as newline-separated text.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// Summary describes the impact level in two sentences.
func Summary(level network.Level) string {
	name := level.String()
	return fmt.Sprintf(
		"The predicted biodiversity impact level is %s. This indicates that the current climate conditions have %s potential to affect biodiversity.",
		name, strings.ToLower(name))
}

func appendStrong(lines []string, layer [network.NumHidden]float64) []string {
	for i, v := range layer {
		if math.Abs(v) > StrongActivation {
			lines = append(lines, fmt.Sprintf("Hidden node %d has strong activation (%s)", i+1, fixed2(v)))
		}
	}
	return lines
}

var hundred = big.NewFloat(100)

// fixed2 formats v with two decimals, rounding the exact binary value
// half away from zero. %.2f rounds exact ties to even, which would print
// 0.125 as "0.12".
func fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	// 200 bits holds v*100 exactly
	x := new(big.Float).SetPrec(200).SetFloat64(v)
	x.Mul(x, hundred)
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil) // truncates; x is non-negative

	digits := n.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
