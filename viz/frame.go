// Package viz defines the data handed to visualization layers: one Frame per
// propagation, plus the static network layout and weights.
package viz

import (
	"encoding/json"
	"fmt"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/explain"
	"github.com/pthm-cable/biodiv/network"
)

// Frame is everything a view needs to render one propagation. Values are
// final; views map them to colors and sizes but never recompute them.
// Numeric fields are nil when OK is false; Inputs is nil as well when the
// input itself was rejected.
type Frame struct {
	OK          bool                        `json:"ok"`
	Error       string                      `json:"error,omitempty"`
	Inputs      *climate.Input              `json:"inputs,omitempty"`
	Normalized  *[network.NumInputs]float64 `json:"normalized,omitempty"`
	Activations *network.ActivationSet      `json:"activations,omitempty"`
	Output      *float64                    `json:"output,omitempty"`
	Level       string                      `json:"level,omitempty"`
	Explanation []string                    `json:"explanation"`
	Summary     string                      `json:"summary,omitempty"`
}

// Builder produces frames from an engine and impact thresholds.
type Builder struct {
	Engine     *network.Engine
	Thresholds network.LevelThresholds
}

// NewBuilder returns a builder for the default engine and thresholds.
func NewBuilder() *Builder {
	return &Builder{Engine: network.Default(), Thresholds: network.DefaultThresholds()}
}

// Build propagates in and assembles the frame. On failure the returned
// frame is the Failed frame for the error, which callers may still render.
func (b *Builder) Build(in climate.Input) (Frame, network.Result, error) {
	res, err := b.Engine.Propagate(in)
	if err != nil {
		return Failed(in, err), network.Result{}, err
	}

	level := b.Thresholds.Classify(res.Score)
	normalized := res.Normalized
	acts := res.Activations
	score := res.Score

	return Frame{
		OK:          true,
		Inputs:      &in,
		Normalized:  &normalized,
		Activations: &acts,
		Output:      &score,
		Level:       level.String(),
		Explanation: explain.FromResult(in, res),
		Summary:     explain.Summary(level),
	}, res, nil
}

// Failed is the frame shown when propagation is rejected. It carries the
// error text but no activations, so nothing numerically plausible is drawn.
func Failed(in climate.Input, err error) Frame {
	f := Frame{
		OK:          false,
		Error:       err.Error(),
		Explanation: []string{ErrorMessage},
	}
	if in.Validate() == nil {
		f.Inputs = &in
	}
	return f
}

// ErrorMessage is the explanation line shown for a failed propagation.
const ErrorMessage = "Error occurred during calculation"

// JSON encodes the frame with indentation.
func (f Frame) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling frame: %w", err)
	}
	return data, nil
}
