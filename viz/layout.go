package viz

import (
	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

// LayerInfo describes one column of the network diagram.
type LayerInfo struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Nodes      int      `json:"nodes"`
	Color      string   `json:"color"` // #RRGGBB
	Activation string   `json:"activation,omitempty"`
	NodeLabels []string `json:"nodeLabels,omitempty"`
}

// Layout returns the six diagram columns, input first.
func Layout() []LayerInfo {
	inputLabels := make([]string, network.NumInputs)
	for i := range inputLabels {
		inputLabels[i] = climate.Field(i).Spec().Label
	}

	colors := [network.NumLayers]string{"#2196F3", "#9C27B0", "#FFC107", "#00BCD4", "#FF9800"}
	labels := [network.NumLayers]string{"Hidden Layer 1", "Hidden Layer 2", "Hidden Layer 3", "Hidden Layer 4", "Output Layer"}

	layers := []LayerInfo{{
		ID:         "input",
		Label:      "Input Layer",
		Nodes:      network.NumInputs,
		Color:      "#4CAF50",
		NodeLabels: inputLabels,
	}}
	for i, spec := range network.Layers {
		layers = append(layers, LayerInfo{
			ID:         spec.Name,
			Label:      labels[i],
			Nodes:      spec.Out,
			Color:      colors[i],
			Activation: spec.Activation.String(),
		})
	}
	return layers
}

// WeightSet is the exported form of the engine's five matrices.
type WeightSet = network.Matrices

// Weights exports copies of the engine's matrices for edge rendering.
func Weights(e *network.Engine) WeightSet {
	return e.Weights().Matrices()
}
