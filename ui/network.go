package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biodiv/viz"
)

// Colors for activation and weight visualization.
var (
	ColorNodeInactive = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// NetworkView draws the layered network diagram for one frame.
type NetworkView struct {
	layers  []viz.LayerInfo
	weights [][][]float64 // weights[l][i][j]: layer l node i -> layer l+1 node j
}

// NewNetworkView prepares a view for the given layout and weights.
func NewNetworkView(layers []viz.LayerInfo, ws viz.WeightSet) *NetworkView {
	return &NetworkView{
		layers: layers,
		weights: [][][]float64{
			ws.InputToHidden1,
			ws.Hidden1ToHidden2,
			ws.Hidden2ToHidden3,
			ws.Hidden3ToHidden4,
			ws.Hidden4ToOutput,
		},
	}
}

// layerValues returns the per-node values for each diagram column, or nil
// when the frame carries no numeric data.
func layerValues(f viz.Frame) [][]float64 {
	if !f.OK || f.Normalized == nil || f.Activations == nil || f.Output == nil {
		return nil
	}
	a := f.Activations
	return [][]float64{
		f.Normalized[:],
		a.Hidden1[:],
		a.Hidden2[:],
		a.Hidden3[:],
		a.Hidden4[:],
		{*f.Output},
	}
}

// Draw renders the diagram inside the given rectangle.
func (v *NetworkView) Draw(x, y, width, height int32, f viz.Frame) {
	values := layerValues(f)

	cols := int32(len(v.layers))
	colWidth := width / cols
	nodeRadius := float32(9)
	top := float32(y) + 40
	usable := float32(height) - 60

	// Node positions per column, vertically centered
	pos := make([][]rl.Vector2, len(v.layers))
	for l, layer := range v.layers {
		cx := float32(x) + float32(colWidth)*(float32(l)+0.5)
		spacing := usable / float32(layer.Nodes)
		pos[l] = make([]rl.Vector2, layer.Nodes)
		for i := range pos[l] {
			pos[l][i] = rl.Vector2{X: cx, Y: top + spacing*(float32(i)+0.5)}
		}

		label := layer.Label
		lw := rl.MeasureText(label, 12)
		rl.DrawText(label, int32(cx)-lw/2, y+12, 12, HexColor(layer.Color))
	}

	// Edges first so nodes sit on top
	for l, m := range v.weights {
		if l+1 >= len(pos) {
			break
		}
		for i, row := range m {
			for j, w := range row {
				if i < len(pos[l]) && j < len(pos[l+1]) {
					drawEdge(pos[l][i], pos[l+1][j], float32(w))
				}
			}
		}
	}

	for l, layer := range v.layers {
		ring := HexColor(layer.Color)
		radius := nodeRadius
		if l == len(v.layers)-1 {
			radius += 4
		}
		for i, p := range pos[l] {
			if values == nil {
				drawNode(p, radius, ColorNodeInactive, ring)
				continue
			}
			drawNode(p, radius, activationColor(float32(values[l][i])), ring)
		}

		// Input labels on the left, output value on the right
		if l == 0 {
			for i, p := range pos[l] {
				if i >= len(layer.NodeLabels) {
					break
				}
				text := layer.NodeLabels[i]
				tw := rl.MeasureText(text, 10)
				rl.DrawText(text, int32(p.X-radius)-tw-6, int32(p.Y)-5, 10, ColorLabelDim)
			}
		}
		if l == len(v.layers)-1 && values != nil {
			p := pos[l][0]
			rl.DrawText(fmt.Sprintf("%.4f", values[l][0]), int32(p.X+radius)+6, int32(p.Y)-6, 12, rl.RayWhite)
		}
	}

	if values == nil {
		text := "No network data"
		if f.Error != "" {
			text = f.Error
		}
		rl.DrawText(text, x+10, y+height-20, 14, ColorLabelDim)
	}
}

// drawNode renders a single node with its layer ring.
func drawNode(pos rl.Vector2, radius float32, fill, ring rl.Color) {
	rl.DrawCircleV(pos, radius, fill)
	rl.DrawCircleLinesV(pos, radius, ring)
}

// drawEdge renders a connection between nodes, colored by sign with
// thickness and alpha by magnitude.
func drawEdge(from, to rl.Vector2, weight float32) {
	thickness := absFloat(weight) * 1.5
	if thickness > 3 {
		thickness = 3
	}
	if thickness < 0.5 {
		thickness = 0.5
	}

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	alpha := uint8(40 + int(absFloat(weight)*60))
	if alpha > 160 {
		alpha = 160
	}
	color.A = alpha

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float32) rl.Color {
	t := absFloat(activation)
	if t > 1 {
		t = 1
	}
	if activation > 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}

func absFloat(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
