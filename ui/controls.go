package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/viz"
)

// ControlsPanel renders the left-side input sliders and preset buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	presets  []climate.Preset
}

// NewControlsPanel creates a controls panel offering the given presets.
func NewControlsPanel(x, y, width int32, presets []climate.Preset) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		presets:  presets,
	}
}

// Draw renders the panel and applies any edits to s. It returns the preset
// the user picked this frame, if any, so the caller can log it.
func (c *ControlsPanel) Draw(s *viz.Session, height int32) (picked string, err error) {
	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + padding)
	y := c.renderer.DrawSectionHeader(c.x+padding, c.y+padding, "Climate Inputs")
	sliderWidth := float32(c.width - padding*2 - 70)

	in := s.Input()
	for _, f := range climate.Fields() {
		spec := f.Spec()
		label := fmt.Sprintf("%s (%s)", spec.Label, spec.Unit)
		if !f.Consumed() {
			label += " - not used"
		}
		rl.DrawText(label, int32(x), y, r.Theme.FontSize-2, r.Theme.LabelColor)
		y += 14

		value := float32(in.Get(f))
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: sliderWidth, Height: 16},
			"", "",
			value, float32(spec.Min), float32(spec.Max),
		)
		rl.DrawText(formatValue(in.Get(f)), int32(x+sliderWidth)+8, y+1, r.Theme.FontSize-2, r.Theme.ValueColor)
		if next != value {
			s.Set(f, float64(next))
		}
		y += 24
	}

	y += 6
	y = r.DrawSectionHeader(c.x+padding, y, "Presets")
	buttonWidth := float32(c.width - padding*2)
	for i, p := range c.presets {
		text := p.Name
		if i < 9 {
			text = fmt.Sprintf("%d. %s", i+1, p.Name)
		}
		if p.Name == s.Preset() {
			text = "> " + text
		}
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: buttonWidth, Height: 24}, text) {
			if err := s.Apply(p); err != nil {
				return p.Name, err
			}
			picked = p.Name
		}
		y += 30
	}

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: buttonWidth, Height: 24}, "Reset [R]") {
		s.Reset()
	}
	return picked, nil
}

// PresetAt returns the preset bound to number key n (1-based).
func (c *ControlsPanel) PresetAt(n int) (climate.Preset, bool) {
	if n < 1 || n > len(c.presets) {
		return climate.Preset{}, false
	}
	return c.presets[n-1], true
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
