package ui

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biodiv/config"
	"github.com/pthm-cable/biodiv/network"
	"github.com/pthm-cable/biodiv/report"
	"github.com/pthm-cable/biodiv/viz"
)

const (
	controlsWidth = 340
	impactWidth   = 360
)

// Viewer is the interactive window. It owns no numeric state of its own:
// every frame is pulled from the session, which rebuilds only after edits.
type Viewer struct {
	cfg      *config.Config
	session  *viz.Session
	output   *report.OutputManager
	renderer *Renderer
	controls *ControlsPanel
	network  *NetworkView
	weights  *network.Weights

	lastErr string
	saved   int
}

// NewViewer creates a viewer over session. output may be nil.
func NewViewer(cfg *config.Config, session *viz.Session, output *report.OutputManager) *Viewer {
	engine := cfg.Derived.Engine
	return &Viewer{
		cfg:      cfg,
		session:  session,
		output:   output,
		renderer: NewRenderer(),
		controls: NewControlsPanel(10, 10, controlsWidth, cfg.Derived.Presets),
		network:  NewNetworkView(viz.Layout(), viz.Weights(engine)),
		weights:  engine.Weights(),
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height), "Biodiversity Impact Network")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.cfg.Screen.TargetFPS))

	for !rl.WindowShouldClose() {
		v.handleKeys()

		rl.BeginDrawing()
		rl.ClearBackground(v.renderer.Theme.Background)
		v.draw()
		rl.EndDrawing()
	}
}

func (v *Viewer) handleKeys() {
	if rl.IsKeyPressed(rl.KeyR) {
		v.session.Reset()
		slog.Info("scenario reset")
	}
	if rl.IsKeyPressed(rl.KeyS) {
		v.save()
	}
	for n := 1; n <= 9; n++ {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(n-1)) {
			if p, ok := v.controls.PresetAt(n); ok {
				v.applyPreset(p.Name, v.session.Apply(p))
			}
		}
	}
}

func (v *Viewer) applyPreset(name string, err error) {
	if err != nil {
		slog.Error("applying preset", "preset", name, "error", err)
		return
	}
	slog.Info("preset applied", "preset", name)
}

func (v *Viewer) draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	picked, err := v.controls.Draw(v.session, screenH-20)
	if picked != "" || err != nil {
		v.applyPreset(picked, err)
	}

	frame, res, err := v.session.Frame()
	v.logFailure(err)

	netX := int32(controlsWidth + 20)
	netW := screenW - netX - impactWidth - 20
	v.renderer.DrawPanel(netX, 10, netW, screenH-20)
	v.network.Draw(netX+60, 10, netW-70, screenH-20, frame)

	v.drawImpact(screenW-impactWidth-10, 10, impactWidth, screenH-20, frame, res)
}

// logFailure logs each distinct propagation error once.
func (v *Viewer) logFailure(err error) {
	if err == nil {
		v.lastErr = ""
		return
	}
	if err.Error() == v.lastErr {
		return
	}
	v.lastErr = err.Error()
	attrs := []any{"error", err}
	var pe *network.PropagationError
	if errors.As(err, &pe) && pe.Field != "" {
		attrs = append(attrs, "field", pe.Field)
	}
	slog.Error("propagation failed", attrs...)
}

func (v *Viewer) drawImpact(x, y, width, height int32, f viz.Frame, res network.Result) {
	r := v.renderer
	padding := r.Theme.Padding
	r.DrawPanel(x, y, width, height)

	cx := x + padding
	inner := width - padding*2
	cy := r.DrawSectionHeader(cx, y+padding, "Impact Assessment")

	if !f.OK {
		cy = r.DrawWrapped(cx, cy, f.Error, inner, r.Theme.ErrorColor)
	} else {
		rl.DrawRectangle(cx, cy, inner, 36, r.Theme.LevelColor(f.Level))
		rl.DrawText(fmt.Sprintf("%s  %.4f", f.Level, *f.Output), cx+10, cy+9, 20, rl.Black)
		cy += 46
		cy = r.DrawWrapped(cx, cy, f.Summary, inner, r.Theme.LabelColor)
	}
	cy += 8

	cy = r.DrawSectionHeader(cx, cy, "Explanation")
	for _, line := range f.Explanation {
		cy = r.DrawWrapped(cx, cy, line, inner, r.Theme.ValueColor)
		cy += 2
	}
	cy += 8

	if f.OK {
		cy = r.DrawSectionHeader(cx, cy, "Input Contributions")
		for _, c := range viz.InputContributions(v.weights, res) {
			cy = r.DrawBar(cx, cy, c.Field.Spec().Label, float32(c.Value), 100, inner)
		}
		cy += 8

		cy = r.DrawSectionHeader(cx, cy, "Output Layer Input")
		sums := viz.WeightedSums(v.weights, res, network.NumLayers-1)
		r.DrawCenteredBar(cx, cy, "Weighted sum", float32(sums[0]), 10, inner)
	}

	hint := "[1-9] presets  [R] reset"
	if v.output != nil {
		hint += "  [S] save"
	}
	rl.DrawText(hint, cx, y+height-22, 12, r.Theme.DimColor)
	if v.saved > 0 {
		rl.DrawText(fmt.Sprintf("saved %d", v.saved), cx+inner-60, y+height-22, 12, r.Theme.DimColor)
	}
}

// save writes the current frame and a run record when output is enabled.
func (v *Viewer) save() {
	if v.output == nil {
		return
	}
	frame, _, _ := v.session.Frame()
	name := v.session.Preset()
	if name == "" {
		name = "manual"
	}
	if err := v.output.WriteFrame(frame); err != nil {
		slog.Error("saving frame", "error", err)
		return
	}
	if err := v.output.WriteRun(report.NewRunRecord(name, v.session.Input(), frame)); err != nil {
		slog.Error("saving run", "error", err)
		return
	}
	v.saved++
	slog.Info("frame saved", "scenario", name, "dir", v.output.Dir())
}
