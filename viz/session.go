package viz

import (
	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

// Session holds the scenario a view is editing. Edits only mark the
// session stale; the frame is rebuilt on the next call to Frame.
type Session struct {
	builder *Builder
	base    climate.Input
	input   climate.Input
	preset  string

	frame    Frame
	result   network.Result
	err      error
	stale    bool
	rebuilds int
}

// NewSession starts a session at base.
func NewSession(b *Builder, base climate.Input) *Session {
	return &Session{builder: b, base: base, input: base, stale: true}
}

// Input returns the scenario being edited.
func (s *Session) Input() climate.Input {
	return s.input
}

// Preset returns the name of the last applied preset, or "" after a manual
// edit or reset.
func (s *Session) Preset() string {
	return s.preset
}

// Set changes one field, clamped to its domain. It reports whether the
// value changed.
func (s *Session) Set(f climate.Field, v float64) bool {
	v = f.Clamp(v)
	if s.input.Get(f) == v {
		return false
	}
	s.input = s.input.With(f, v)
	s.preset = ""
	s.stale = true
	return true
}

// Apply replaces the scenario with p overlaid on the baseline.
func (s *Session) Apply(p climate.Preset) error {
	in, err := p.Apply(climate.Baseline())
	if err != nil {
		return err
	}
	s.input = in
	s.preset = p.Name
	s.stale = true
	return nil
}

// Reset returns to the session's starting scenario.
func (s *Session) Reset() {
	s.input = s.base
	s.preset = ""
	s.stale = true
}

// Frame returns the frame for the current scenario, rebuilding it only if
// the scenario changed since the last call.
func (s *Session) Frame() (Frame, network.Result, error) {
	if s.stale {
		s.frame, s.result, s.err = s.builder.Build(s.input)
		s.stale = false
		s.rebuilds++
	}
	return s.frame, s.result, s.err
}

// Rebuilds returns how many times a frame has been built.
func (s *Session) Rebuilds() int {
	return s.rebuilds
}
