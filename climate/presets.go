package climate

import (
	"fmt"
	"maps"
)

// Preset is a named scenario. Values overlay the baseline; fields not
// listed keep their default.
type Preset struct {
	Name   string
	Values map[string]float64
}

// builtinPresets are the scenarios offered by the input panel.
var builtinPresets = []Preset{
	{Name: "Current Trend", Values: map[string]float64{
		"temperatureChange":   1.5,
		"precipitationChange": 0,
		"co2Levels":           450,
	}},
	{Name: "Mitigation Scenario", Values: map[string]float64{
		"temperatureChange":   0.5,
		"precipitationChange": 5,
		"co2Levels":           420,
	}},
	{Name: "Worst Case", Values: map[string]float64{
		"temperatureChange":   4,
		"precipitationChange": -20,
		"co2Levels":           800,
	}},
}

// Presets returns copies of the built-in scenarios in display order.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	for i, p := range builtinPresets {
		out[i] = p.clone()
	}
	return out
}

// PresetByName finds a built-in scenario.
func PresetByName(name string) (Preset, bool) {
	for _, p := range builtinPresets {
		if p.Name == name {
			return p.clone(), true
		}
	}
	return Preset{}, false
}

func (p Preset) clone() Preset {
	return Preset{Name: p.Name, Values: maps.Clone(p.Values)}
}

// Apply overlays the preset onto base and clamps the result.
func (p Preset) Apply(base Input) (Input, error) {
	in, err := Overlay(base, p.Values)
	if err != nil {
		return Input{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return Clamp(in), nil
}

// MergePresets returns base with extra appended; an entry in extra whose
// name matches a base preset replaces it in place.
func MergePresets(base, extra []Preset) []Preset {
	out := make([]Preset, len(base), len(base)+len(extra))
	copy(out, base)
	for _, p := range extra {
		replaced := false
		for i := range out {
			if out[i].Name == p.Name {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}
