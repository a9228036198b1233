package climate

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Input is one snapshot of all climate variables.
// It is a plain value; copies are independent.
type Input struct {
	TemperatureChange    float64 `json:"temperatureChange" yaml:"temperatureChange" csv:"temperature_change"`
	PrecipitationChange  float64 `json:"precipitationChange" yaml:"precipitationChange" csv:"precipitation_change"`
	CO2Levels            float64 `json:"co2Levels" yaml:"co2Levels" csv:"co2_levels"`
	OceanAcidification   float64 `json:"oceanAcidification" yaml:"oceanAcidification" csv:"ocean_acidification"`
	SeaLevelRise         float64 `json:"seaLevelRise" yaml:"seaLevelRise" csv:"sea_level_rise"`
	ForestCover          float64 `json:"forestCover" yaml:"forestCover" csv:"forest_cover"`
	AgriculturalLand     float64 `json:"agriculturalLand" yaml:"agriculturalLand" csv:"agricultural_land"`
	UrbanExpansion       float64 `json:"urbanExpansion" yaml:"urbanExpansion" csv:"urban_expansion"`
	PollutionIndex       float64 `json:"pollutionIndex" yaml:"pollutionIndex" csv:"pollution_index"`
	HabitatFragmentation float64 `json:"habitatFragmentation" yaml:"habitatFragmentation" csv:"habitat_fragmentation"`
	InvasiveSpecies      float64 `json:"invasiveSpecies" yaml:"invasiveSpecies" csv:"invasive_species"`
}

// FieldError reports a field that is missing, unknown or non-finite.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// Baseline returns the input with every field at its default.
func Baseline() Input {
	var in Input
	for _, f := range Fields() {
		in = in.With(f, f.Spec().Default)
	}
	return in
}

// ptr returns the address of the struct field backing f.
func (in *Input) ptr(f Field) *float64 {
	switch f {
	case TemperatureChange:
		return &in.TemperatureChange
	case PrecipitationChange:
		return &in.PrecipitationChange
	case CO2Levels:
		return &in.CO2Levels
	case OceanAcidification:
		return &in.OceanAcidification
	case SeaLevelRise:
		return &in.SeaLevelRise
	case ForestCover:
		return &in.ForestCover
	case AgriculturalLand:
		return &in.AgriculturalLand
	case UrbanExpansion:
		return &in.UrbanExpansion
	case PollutionIndex:
		return &in.PollutionIndex
	case HabitatFragmentation:
		return &in.HabitatFragmentation
	case InvasiveSpecies:
		return &in.InvasiveSpecies
	}
	panic(fmt.Sprintf("climate: invalid field %d", int(f)))
}

// Get returns the value of f.
func (in Input) Get(f Field) float64 {
	return *in.ptr(f)
}

// With returns a copy of in with f set to v.
func (in Input) With(f Field, v float64) Input {
	*in.ptr(f) = v
	return in
}

// Values returns all fields in schema order.
func (in Input) Values() [NumFields]float64 {
	var out [NumFields]float64
	for i := range out {
		out[i] = in.Get(Field(i))
	}
	return out
}

// Map returns the input keyed by camelCase field name.
func (in Input) Map() map[string]float64 {
	m := make(map[string]float64, NumFields)
	for _, f := range Fields() {
		m[f.String()] = in.Get(f)
	}
	return m
}

// Clamp returns a copy of in with every field restricted to its domain.
// Non-finite values are left untouched so validation can still reject them.
func Clamp(in Input) Input {
	for _, f := range Fields() {
		v := in.Get(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		in = in.With(f, f.Clamp(v))
	}
	return in
}

// Validate returns a *FieldError for the first non-finite field.
func (in Input) Validate() error {
	for _, f := range Fields() {
		v := in.Get(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &FieldError{Field: f.String(), Reason: "non-finite value"}
		}
	}
	return nil
}

// Decode builds an Input from a field map. Every field must be present
// and finite; unknown keys are rejected.
func Decode(values map[string]float64) (Input, error) {
	// Unknown keys first, in sorted order so errors are stable
	for _, k := range slices.Sorted(maps.Keys(values)) {
		if _, ok := Lookup(k); !ok {
			return Input{}, &FieldError{Field: k, Reason: "unknown field"}
		}
	}

	var in Input
	for _, f := range Fields() {
		v, ok := values[f.String()]
		if !ok {
			return Input{}, &FieldError{Field: f.String(), Reason: "missing"}
		}
		in = in.With(f, v)
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Overlay returns base with each named value from values applied.
// Unlike Decode, absent fields keep their base value.
func Overlay(base Input, values map[string]float64) (Input, error) {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		f, ok := Lookup(name)
		if !ok {
			return Input{}, &FieldError{Field: name, Reason: "unknown field"}
		}
		base = base.With(f, values[name])
	}
	return base, nil
}
