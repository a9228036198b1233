package main

import (
	"github.com/pthm-cable/biodiv/climate"
)

// ParamSpec defines a single searchable input.
type ParamSpec struct {
	Field   climate.Field
	Name    string  // camelCase field name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
}

// ParamVector holds the set of searchable inputs. Only fields the network
// consumes are searched; the rest stay at the base scenario.
type ParamVector struct {
	Specs []ParamSpec
	base  climate.Input
}

// NewParamVector creates a vector over every consumed field, starting
// from base.
func NewParamVector(base climate.Input) *ParamVector {
	pv := &ParamVector{base: base}
	for _, f := range climate.Fields() {
		if !f.Consumed() {
			continue
		}
		s := f.Spec()
		pv.Specs = append(pv.Specs, ParamSpec{
			Field:   f,
			Name:    s.Name,
			Min:     s.Min,
			Max:     s.Max,
			Default: f.Clamp(base.Get(f)),
		})
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp keeps every value inside its field's domain.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = spec.Field.Clamp(v[i])
	}
	return clamped
}

// ToInput writes clamped values over the base scenario.
func (pv *ParamVector) ToInput(values []float64) climate.Input {
	in := pv.base
	for i, v := range pv.Clamp(values) {
		in = in.With(pv.Specs[i].Field, v)
	}
	return in
}

// FromInput extracts the searched fields from in.
func (pv *ParamVector) FromInput(in climate.Input) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = in.Get(spec.Field)
	}
	return v
}
