package network

import "github.com/pthm-cable/biodiv/climate"

// Scaling is an affine map from a field's domain into the input layer:
// normalized = (raw - Offset) / Scale.
type Scaling struct {
	Offset float64
	Scale  float64
}

// Apply maps a raw value into the input layer.
func (s Scaling) Apply(raw float64) float64 {
	return (raw - s.Offset) / s.Scale
}

// Invert maps a normalized value back to the field's domain.
func (s Scaling) Invert(normalized float64) float64 {
	return normalized*s.Scale + s.Offset
}

// scalings is indexed by climate.Field for the consumed prefix.
var scalings = [NumInputs]Scaling{
	climate.TemperatureChange:    {Offset: -2, Scale: 6},
	climate.PrecipitationChange:  {Offset: -30, Scale: 60},
	climate.CO2Levels:            {Offset: 400, Scale: 400},
	climate.OceanAcidification:   {Offset: -0.5, Scale: 1.5},
	climate.SeaLevelRise:         {Offset: -0.5, Scale: 1.5},
	climate.ForestCover:          {Offset: 50, Scale: 50},
	climate.AgriculturalLand:     {Offset: 25, Scale: 75},
	climate.UrbanExpansion:       {Offset: 25, Scale: 75},
	climate.PollutionIndex:       {Offset: -0.5, Scale: 1.5},
	climate.HabitatFragmentation: {Offset: -0.5, Scale: 1.5},
}

// ScalingFor returns the normalization constants for f. The second result
// is false for fields the input layer does not read.
func ScalingFor(f climate.Field) (Scaling, bool) {
	if !f.Consumed() {
		return Scaling{}, false
	}
	return scalings[f], true
}

// Normalize maps the consumed fields of in into input-layer order.
// InvasiveSpecies is ignored.
func Normalize(in climate.Input) [NumInputs]float64 {
	var out [NumInputs]float64
	for i := range out {
		out[i] = scalings[i].Apply(in.Get(climate.Field(i)))
	}
	return out
}

// Denormalize inverts Normalize, reconstructing the consumed field values.
func Denormalize(x [NumInputs]float64) [NumInputs]float64 {
	var out [NumInputs]float64
	for i := range out {
		out[i] = scalings[i].Invert(x[i])
	}
	return out
}
