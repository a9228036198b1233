package network

import (
	"math"
	"testing"

	"github.com/pthm-cable/biodiv/climate"
)

func TestNormalizeBaseline(t *testing.T) {
	got := Normalize(climate.Baseline())
	want := [NumInputs]float64{
		1.0 / 3, 0.5, 0, 1.0 / 3, 1.0 / 3, 1, 1.0 / 3, -1.0 / 3, 1.0 / 3, 1.0 / 3,
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Errorf("normalized[%d] (%s) = %v, want %v", i, climate.Field(i), got[i], want[i])
		}
	}
}

func TestNormalizeDomainEnds(t *testing.T) {
	tests := []struct {
		field climate.Field
		raw   float64
		want  float64
	}{
		{climate.TemperatureChange, -2, 0},
		{climate.TemperatureChange, 4, 1},
		{climate.PrecipitationChange, 30, 1},
		{climate.CO2Levels, 400, 0},
		{climate.CO2Levels, 800, 1},
		{climate.OceanAcidification, 1.0, 1},
		{climate.ForestCover, 0, -1},
		{climate.AgriculturalLand, 100, 1},
		{climate.UrbanExpansion, 0, -1.0 / 3},
	}

	for _, tt := range tests {
		s, ok := ScalingFor(tt.field)
		if !ok {
			t.Fatalf("no scaling for %s", tt.field)
		}
		if got := s.Apply(tt.raw); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("%s(%v) = %v, want %v", tt.field, tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	in := climate.Input{
		TemperatureChange:    3.14159,
		PrecipitationChange:  -17.25,
		CO2Levels:            612.5,
		OceanAcidification:   0.333,
		SeaLevelRise:         -0.42,
		ForestCover:          12.5,
		AgriculturalLand:     87.1,
		UrbanExpansion:       66.6,
		PollutionIndex:       0.999,
		HabitatFragmentation: -0.1,
	}

	back := Denormalize(Normalize(in))
	for i := range back {
		raw := in.Get(climate.Field(i))
		if math.Abs(back[i]-raw) > 1e-12*math.Max(1, math.Abs(raw)) {
			t.Errorf("%s: round trip %v -> %v", climate.Field(i), raw, back[i])
		}
	}
}

func TestScalingForInvasiveSpecies(t *testing.T) {
	if _, ok := ScalingFor(climate.InvasiveSpecies); ok {
		t.Error("invasiveSpecies should have no input-layer scaling")
	}
}
