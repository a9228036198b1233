package climate

import (
	"errors"
	"math"
	"testing"
)

func TestBaselineDefaults(t *testing.T) {
	in := Baseline()

	if in.CO2Levels != 400 {
		t.Errorf("co2Levels = %v, want 400", in.CO2Levels)
	}
	if in.ForestCover != 100 {
		t.Errorf("forestCover = %v, want 100", in.ForestCover)
	}
	if in.AgriculturalLand != 50 {
		t.Errorf("agriculturalLand = %v, want 50", in.AgriculturalLand)
	}
	if in.TemperatureChange != 0 || in.InvasiveSpecies != 0 {
		t.Errorf("unexpected non-zero default: %+v", in)
	}
}

func TestFieldOrder(t *testing.T) {
	want := []string{
		"temperatureChange", "precipitationChange", "co2Levels",
		"oceanAcidification", "seaLevelRise", "forestCover",
		"agriculturalLand", "urbanExpansion", "pollutionIndex",
		"habitatFragmentation", "invasiveSpecies",
	}
	fields := Fields()
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, f := range fields {
		if f.String() != want[i] {
			t.Errorf("field %d = %s, want %s", i, f, want[i])
		}
	}
	if InvasiveSpecies.Consumed() {
		t.Error("invasiveSpecies should not be consumed by the input layer")
	}
	if !HabitatFragmentation.Consumed() {
		t.Error("habitatFragmentation should be consumed by the input layer")
	}
}

func TestGetWith(t *testing.T) {
	in := Baseline()
	out := in.With(SeaLevelRise, 0.7)

	if out.Get(SeaLevelRise) != 0.7 {
		t.Errorf("SeaLevelRise = %v, want 0.7", out.Get(SeaLevelRise))
	}
	if in.SeaLevelRise != 0 {
		t.Error("With modified the receiver")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value float64
		want  float64
	}{
		{"below min", TemperatureChange, -5, -2},
		{"above max", TemperatureChange, 9, 4},
		{"inside", PrecipitationChange, 12, 12},
		{"co2 below", CO2Levels, 100, 400},
		{"co2 above", CO2Levels, 1200, 800},
		{"forest above", ForestCover, 150, 100},
		{"invasive below", InvasiveSpecies, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(Baseline().With(tt.field, tt.value)).Get(tt.field)
			if got != tt.want {
				t.Errorf("Clamp(%s=%v) = %v, want %v", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestClampKeepsNonFinite(t *testing.T) {
	in := Clamp(Baseline().With(CO2Levels, math.Inf(1)))
	if !math.IsInf(in.CO2Levels, 1) {
		t.Errorf("Clamp replaced +Inf with %v", in.CO2Levels)
	}
	if err := in.Validate(); err == nil {
		t.Error("Validate accepted +Inf")
	}
}

func TestDecode(t *testing.T) {
	values := Baseline().Map()
	values["co2Levels"] = 650

	in, err := Decode(values)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.CO2Levels != 650 {
		t.Errorf("co2Levels = %v, want 650", in.CO2Levels)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]float64)
		wantField string
	}{
		{"missing", func(m map[string]float64) { delete(m, "forestCover") }, "forestCover"},
		{"nan", func(m map[string]float64) { m["seaLevelRise"] = math.NaN() }, "seaLevelRise"},
		{"inf", func(m map[string]float64) { m["pollutionIndex"] = math.Inf(-1) }, "pollutionIndex"},
		{"unknown", func(m map[string]float64) { m["rainfall"] = 1 }, "rainfall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Baseline().Map()
			tt.mutate(values)

			_, err := Decode(values)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Decode error = %v, want *FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("field = %s, want %s", fe.Field, tt.wantField)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("urbanExpansion")
	if !ok || f != UrbanExpansion {
		t.Errorf("Lookup(urbanExpansion) = %v, %v", f, ok)
	}
	if _, ok := Lookup("UrbanExpansion"); ok {
		t.Error("Lookup should be case-sensitive")
	}
}
