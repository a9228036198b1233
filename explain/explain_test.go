package explain

import (
	"reflect"
	"slices"
	"testing"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

var quiet = [network.NumHidden]float64{}

func TestStrongActivationLines(t *testing.T) {
	h1 := [network.NumHidden]float64{0.5, 0.05, -0.2, 0, 0.11, -0.09}

	got := Explain(climate.Baseline(), h1, quiet)
	want := []string{
		"Hidden node 1 has strong activation (0.50)",
		"Hidden node 3 has strong activation (-0.20)",
		"Hidden node 5 has strong activation (0.11)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Explain = %q, want %q", got, want)
	}
}

func TestSecondLayerReusesNodeNumbers(t *testing.T) {
	h1 := [network.NumHidden]float64{0, 0.3, 0, 0, 0, 0}
	h2 := [network.NumHidden]float64{0, 0.4, 0, 0, 0, -1.257}

	got := Explain(climate.Baseline(), h1, h2)
	want := []string{
		"Hidden node 2 has strong activation (0.30)",
		"Hidden node 2 has strong activation (0.40)",
		"Hidden node 6 has strong activation (-1.26)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Explain = %q, want %q", got, want)
	}
}

func TestThresholdIsExclusive(t *testing.T) {
	h1 := [network.NumHidden]float64{0.1, -0.1, 0, 0, 0, 0}
	if got := Explain(climate.Baseline(), h1, quiet); len(got) != 0 {
		t.Errorf("|v| == 0.1 should not be reported, got %q", got)
	}
}

func TestNoObservationsIsEmptyNotNil(t *testing.T) {
	in := climate.Baseline()
	in.TemperatureChange = -0.5
	got := Explain(in, quiet, quiet)
	if got == nil || len(got) != 0 {
		t.Errorf("Explain = %#v, want empty non-nil slice", got)
	}
}

func TestConditionalMessages(t *testing.T) {
	tests := []struct {
		name       string
		temp       float64
		precip     float64
		co2        float64
		wantStress bool
		wantCO2    bool
	}{
		{"stress and co2", 1.5, -10, 650, true, true},
		{"neither", -1, 10, 450, false, false},
		{"co2 exactly 600", 1, -1, 600, true, false},
		{"co2 just above 600", 0, 0, 600.0001, false, true},
		{"warm but wet", 2, 5, 400, false, false},
		{"dry but cool", -0.5, -5, 400, false, false},
		{"zero temperature", 0, -20, 400, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := climate.Baseline()
			in.TemperatureChange = tt.temp
			in.PrecipitationChange = tt.precip
			in.CO2Levels = tt.co2

			got := Explain(in, quiet, quiet)
			if slices.Contains(got, StressMessage) != tt.wantStress {
				t.Errorf("stress message present = %v, want %v (%q)", !tt.wantStress, tt.wantStress, got)
			}
			if slices.Contains(got, CO2Message) != tt.wantCO2 {
				t.Errorf("co2 message present = %v, want %v (%q)", !tt.wantCO2, tt.wantCO2, got)
			}
		})
	}
}

func TestMessageOrder(t *testing.T) {
	in := climate.Baseline()
	in.TemperatureChange = 3
	in.PrecipitationChange = -25
	in.CO2Levels = 700
	h1 := [network.NumHidden]float64{0.9, 0, 0, 0, 0, 0}

	got := Explain(in, h1, quiet)
	want := []string{
		"Hidden node 1 has strong activation (0.90)",
		StressMessage,
		CO2Message,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Explain = %q, want %q", got, want)
	}
}

func TestUnrelatedFieldsIgnored(t *testing.T) {
	h1 := [network.NumHidden]float64{0.2, -0.3, 0.05, 0, 0.4, 0}
	h2 := [network.NumHidden]float64{0, 0, 0.7, 0, 0, -0.15}

	base := climate.Baseline()
	base.TemperatureChange = 1
	base.PrecipitationChange = -3
	want := Explain(base, h1, h2)

	for _, f := range climate.Fields() {
		switch f {
		case climate.TemperatureChange, climate.PrecipitationChange, climate.CO2Levels:
			continue
		}
		s := f.Spec()
		for _, v := range []float64{s.Min, s.Max} {
			if got := Explain(base.With(f, v), h1, h2); !reflect.DeepEqual(got, want) {
				t.Errorf("changing %s to %v altered explanation: %q", f, v, got)
			}
		}
	}
}

func TestFromResultScenario(t *testing.T) {
	in := climate.Baseline()
	in.TemperatureChange = 1.5
	in.PrecipitationChange = -10
	in.CO2Levels = 650

	res, err := network.Propagate(in)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	got := FromResult(in, res)
	if !slices.Contains(got, StressMessage) || !slices.Contains(got, CO2Message) {
		t.Errorf("scenario explanation missing messages: %q", got)
	}
	// h1 = [0.15, -0.0204, 0.2583, -0.0312, 0.3667, -0.0421]
	if got[0] != "Hidden node 1 has strong activation (0.15)" {
		t.Errorf("first line = %q", got[0])
	}
}

func TestBaselineScenario(t *testing.T) {
	in := climate.Baseline()
	res, err := network.Propagate(in)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	got := FromResult(in, res)

	// h1 nodes 4 and 6 exceed the threshold; h2 nodes 1-6 all do
	want := []string{
		"Hidden node 4 has strong activation (0.17)",
		"Hidden node 6 has strong activation (0.27)",
		"Hidden node 1 has strong activation (-0.17)",
		"Hidden node 2 has strong activation (0.24)",
		"Hidden node 3 has strong activation (-0.25)",
		"Hidden node 4 has strong activation (0.34)",
		"Hidden node 5 has strong activation (-0.33)",
		"Hidden node 6 has strong activation (0.45)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("baseline explanation = %q, want %q", got, want)
	}
}

func TestFixed2(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.5, "0.50"},
		{-0.2, "-0.20"},
		{0.125, "0.13"},
		{-0.125, "-0.13"},
		{1.005, "1.00"}, // binary value is just below 1.005
		{0.11, "0.11"},
		{12.3456, "12.35"},
		{-0.001, "-0.00"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := fixed2(tt.v); got != tt.want {
			t.Errorf("fixed2(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestJoinAndSummary(t *testing.T) {
	if got := Join([]string{"a", "b"}); got != "a\nb" {
		t.Errorf("Join = %q", got)
	}
	want := "The predicted biodiversity impact level is Moderate. This indicates that the current climate conditions have moderate potential to affect biodiversity."
	if got := Summary(network.Moderate); got != want {
		t.Errorf("Summary = %q", got)
	}
}
