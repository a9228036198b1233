package network

import "testing"

func TestLevelOf(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0.0001, Low},
		{0.1999, Low},
		{0.2, Moderate},
		{0.4999, Moderate},
		{0.5, High},
		{0.9999, High},
	}

	for _, tt := range tests {
		if got := LevelOf(tt.score); got != tt.want {
			t.Errorf("LevelOf(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	th := LevelThresholds{Low: 0.1, Moderate: 0.9}
	if th.Classify(0.5) != Moderate {
		t.Errorf("Classify(0.5) = %v, want Moderate", th.Classify(0.5))
	}
	if th.Classify(0.95) != High {
		t.Errorf("Classify(0.95) = %v, want High", th.Classify(0.95))
	}
}

func TestLevelText(t *testing.T) {
	b, err := Moderate.MarshalText()
	if err != nil || string(b) != "Moderate" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
}
