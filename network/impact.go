package network

// Level is the coarse impact category shown for a score.
type Level int

const (
	Low Level = iota
	Moderate
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	default:
		return "High"
	}
}

// MarshalText encodes the level by name for JSON, YAML and CSV output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// LevelThresholds are the exclusive upper bounds of Low and Moderate.
type LevelThresholds struct {
	Low      float64 `yaml:"low"`
	Moderate float64 `yaml:"moderate"`
}

// DefaultThresholds returns Low < 0.2 <= Moderate < 0.5 <= High.
func DefaultThresholds() LevelThresholds {
	return LevelThresholds{Low: 0.2, Moderate: 0.5}
}

// Classify maps a score to its level.
func (t LevelThresholds) Classify(score float64) Level {
	if score < t.Low {
		return Low
	}
	if score < t.Moderate {
		return Moderate
	}
	return High
}

// LevelOf classifies score with the default thresholds.
func LevelOf(score float64) Level {
	return DefaultThresholds().Classify(score)
}
