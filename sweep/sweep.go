// Package sweep runs one-at-a-time sensitivity sweeps: each input field is
// stepped across its domain while the others stay at a base scenario.
package sweep

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

// Point is one evaluated sample.
type Point struct {
	Field string  `csv:"field"`
	Value float64 `csv:"value"`
	Score float64 `csv:"score"`
	Level string  `csv:"level"`
}

// Summary describes how the score responds to one field.
type Summary struct {
	Field  string  `csv:"field"`
	Min    float64 `csv:"min_score"`
	Max    float64 `csv:"max_score"`
	Mean   float64 `csv:"mean_score"`
	StdDev float64 `csv:"stddev_score"`
	Range  float64 `csv:"range"`
}

// Result holds all samples in field order and one summary per field.
type Result struct {
	Points    []Point
	Summaries []Summary
}

// Run sweeps every field of base with steps evenly spaced values from the
// field's minimum to its maximum inclusive.
func Run(e *network.Engine, base climate.Input, steps int, th network.LevelThresholds) (Result, error) {
	if steps < 2 {
		return Result{}, fmt.Errorf("steps must be at least 2, got %d", steps)
	}

	var out Result
	values := make([]float64, steps)
	scores := make([]float64, steps)

	for _, f := range climate.Fields() {
		s := f.Spec()
		floats.Span(values, s.Min, s.Max)

		for i, v := range values {
			res, err := e.Propagate(base.With(f, v))
			if err != nil {
				return Result{}, fmt.Errorf("sweeping %s at %v: %w", f, v, err)
			}
			scores[i] = res.Score
			out.Points = append(out.Points, Point{
				Field: f.String(),
				Value: v,
				Score: res.Score,
				Level: th.Classify(res.Score).String(),
			})
		}

		out.Summaries = append(out.Summaries, summarize(f.String(), scores))
	}

	return out, nil
}

func summarize(field string, scores []float64) Summary {
	mean, std := stat.MeanStdDev(scores, nil)
	lo, hi := floats.Min(scores), floats.Max(scores)
	return Summary{
		Field:  field,
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		StdDev: std,
		Range:  hi - lo,
	}
}

// Ranked returns the summaries ordered by descending score range, so the
// most influential fields come first. Ties keep field order.
func (r Result) Ranked() []Summary {
	out := make([]Summary, len(r.Summaries))
	copy(out, r.Summaries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range > out[j].Range
	})
	return out
}
