package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

// Objective scores candidate scenarios for the optimizer (lower = better).
// With maximize set the score is negated so the search climbs toward High.
type Objective struct {
	params   *ParamVector
	engine   *network.Engine
	maximize bool

	mu         sync.Mutex
	evals      int
	failures   int
	bestValue  float64
	bestInput  climate.Input
	bestScore  float64
	lastScore  float64
	lastOK     bool
	haveResult bool
}

// NewObjective creates an objective over params.
func NewObjective(params *ParamVector, engine *network.Engine, maximize bool) *Objective {
	return &Objective{
		params:    params,
		engine:    engine,
		maximize:  maximize,
		bestValue: math.Inf(1),
	}
}

// Evaluate propagates the clamped scenario for raw values. A propagation
// failure scores +Inf so the optimizer moves away from it.
func (o *Objective) Evaluate(raw []float64) float64 {
	in := o.params.ToInput(raw)
	res, err := o.engine.Propagate(in)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.evals++
	if err != nil {
		o.failures++
		o.lastScore = math.NaN()
		o.lastOK = false
		return math.Inf(1)
	}

	value := res.Score
	if o.maximize {
		value = -value
	}
	o.lastScore = res.Score
	o.lastOK = true
	if value < o.bestValue {
		o.bestValue = value
		o.bestInput = in
		o.bestScore = res.Score
		o.haveResult = true
	}
	return value
}

// Best returns the best scenario seen so far and its score.
func (o *Objective) Best() (climate.Input, float64, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bestInput, o.bestScore, o.haveResult
}

// Last returns the score from the most recent evaluation. ok is false, and
// the score NaN, when that evaluation failed.
func (o *Objective) Last() (score float64, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastScore, o.lastOK
}

// Evals returns the number of evaluations and how many of them failed.
func (o *Objective) Evals() (total, failed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.evals, o.failures
}
