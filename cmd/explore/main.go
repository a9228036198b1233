// Package main searches the climate input domain for the scenarios with the
// highest or lowest predicted biodiversity impact.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/config"
	"github.com/pthm-cable/biodiv/network"
)

// EvalRecord is one row of explore_log.csv.
type EvalRecord struct {
	Eval      int     `csv:"eval"`
	OK        bool    `csv:"ok"`
	Objective float64 `csv:"objective"`
	Score     float64 `csv:"score"`
	Level     string  `csv:"level"` // empty when the evaluation failed
	climate.Input
}

// bestFile is the layout of best_scenario.yaml: a config overlay that adds
// the result as a preset.
type bestFile struct {
	Presets []config.PresetConfig `yaml:"presets"`
}

// formatDuration formats a duration as minutes and fractional seconds.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	m := d / time.Minute
	d -= m * time.Minute
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%dm%06.3fs", m, s)
}

// newMethod returns the optimizer for name.
func newMethod(name string, dim int) (optimize.Method, error) {
	switch name {
	case "cmaes":
		return &optimize.CmaEsChol{
			InitStepSize: 0.3,
			Population:   4 + int(3.0*math.Log(float64(dim))),
		}, nil
	case "neldermead":
		return &optimize.NelderMead{SimplexSize: 0.2}, nil
	default:
		return nil, fmt.Errorf("unknown method %q (want cmaes or neldermead)", name)
	}
}

// explore runs the search. record is called after every evaluation.
func explore(obj *Objective, params *ParamVector, method optimize.Method, maxEvals int,
	thresholds network.LevelThresholds, record func(EvalRecord) error) (*optimize.Result, error) {
	count := 0
	var recordErr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			value := obj.Evaluate(raw)
			count++

			if record != nil && recordErr == nil {
				score, ok := obj.Last()
				rec := EvalRecord{
					Eval:      count,
					OK:        ok,
					Objective: value,
					Score:     score,
					Input:     params.ToInput(raw),
				}
				if ok {
					rec.Level = thresholds.Classify(score).String()
				}
				recordErr = record(rec)
			}
			return value
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, method)
	if recordErr != nil {
		return result, fmt.Errorf("recording evaluation: %w", recordErr)
	}
	return result, err
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	preset := flag.String("preset", "", "Start from this preset instead of the baseline")
	maxEvals := flag.Int("max-evals", 0, "Maximum number of evaluations (0 = config value)")
	direction := flag.String("direction", "", "max or min (empty = config value)")
	methodName := flag.String("method", "neldermead", "Optimizer: neldermead or cmaes")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	evals := cfg.Explore.MaxEvals
	if *maxEvals > 0 {
		evals = *maxEvals
	}
	maximize := cfg.Explore.Maximize
	switch *direction {
	case "":
	case "max":
		maximize = true
	case "min":
		maximize = false
	default:
		log.Fatalf("unknown direction %q (want max or min)", *direction)
	}

	base := climate.Baseline()
	if *preset != "" {
		p, ok := cfg.Preset(*preset)
		if !ok {
			log.Fatalf("unknown preset %q", *preset)
		}
		var err error
		if base, err = p.Apply(base); err != nil {
			log.Fatalf("applying preset: %v", err)
		}
	}

	params := NewParamVector(base)
	obj := NewObjective(params, cfg.Derived.Engine, maximize)
	method, err := newMethod(*methodName, params.Dim())
	if err != nil {
		log.Fatal(err)
	}

	logPath := filepath.Join(*outputDir, "explore_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	headerWritten := false
	startTime := time.Now()
	record := func(r EvalRecord) error {
		rows := []EvalRecord{r}
		if !headerWritten {
			headerWritten = true
			if err := gocsv.Marshal(rows, logFile); err != nil {
				return err
			}
		} else if err := gocsv.MarshalWithoutHeaders(rows, logFile); err != nil {
			return err
		}

		if r.Eval%50 == 0 {
			_, best, _ := obj.Best()
			fmt.Printf("Eval %d/%d: score=%.6f (best=%.6f) | elapsed: %s\n",
				r.Eval, evals, r.Score, best, formatDuration(time.Since(startTime)))
		}
		return nil
	}

	goal := "lowest"
	if maximize {
		goal = "highest"
	}
	fmt.Printf("Searching for the %s impact with %s over %d inputs, max_evals=%d\n",
		goal, *methodName, params.Dim(), evals)

	result, err := explore(obj, params, method, evals, cfg.Derived.Thresholds, record)
	if err != nil {
		log.Printf("search ended: %v", err)
	}

	total, failed := obj.Evals()
	fmt.Printf("\nSearch complete after %d evaluations (%d failed) in %s\n",
		total, failed, formatDuration(time.Since(startTime)))
	if result != nil {
		fmt.Printf("Optimizer status: %v\n", result.Status)
	}

	bestInput, bestScore, ok := obj.Best()
	if !ok {
		log.Fatal("no successful evaluation")
	}
	fmt.Printf("Best score: %.6f (%s)\n", bestScore, cfg.Derived.Thresholds.Classify(bestScore))
	fmt.Println("\nBest scenario:")
	for _, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Name, bestInput.Get(spec.Field))
	}

	name := "Explored Minimum"
	if maximize {
		name = "Explored Maximum"
	}
	data, err := yaml.Marshal(bestFile{Presets: []config.PresetConfig{{Name: name, Values: bestInput.Map()}}})
	if err != nil {
		log.Fatalf("failed to marshal best scenario: %v", err)
	}
	bestPath := filepath.Join(*outputDir, "best_scenario.yaml")
	if err := os.WriteFile(bestPath, data, 0644); err != nil {
		log.Fatalf("failed to write best scenario: %v", err)
	}
	fmt.Printf("\nBest scenario saved to: %s\n", bestPath)
}
