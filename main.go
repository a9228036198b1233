package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/config"
	"github.com/pthm-cable/biodiv/network"
	"github.com/pthm-cable/biodiv/report"
	"github.com/pthm-cable/biodiv/sweep"
	"github.com/pthm-cable/biodiv/ui"
	"github.com/pthm-cable/biodiv/viz"
)

// setFlags collects repeated -set name=value overrides.
type setFlags map[string]float64

func (s setFlags) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (s setFlags) Set(arg string) error {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("want name=value, got %q", arg)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s[strings.TrimSpace(name)] = v
	return nil
}

// scenario is one named input to evaluate.
type scenario struct {
	name  string
	input climate.Input
}

// resolveScenarios builds the inputs to evaluate. inputFile, if set, holds
// a complete record of all eleven fields; otherwise the scenario starts from
// the named preset (or "all" of them) or the baseline. Overrides apply last.
func resolveScenarios(cfg *config.Config, preset, inputFile string, overrides map[string]float64) ([]scenario, error) {
	var out []scenario

	switch {
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		var values map[string]float64
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parsing input file: %w", err)
		}
		in, err := climate.Decode(values)
		if err != nil {
			return nil, fmt.Errorf("input file: %w", err)
		}
		out = append(out, scenario{name: inputFile, input: in})

	case preset == "all":
		for _, p := range cfg.Derived.Presets {
			in, err := p.Apply(climate.Baseline())
			if err != nil {
				return nil, err
			}
			out = append(out, scenario{name: p.Name, input: in})
		}

	case preset != "":
		p, ok := cfg.Preset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		in, err := p.Apply(climate.Baseline())
		if err != nil {
			return nil, err
		}
		out = append(out, scenario{name: p.Name, input: in})

	default:
		out = append(out, scenario{name: "baseline", input: climate.Baseline()})
	}

	if len(overrides) > 0 {
		for i := range out {
			in, err := climate.Overlay(out[i].input, overrides)
			if err != nil {
				return nil, fmt.Errorf("applying -set: %w", err)
			}
			out[i].input = in
		}
	}
	return out, nil
}

// evaluate builds and records one frame. It returns the propagation error,
// already logged, so the caller can set the exit status.
func evaluate(b *viz.Builder, om *report.OutputManager, sc scenario) (viz.Frame, error) {
	frame, res, err := b.Build(sc.input)
	if err != nil {
		attrs := []any{"scenario", sc.name, "error", err}
		var pe *network.PropagationError
		if errors.As(err, &pe) && pe.Field != "" {
			attrs = append(attrs, "field", pe.Field)
		}
		slog.Error("propagation failed", attrs...)
	} else {
		slog.Info("scenario evaluated",
			"scenario", sc.name,
			"score", res.Score,
			"level", frame.Level,
			"explanation_lines", len(frame.Explanation),
		)
	}

	if werr := om.WriteRun(report.NewRunRecord(sc.name, sc.input, frame)); werr != nil {
		slog.Error("failed to write run", "error", werr)
	}
	return frame, err
}

func runSweep(cfg *config.Config, om *report.OutputManager, base climate.Input) error {
	res, err := sweep.Run(cfg.Derived.Engine, base, cfg.Sweep.Steps, cfg.Derived.Thresholds)
	if err != nil {
		return err
	}
	for _, s := range res.Ranked() {
		slog.Info("sensitivity",
			"field", s.Field,
			"min", s.Min,
			"max", s.Max,
			"mean", s.Mean,
			"stddev", s.StdDev,
			"range", s.Range,
		)
	}
	return om.WriteSweep(res)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run parses args, evaluates the scenarios and returns the exit status.
// Logs and -json frames go to stdout.
func run(args []string, stdout io.Writer) int {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(stdout, nil))
	slog.SetDefault(logger)

	// CLI flags
	fs := flag.NewFlagSet("biodiv", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := fs.Bool("headless", false, "Evaluate and exit without opening a window")
	preset := fs.String("preset", "", "Start from a preset by name (\"all\" evaluates every preset headless)")
	inputFile := fs.String("input", "", "YAML or JSON file with all eleven input fields")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs, frame and config snapshot (empty = use config)")
	runSens := fs.Bool("sweep", false, "Run a one-at-a-time sensitivity sweep around the scenario")
	printJSON := fs.Bool("json", false, "Print each frame as JSON to stdout")
	overrides := setFlags{}
	fs.Var(overrides, "set", "Override one field, name=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	dir := cfg.Output.Dir
	if *outputDir != "" {
		dir = *outputDir
	}
	om, err := report.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		return 1
	}
	defer func() {
		if err := om.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	scenarios, err := resolveScenarios(cfg, *preset, *inputFile, overrides)
	if err != nil {
		slog.Error("invalid scenario", "error", err)
		return 1
	}

	builder := &viz.Builder{Engine: cfg.Derived.Engine, Thresholds: cfg.Derived.Thresholds}

	if !*headless {
		// Graphical mode
		session := viz.NewSession(builder, scenarios[0].input)
		ui.NewViewer(cfg, session, om).Run()
		return 0
	}

	slog.Info("starting headless evaluation",
		"scenarios", len(scenarios),
		"output_dir", om.Dir(),
		"sweep", *runSens,
	)

	failed := 0
	for _, sc := range scenarios {
		frame, err := evaluate(builder, om, sc)
		if err != nil {
			failed++
		}
		if err := om.WriteFrame(frame); err != nil {
			slog.Error("failed to write frame", "error", err)
		}
		if *printJSON {
			data, err := frame.JSON()
			if err != nil {
				slog.Error("failed to encode frame", "error", err)
				continue
			}
			fmt.Fprintln(stdout, string(data))
		}
	}

	if *runSens {
		if err := runSweep(cfg, om, scenarios[0].input); err != nil {
			slog.Error("sweep failed", "error", err)
			failed++
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}
