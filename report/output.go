// Package report writes run records, sweep samples and frames to an output
// directory as CSV, YAML and JSON.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/config"
	"github.com/pthm-cable/biodiv/sweep"
	"github.com/pthm-cable/biodiv/viz"
)

// RunRecord is one scenario evaluation as written to runs.csv.
type RunRecord struct {
	Scenario string `csv:"scenario"`
	climate.Input
	OK        bool    `csv:"ok"`
	Score     float64 `csv:"score"`
	Level     string  `csv:"level"`
	Explained int     `csv:"explanation_lines"`
	Error     string  `csv:"error"`
}

// NewRunRecord flattens a frame built from in. Failed frames record the
// error and leave Score at zero.
func NewRunRecord(scenario string, in climate.Input, f viz.Frame) RunRecord {
	r := RunRecord{
		Scenario:  scenario,
		Input:     in,
		OK:        f.OK,
		Level:     f.Level,
		Explained: len(f.Explanation),
		Error:     f.Error,
	}
	if f.Output != nil {
		r.Score = *f.Output
	}
	return r
}

// csvFile is an append-only CSV stream whose header goes out with the
// first batch.
type csvFile struct {
	name          string
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{name: name, f: f}, nil
}

func (c *csvFile) write(records any) error {
	var err error
	if !c.headerWritten {
		err = gocsv.Marshal(records, c.f)
		c.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(records, c.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

func (c *csvFile) close() error {
	if c == nil || c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}

// OutputManager handles structured run output. A nil manager discards
// everything, so callers need not check whether output is enabled.
type OutputManager struct {
	dir         string
	runs        *csvFile
	sweep       *csvFile
	sensitivity *csvFile
}

// NewOutputManager creates dir and opens runs.csv, sweep.csv and
// sensitivity.csv. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.runs, err = createCSV(dir, "runs.csv"); err != nil {
		return nil, err
	}
	if om.sweep, err = createCSV(dir, "sweep.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.sensitivity, err = createCSV(dir, "sensitivity.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRun appends one record to runs.csv.
func (om *OutputManager) WriteRun(r RunRecord) error {
	if om == nil {
		return nil
	}
	return om.runs.write([]RunRecord{r})
}

// WriteSweep appends every sample to sweep.csv and the per-field summaries
// to sensitivity.csv.
func (om *OutputManager) WriteSweep(res sweep.Result) error {
	if om == nil {
		return nil
	}
	if len(res.Points) > 0 {
		if err := om.sweep.write(res.Points); err != nil {
			return err
		}
	}
	if len(res.Summaries) > 0 {
		if err := om.sensitivity.write(res.Summaries); err != nil {
			return err
		}
	}
	return nil
}

// WriteFrame saves f as frame.json, replacing any earlier frame.
func (om *OutputManager) WriteFrame(f viz.Frame) error {
	if om == nil {
		return nil
	}

	data, err := f.JSON()
	if err != nil {
		return fmt.Errorf("marshaling frame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "frame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing frame.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.runs, om.sweep, om.sensitivity} {
		if err := c.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
