package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/config"
	"github.com/pthm-cable/biodiv/network"
	"github.com/pthm-cable/biodiv/sweep"
	"github.com/pthm-cable/biodiv/viz"
)

func TestNilManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	if err := om.WriteRun(RunRecord{}); err != nil {
		t.Errorf("WriteRun: %v", err)
	}
	if err := om.WriteSweep(sweep.Result{}); err != nil {
		t.Errorf("WriteSweep: %v", err)
	}
	if err := om.WriteFrame(viz.Frame{}); err != nil {
		t.Errorf("WriteFrame: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestWriteRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	b := viz.NewBuilder()
	good := climate.Baseline()
	f, _, _ := b.Build(good)
	if err := om.WriteRun(NewRunRecord("baseline", good, f)); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	bad := good.With(climate.TemperatureChange, math.NaN())
	f, _, _ = b.Build(bad)
	if err := om.WriteRun(NewRunRecord("broken", bad, f)); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatalf("reading runs.csv: %v", err)
	}
	if n := strings.Count(string(data), "scenario"); n != 1 {
		t.Errorf("header written %d times", n)
	}

	var rows []RunRecord
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("UnmarshalBytes: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rows[0].OK || rows[0].CO2Levels != 400 || rows[0].Level != "Low" {
		t.Errorf("baseline row = %+v", rows[0])
	}
	if rows[0].Explained == 0 {
		t.Error("baseline row has no explanation lines")
	}
	if rows[1].OK || rows[1].Error == "" || rows[1].Score != 0 {
		t.Errorf("broken row = %+v", rows[1])
	}
}

func TestWriteSweep(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	res, err := sweep.Run(network.Default(), climate.Baseline(), 3, network.DefaultThresholds())
	if err != nil {
		t.Fatalf("sweep.Run: %v", err)
	}
	if err := om.WriteSweep(res); err != nil {
		t.Fatalf("WriteSweep: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var points []sweep.Point
	data, err := os.ReadFile(filepath.Join(dir, "sweep.csv"))
	if err != nil {
		t.Fatalf("reading sweep.csv: %v", err)
	}
	if err := gocsv.UnmarshalBytes(data, &points); err != nil {
		t.Fatalf("UnmarshalBytes: %v", err)
	}
	if len(points) != len(res.Points) {
		t.Errorf("got %d points, want %d", len(points), len(res.Points))
	}

	var sums []sweep.Summary
	data, err = os.ReadFile(filepath.Join(dir, "sensitivity.csv"))
	if err != nil {
		t.Fatalf("reading sensitivity.csv: %v", err)
	}
	if err := gocsv.UnmarshalBytes(data, &sums); err != nil {
		t.Fatalf("UnmarshalBytes: %v", err)
	}
	if len(sums) != int(climate.NumFields) || sums[0].Field != "temperatureChange" {
		t.Errorf("summaries = %+v", sums)
	}
}

func TestWriteFrameAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	f, _, err := viz.NewBuilder().Build(climate.Baseline())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := om.WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "frame.json"))
	if err != nil {
		t.Fatalf("reading frame.json: %v", err)
	}
	if !strings.Contains(string(data), `"activations"`) {
		t.Errorf("frame.json missing activations: %s", data)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
	if om.Dir() != dir {
		t.Errorf("Dir = %q, want %q", om.Dir(), dir)
	}
}
