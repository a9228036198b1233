// Package config provides configuration loading and access for the impact network.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biodiv/climate"
	"github.com/pthm-cable/biodiv/network"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen  ScreenConfig   `yaml:"screen"`
	Impact  ImpactConfig   `yaml:"impact"`
	Weights WeightsConfig  `yaml:"weights"`
	Presets []PresetConfig `yaml:"presets"`
	Sweep   SweepConfig    `yaml:"sweep"`
	Explore ExploreConfig  `yaml:"explore"`
	Output  OutputConfig   `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ImpactConfig holds the score bands used for impact levels.
type ImpactConfig struct {
	LowThreshold      float64 `yaml:"low_threshold"`      // Scores below this are Low
	ModerateThreshold float64 `yaml:"moderate_threshold"` // Scores below this are Moderate, else High
}

// WeightsConfig optionally replaces the built-in weight matrices.
// All five must be given together; an empty section keeps the built-ins.
type WeightsConfig struct {
	InputToHidden1   [][]float64 `yaml:"input_to_hidden1,omitempty"`
	Hidden1ToHidden2 [][]float64 `yaml:"hidden1_to_hidden2,omitempty"`
	Hidden2ToHidden3 [][]float64 `yaml:"hidden2_to_hidden3,omitempty"`
	Hidden3ToHidden4 [][]float64 `yaml:"hidden3_to_hidden4,omitempty"`
	Hidden4ToOutput  [][]float64 `yaml:"hidden4_to_output,omitempty"`
}

// IsSet reports whether any matrix was configured.
func (w WeightsConfig) IsSet() bool {
	return w.InputToHidden1 != nil || w.Hidden1ToHidden2 != nil || w.Hidden2ToHidden3 != nil ||
		w.Hidden3ToHidden4 != nil || w.Hidden4ToOutput != nil
}

// PresetConfig defines an extra scenario. Values are keyed by camelCase
// field name and overlay the baseline.
type PresetConfig struct {
	Name   string             `yaml:"name"`
	Values map[string]float64 `yaml:"values"`
}

// SweepConfig holds sensitivity sweep parameters.
type SweepConfig struct {
	Steps int `yaml:"steps"` // Points per field, inclusive of both domain ends
}

// ExploreConfig holds scenario search parameters.
type ExploreConfig struct {
	MaxEvals int  `yaml:"max_evals"`
	Maximize bool `yaml:"maximize"` // Search for the highest score instead of the lowest
}

// OutputConfig holds structured output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty disables file output
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Engine      *network.Engine         // Built from Weights, or the built-in engine
	Thresholds  network.LevelThresholds // From Impact
	Presets     []climate.Preset        // Built-in presets merged with Presets
	PresetIndex map[string]int          // name -> index into Derived.Presets
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values that would make downstream components misbehave.
func (c *Config) validate() error {
	if c.Impact.LowThreshold <= 0 || c.Impact.ModerateThreshold >= 1 ||
		c.Impact.LowThreshold >= c.Impact.ModerateThreshold {
		return fmt.Errorf("impact thresholds must satisfy 0 < low < moderate < 1, got %v and %v",
			c.Impact.LowThreshold, c.Impact.ModerateThreshold)
	}
	if c.Sweep.Steps < 2 {
		return fmt.Errorf("sweep.steps must be at least 2, got %d", c.Sweep.Steps)
	}
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.Engine = network.Default()
	if c.Weights.IsSet() {
		w, err := network.NewWeights(network.Matrices{
			InputToHidden1:   c.Weights.InputToHidden1,
			Hidden1ToHidden2: c.Weights.Hidden1ToHidden2,
			Hidden2ToHidden3: c.Weights.Hidden2ToHidden3,
			Hidden3ToHidden4: c.Weights.Hidden3ToHidden4,
			Hidden4ToOutput:  c.Weights.Hidden4ToOutput,
		})
		if err != nil {
			return fmt.Errorf("building weights: %w", err)
		}
		engine, err := network.NewEngine(w)
		if err != nil {
			return fmt.Errorf("building engine: %w", err)
		}
		c.Derived.Engine = engine
	}

	c.Derived.Thresholds = network.LevelThresholds{
		Low:      c.Impact.LowThreshold,
		Moderate: c.Impact.ModerateThreshold,
	}

	extra := make([]climate.Preset, len(c.Presets))
	for i, p := range c.Presets {
		extra[i] = climate.Preset{Name: p.Name, Values: p.Values}
		// Catch unknown field names at load time rather than on first use
		if _, err := extra[i].Apply(climate.Baseline()); err != nil {
			return err
		}
	}
	c.Derived.Presets = climate.MergePresets(climate.Presets(), extra)

	c.Derived.PresetIndex = make(map[string]int, len(c.Derived.Presets))
	for i, p := range c.Derived.Presets {
		c.Derived.PresetIndex[p.Name] = i
	}
	return nil
}

// Preset finds a scenario by name among the built-in and configured presets.
func (c *Config) Preset(name string) (climate.Preset, bool) {
	i, ok := c.Derived.PresetIndex[name]
	if !ok {
		return climate.Preset{}, false
	}
	return c.Derived.Presets[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
