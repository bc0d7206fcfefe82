// Package config provides the JSON configuration of simulation runs.
package config

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/sarchlab/bpsim/pattern"
	"github.com/sarchlab/bpsim/predictor"
)

// ErrInvalidConfig is returned by Validate for unusable configurations.
var ErrInvalidConfig = errors.New("invalid configuration")

// SimulationConfig describes which patterns to simulate and how.
type SimulationConfig struct {
	// Seed seeds every randomised pattern. Default: 1.
	Seed int64 `json:"seed"`

	// Predictor is the predictor kind. Default: "2bit".
	Predictor string `json:"predictor"`

	// Workers bounds concurrent simulations. 0 means one per CPU.
	Workers int `json:"workers"`

	// Trials is the number of independent runs for trial mode.
	// Default: 100.
	Trials int `json:"trials"`

	// Length is the outcome count of patterns that do not set their own.
	// Default: 9600.
	Length int `json:"length"`

	// Patterns lists the scenarios to simulate. Default: a random pattern
	// and a loop of 5 taken + 1 not taken repeated 1600 times.
	Patterns []PatternSpec `json:"patterns"`
}

// DefaultConfig returns a SimulationConfig with the default scenarios.
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Seed:      1,
		Predictor: string(predictor.DefaultKind),
		Workers:   0,
		Trials:    100,
		Length:    9600,
		Patterns:  defaultPatterns(),
	}
}

func defaultPatterns() []PatternSpec {
	return []PatternSpec{
		{Kind: KindRandom},
		{Kind: KindLoop, Taken: 5, Repeats: 1600},
	}
}

// LoadConfig loads a SimulationConfig from a JSON file. Fields missing from
// the file keep their default values.
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read simulation config file")
	}

	config := DefaultConfig()
	config.Patterns = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse simulation config")
	}
	if config.Patterns == nil {
		config.Patterns = defaultPatterns()
	}

	return config, nil
}

// SaveConfig writes a SimulationConfig to a JSON file.
func (c *SimulationConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize simulation config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write simulation config file")
	}

	return nil
}

// Validate checks that the configuration can be simulated.
func (c *SimulationConfig) Validate() error {
	if _, err := predictor.ParseKind(c.Predictor); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "predictor: %v", err)
	}
	if c.Workers < 0 {
		return errors.Wrap(ErrInvalidConfig, "workers must be >= 0")
	}
	if c.Trials <= 0 {
		return errors.Wrap(ErrInvalidConfig, "trials must be > 0")
	}
	if c.Length <= 0 {
		return errors.Wrap(ErrInvalidConfig, "length must be > 0")
	}
	if len(c.Patterns) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one pattern is required")
	}
	for i, p := range c.Patterns {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "patterns[%d]", i)
		}
	}
	return nil
}

// PredictorKind returns the configured predictor kind.
func (c *SimulationConfig) PredictorKind() (predictor.Kind, error) {
	return predictor.ParseKind(c.Predictor)
}

// BuildPatterns materialises every configured pattern. Randomised patterns
// draw from one source seeded with Seed, in configuration order.
func (c *SimulationConfig) BuildPatterns() ([]pattern.Pattern, error) {
	rng := pattern.NewRand(c.Seed)

	patterns := make([]pattern.Pattern, 0, len(c.Patterns))
	for i, spec := range c.Patterns {
		p, err := spec.Generate(rng, c.Length)
		if err != nil {
			return nil, errors.Wrapf(err, "patterns[%d]", i)
		}
		patterns = append(patterns, p)
	}

	return patterns, nil
}

// Clone returns a deep copy of the SimulationConfig.
func (c *SimulationConfig) Clone() *SimulationConfig {
	clone := *c
	clone.Patterns = make([]PatternSpec, len(c.Patterns))
	copy(clone.Patterns, c.Patterns)
	return &clone
}
