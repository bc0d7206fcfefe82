package sim

import (
	"context"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/bpsim/logger"
	"github.com/sarchlab/bpsim/pattern"
	"github.com/sarchlab/bpsim/predictor"
)

// HarnessConfig configures the simulation harness.
type HarnessConfig struct {
	// Predictor is the kind of predictor each pattern runs on.
	Predictor predictor.Kind

	// Workers bounds how many patterns are simulated at the same time.
	// Zero means one worker per CPU.
	Workers int

	// Logger receives progress messages (default: warnings only).
	Logger logger.Logger
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Predictor: predictor.DefaultKind,
		Workers:   runtime.NumCPU(),
	}
}

// Harness runs a batch of patterns, each on its own predictor.
type Harness struct {
	config   HarnessConfig
	patterns []pattern.Pattern
}

// NewHarness creates a new simulation harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Predictor == "" {
		config.Predictor = predictor.DefaultKind
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = logger.NewLogger("warning", "Harness")
	}

	return &Harness{
		config:   config,
		patterns: []pattern.Pattern{},
	}
}

// AddPattern adds a pattern to the harness.
func (h *Harness) AddPattern(p pattern.Pattern) {
	h.patterns = append(h.patterns, p)
}

// AddPatterns adds multiple patterns to the harness.
func (h *Harness) AddPatterns(patterns []pattern.Pattern) {
	h.patterns = append(h.patterns, patterns...)
}

// Patterns returns the patterns added so far.
func (h *Harness) Patterns() []pattern.Pattern {
	return h.patterns
}

// RunAll simulates every pattern and returns the results in the order the
// patterns were added. The first failing pattern aborts the batch.
func (h *Harness) RunAll(ctx context.Context) ([]Result, error) {
	log := h.config.Logger
	results := make([]Result, len(h.patterns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.config.Workers)

	start := time.Now()
	for i, p := range h.patterns {
		i, p := i, p
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			log.Debugf("Simulating %s (%d outcomes)", p.Name, p.Len())
			r, err := Run(p, h.config.Predictor)
			if err != nil {
				return err
			}
			log.Debugf("Finished %s: %d/%d correct", p.Name, r.Correct, r.Total)

			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "simulation batch interrupted")
	}

	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Infof("Simulated %d patterns in %vh %vm %vs", len(results), hours, minutes, seconds)

	return results, nil
}
