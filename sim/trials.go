package sim

import (
	"context"
	"math"
	"math/rand"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarchlab/bpsim/pattern"
	"github.com/sarchlab/bpsim/predictor"
)

// ConfidenceLevel is the two-sided level of TrialSummary intervals.
const ConfidenceLevel = 0.95

// Generator produces the pattern for one trial from its random source.
type Generator func(rng *rand.Rand) (pattern.Pattern, error)

// TrialConfig configures repeated independent trials.
type TrialConfig struct {
	// Trials is the number of independent runs.
	Trials int
	// Seed is the seed of the first trial; trial i uses Seed+i.
	Seed int64
	// Workers bounds concurrency. Zero means one worker per CPU.
	Workers int
	// Predictor is the kind of predictor each trial runs on.
	Predictor predictor.Kind
}

// TrialSummary aggregates the accuracies of repeated trials.
type TrialSummary struct {
	Pattern    string         `json:"pattern"`
	Predictor  predictor.Kind `json:"predictor"`
	Trials     int            `json:"trials"`
	Accuracies []float64      `json:"-"`
	Mean       float64        `json:"mean"`
	StdDev     float64        `json:"std_dev"`
	StdErr     float64        `json:"std_err"`
	CILow      float64        `json:"ci_low"`
	CIHigh     float64        `json:"ci_high"`
}

// RunTrials runs cfg.Trials independent simulations, each on a pattern
// produced by gen from its own seeded source, and summarises them.
func RunTrials(ctx context.Context, cfg TrialConfig, gen Generator) (TrialSummary, error) {
	if cfg.Trials <= 0 {
		return TrialSummary{}, errors.Wrapf(ErrInvalidInput, "trial count must be positive, got %d", cfg.Trials)
	}
	if gen == nil {
		return TrialSummary{}, errors.Wrap(ErrInvalidInput, "nil pattern generator")
	}
	if cfg.Predictor == "" {
		cfg.Predictor = predictor.DefaultKind
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	accuracies := make([]float64, cfg.Trials)
	names := make([]string, cfg.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < cfg.Trials; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			p, err := gen(pattern.NewRand(cfg.Seed + int64(i)))
			if err != nil {
				return errors.Wrapf(err, "trial %d", i)
			}

			r, err := Run(p, cfg.Predictor)
			if err != nil {
				return errors.Wrapf(err, "trial %d", i)
			}

			accuracies[i] = r.Accuracy
			names[i] = r.Pattern
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return TrialSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return TrialSummary{}, errors.Wrap(err, "trials interrupted")
	}

	summary, err := Summarize(names[0], accuracies)
	if err != nil {
		return TrialSummary{}, err
	}
	summary.Predictor = cfg.Predictor
	return summary, nil
}

// Summarize computes the mean, spread and normal confidence interval of a
// set of trial accuracies.
func Summarize(name string, accuracies []float64) (TrialSummary, error) {
	n := len(accuracies)
	if n == 0 {
		return TrialSummary{}, errors.Wrap(ErrInvalidInput, "no trial accuracies")
	}

	mean, std := stat.MeanStdDev(accuracies, nil)
	if n == 1 || math.IsNaN(std) {
		std = 0
	}
	stdErr := stat.StdErr(std, float64(n))
	z := distuv.UnitNormal.Quantile(1 - (1-ConfidenceLevel)/2)

	return TrialSummary{
		Pattern:    name,
		Trials:     n,
		Accuracies: accuracies,
		Mean:       mean,
		StdDev:     std,
		StdErr:     stdErr,
		CILow:      mean - z*stdErr,
		CIHigh:     mean + z*stdErr,
	}, nil
}
