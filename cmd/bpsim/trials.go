package main

import (
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/sarchlab/bpsim/config"
	"github.com/sarchlab/bpsim/logger"
	"github.com/sarchlab/bpsim/pattern"
	"github.com/sarchlab/bpsim/report"
	"github.com/sarchlab/bpsim/sim"
)

// TrialsCommand runs repeated independent trials per pattern kind.
var TrialsCommand = cli.Command{
	Action: trialsAction,
	Name:   "trials",
	Usage:  "estimate mean accuracy over repeated seeded trials",
	Flags: []cli.Flag{
		&ConfigFlag,
		&SeedFlag,
		&LengthFlag,
		&WorkersFlag,
		&PredictorFlag,
		&TrialsFlag,
		&GeneratorFlag,
		&ProbabilityFlag,
		&LoopTakenFlag,
		&LoopRepeatsFlag,
		&FormatFlag,
		&logger.LogLevelFlag,
	},
}

func trialsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log := logger.NewLogger(ctx.String(logger.LogLevelFlag.Name), "bpsim-trials")

	format, err := report.ParseFormat(ctx.String(FormatFlag.Name))
	if err != nil {
		return err
	}

	kind, err := cfg.PredictorKind()
	if err != nil {
		return err
	}

	specs, err := trialSpecs(ctx)
	if err != nil {
		return err
	}

	summaries := make([]sim.TrialSummary, 0, len(specs))
	for _, spec := range specs {
		start := time.Now()
		summary, err := sim.RunTrials(ctx.Context, sim.TrialConfig{
			Trials:    cfg.Trials,
			Seed:      cfg.Seed,
			Workers:   cfg.Workers,
			Predictor: kind,
		}, specGenerator(spec, cfg.Length))
		if err != nil {
			return errors.Wrapf(err, "%s trials", spec.Kind)
		}

		hours, minutes, seconds := logger.ParseTime(time.Since(start))
		log.Infof("%d %s trials took %vh %vm %vs", cfg.Trials, spec.Kind, hours, minutes, seconds)
		summaries = append(summaries, summary)
	}

	return report.NewPrinter(ctx.App.Writer).PrintTrialsFormat(format, summaries)
}

// trialSpecs turns the generator flags into pattern specs.
func trialSpecs(ctx *cli.Context) ([]config.PatternSpec, error) {
	loop := config.PatternSpec{Kind: config.KindLoop, Taken: 5, Repeats: 1600}
	if ctx.IsSet(LoopTakenFlag.Name) {
		loop.Taken = ctx.Int(LoopTakenFlag.Name)
	}
	if ctx.IsSet(LoopRepeatsFlag.Name) {
		loop.Repeats = ctx.Int(LoopRepeatsFlag.Name)
	}

	var specs []config.PatternSpec
	for _, kind := range ctx.StringSlice(GeneratorFlag.Name) {
		var spec config.PatternSpec
		switch kind {
		case config.KindLoop:
			spec = loop
		case config.KindBiased:
			spec = config.PatternSpec{Kind: kind, Probability: ctx.Float64(ProbabilityFlag.Name)}
		default:
			spec = config.PatternSpec{Kind: kind}
		}

		if err := spec.Validate(); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

func specGenerator(spec config.PatternSpec, length int) sim.Generator {
	return func(rng *rand.Rand) (pattern.Pattern, error) {
		return spec.Generate(rng, length)
	}
}
