package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/sarchlab/bpsim/config"
	"github.com/sarchlab/bpsim/logger"
	"github.com/sarchlab/bpsim/report"
	"github.com/sarchlab/bpsim/sim"
)

// RunCommand simulates every configured pattern once.
var RunCommand = cli.Command{
	Action: runAction,
	Name:   "run",
	Usage:  "simulate the configured patterns and report accuracy",
	Flags: []cli.Flag{
		&ConfigFlag,
		&SeedFlag,
		&LengthFlag,
		&WorkersFlag,
		&PredictorFlag,
		&PatternFlag,
		&LoopTakenFlag,
		&LoopRepeatsFlag,
		&FormatFlag,
		&ChartFlag,
		&logger.LogLevelFlag,
	},
}

func runAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log := logger.NewLogger(ctx.String(logger.LogLevelFlag.Name), "bpsim-run")

	format, err := report.ParseFormat(ctx.String(FormatFlag.Name))
	if err != nil {
		return err
	}

	kind, err := cfg.PredictorKind()
	if err != nil {
		return err
	}

	patterns, err := cfg.BuildPatterns()
	if err != nil {
		return err
	}

	log.Noticef("Simulating %d patterns on the %s predictor (seed %d)", len(patterns), kind, cfg.Seed)

	harness := sim.NewHarness(sim.HarnessConfig{
		Predictor: kind,
		Workers:   cfg.Workers,
		Logger:    log,
	})
	harness.AddPatterns(patterns)

	results, err := harness.RunAll(ctx.Context)
	if err != nil {
		return err
	}

	if err := report.NewPrinter(ctx.App.Writer).Print(format, results); err != nil {
		return err
	}

	if path := ctx.Path(ChartFlag.Name); path != "" {
		if err := writeChart(path, results); err != nil {
			return err
		}
		log.Noticef("Accuracy chart written to %s", path)
	}

	return nil
}

func writeChart(path string, results []sim.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create chart file")
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()

	return report.RenderChart(f, results)
}

// loadConfig reads the configuration file (or the defaults) and applies
// command line overrides.
func loadConfig(ctx *cli.Context) (*config.SimulationConfig, error) {
	cfg := config.DefaultConfig()
	if path := ctx.Path(ConfigFlag.Name); path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if ctx.IsSet(SeedFlag.Name) {
		cfg.Seed = ctx.Int64(SeedFlag.Name)
	}
	if ctx.IsSet(LengthFlag.Name) {
		cfg.Length = ctx.Int(LengthFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		cfg.Workers = ctx.Int(WorkersFlag.Name)
	}
	if ctx.IsSet(PredictorFlag.Name) {
		cfg.Predictor = ctx.String(PredictorFlag.Name)
	}
	if ctx.IsSet(TrialsFlag.Name) {
		cfg.Trials = ctx.Int(TrialsFlag.Name)
	}
	for i := range cfg.Patterns {
		if cfg.Patterns[i].Kind != config.KindLoop {
			continue
		}
		if ctx.IsSet(LoopTakenFlag.Name) {
			cfg.Patterns[i].Taken = ctx.Int(LoopTakenFlag.Name)
		}
		if ctx.IsSet(LoopRepeatsFlag.Name) {
			cfg.Patterns[i].Repeats = ctx.Int(LoopRepeatsFlag.Name)
		}
	}
	for i, s := range ctx.StringSlice(PatternFlag.Name) {
		cfg.Patterns = append(cfg.Patterns, parseLiteral(s, i))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
