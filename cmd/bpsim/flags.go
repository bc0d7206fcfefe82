package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sarchlab/bpsim/config"
)

// ConfigFlag points at a JSON simulation configuration.
var ConfigFlag = cli.PathFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path to simulation configuration JSON file",
}

// SeedFlag seeds every randomised pattern.
var SeedFlag = cli.Int64Flag{
	Name:  "seed",
	Usage: "seed of the random pattern source",
}

// LengthFlag is the default pattern length.
var LengthFlag = cli.IntFlag{
	Name:  "length",
	Usage: "number of outcomes in generated patterns",
}

// WorkersFlag bounds concurrent simulations.
var WorkersFlag = cli.IntFlag{
	Name:  "workers",
	Usage: "number of patterns simulated in parallel (0 = one per CPU)",
}

// PredictorFlag selects the predictor kind.
var PredictorFlag = cli.StringFlag{
	Name:  "predictor",
	Usage: "predictor kind (\"2bit\")",
}

// PatternFlag adds literal patterns written as name=TTN.
var PatternFlag = cli.StringSliceFlag{
	Name:    "pattern",
	Aliases: []string{"p"},
	Usage:   "extra pattern as name=TTTN (T taken, N not taken); may be repeated",
}

// LoopTakenFlag overrides the taken count of loop patterns.
var LoopTakenFlag = cli.IntFlag{
	Name:  "loop-taken",
	Usage: "taken outcomes per loop iteration",
}

// LoopRepeatsFlag overrides the repeat count of loop patterns.
var LoopRepeatsFlag = cli.IntFlag{
	Name:  "loop-repeats",
	Usage: "number of loop iterations",
}

// FormatFlag selects the output format.
var FormatFlag = cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Usage:   "output format (\"text\", \"table\", \"csv\", \"markdown\", \"json\")",
	Value:   "table",
}

// ChartFlag writes an HTML accuracy chart.
var ChartFlag = cli.PathFlag{
	Name:  "chart",
	Usage: "write an HTML accuracy chart to this file",
}

// TrialsFlag is the number of repeated trials.
var TrialsFlag = cli.IntFlag{
	Name:  "trials",
	Usage: "number of independent trials",
}

// GeneratorFlag selects the pattern kinds used in trial mode.
var GeneratorFlag = cli.StringSliceFlag{
	Name:    "generator",
	Aliases: []string{"g"},
	Usage:   "pattern kind per trial (\"random\", \"biased\", \"loop\", \"alternating\"); may be repeated",
	Value:   cli.NewStringSlice(config.KindRandom),
}

// ProbabilityFlag is the taken probability of biased patterns.
var ProbabilityFlag = cli.Float64Flag{
	Name:  "probability",
	Usage: "taken probability of biased patterns",
	Value: 0.9,
}

// OutFlag is the destination of a written configuration.
var OutFlag = cli.PathFlag{
	Name:    "out",
	Aliases: []string{"o"},
	Usage:   "output file (default: stdout)",
}

// parseLiteral splits "name=TTN" into a literal pattern spec. Without a name
// the pattern is called custom-<index>.
func parseLiteral(s string, index int) config.PatternSpec {
	name, outcomes, found := strings.Cut(s, "=")
	if !found {
		outcomes = name
		name = fmt.Sprintf("custom-%d", index)
	}

	return config.PatternSpec{
		Name:     strings.TrimSpace(name),
		Kind:     config.KindLiteral,
		Outcomes: outcomes,
	}
}
