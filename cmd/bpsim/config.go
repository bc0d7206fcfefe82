package main

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ConfigCommand writes the effective configuration as JSON.
var ConfigCommand = cli.Command{
	Action: configAction,
	Name:   "config",
	Usage:  "print or save the effective simulation configuration",
	Flags: []cli.Flag{
		&ConfigFlag,
		&SeedFlag,
		&LengthFlag,
		&WorkersFlag,
		&PredictorFlag,
		&TrialsFlag,
		&PatternFlag,
		&LoopTakenFlag,
		&LoopRepeatsFlag,
		&OutFlag,
	},
}

func configAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if path := ctx.Path(OutFlag.Name); path != "" {
		return cfg.SaveConfig(path)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize simulation config")
	}
	_, err = ctx.App.Writer.Write(append(data, '\n'))
	return err
}
