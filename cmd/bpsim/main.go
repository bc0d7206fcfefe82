// Command bpsim simulates a 2-bit saturating-counter branch predictor on
// branch outcome patterns and reports its accuracy.
//
// Usage:
//
//	go run ./cmd/bpsim <command> [flags]
//
// Example:
//
//	# Random and loop patterns with the default configuration
//	go run ./cmd/bpsim run
//
//	# A custom pattern, printed as CSV
//	go run ./cmd/bpsim run --pattern nested=TTTNTTTNTN --format csv
//
//	# Mean accuracy of 200 random patterns of length 10000
//	go run ./cmd/bpsim trials --trials 200 --length 10000
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// newApp builds the bpsim command line application.
func newApp() *cli.App {
	return &cli.App{
		Name:     "bpsim",
		HelpName: "bpsim",
		Usage:    "branch predictor accuracy simulator",
		// Literal patterns may contain commas.
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			&RunCommand,
			&TrialsCommand,
			&ConfigCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
