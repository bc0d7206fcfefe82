// Package main provides the entry point for bpsim.
// bpsim measures how well a 2-bit saturating-counter branch predictor
// predicts branch outcome patterns.
//
// For the full CLI, use: go run ./cmd/bpsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("bpsim - Branch Predictor Accuracy Simulator")
	fmt.Println("")
	fmt.Println("Usage: bpsim <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run       Simulate the configured patterns and report accuracy")
	fmt.Println("  trials    Estimate mean accuracy over repeated seeded trials")
	fmt.Println("  config    Print or save the effective configuration")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/bpsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/bpsim' instead.")
	}
}
