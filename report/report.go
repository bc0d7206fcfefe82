// Package report formats simulation results for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/bpsim/sim"
)

// Version is the report format version written in JSON metadata.
const Version = "0.1.0"

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how results are printed.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTable, FormatCSV, FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Report is the complete JSON output for a batch of simulations.
type Report struct {
	Metadata Metadata     `json:"metadata"`
	Results  []sim.Result `json:"results"`
	Summary  Summary      `json:"summary"`
}

// Metadata describes the run that produced a report.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Summary aggregates a batch of results.
type Summary struct {
	// TotalPatterns is the number of simulated patterns.
	TotalPatterns int `json:"total_patterns"`
	// TotalOutcomes is the sum of all pattern lengths.
	TotalOutcomes uint64 `json:"total_outcomes"`
	// TotalCorrect is the sum of all correct predictions.
	TotalCorrect uint64 `json:"total_correct"`
	// OverallAccuracy is TotalCorrect / TotalOutcomes.
	OverallAccuracy float64 `json:"overall_accuracy"`
}

// Summarize aggregates results.
func Summarize(results []sim.Result) Summary {
	s := Summary{TotalPatterns: len(results)}
	for _, r := range results {
		s.TotalOutcomes += r.Total
		s.TotalCorrect += r.Correct
	}
	if s.TotalOutcomes > 0 {
		s.OverallAccuracy = float64(s.TotalCorrect) / float64(s.TotalOutcomes)
	}
	return s
}

// Printer writes results to Output.
type Printer struct {
	Output io.Writer
}

// NewPrinter creates a printer writing to w (default: os.Stdout).
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{Output: w}
}

// Print writes results in the given format.
func (p *Printer) Print(format Format, results []sim.Result) error {
	switch format {
	case FormatText:
		p.PrintText(results)
	case FormatTable:
		p.PrintTable(results)
	case FormatCSV:
		p.PrintCSV(results)
	case FormatMarkdown:
		p.PrintMarkdown(results)
	case FormatJSON:
		return p.PrintJSON(results)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", string(format))
	}
	return nil
}

// PrintText writes one line per result.
func (p *Printer) PrintText(results []sim.Result) {
	for _, r := range results {
		_, _ = fmt.Fprintf(p.Output, "Pattern: %s | Accuracy: %.2f%%\n", r.Pattern, r.AccuracyPercent())
	}
}

// PrintTable writes results as a boxed table with a total row.
func (p *Printer) PrintTable(results []sim.Result) {
	t := p.resultTable(results)
	summary := Summarize(results)
	t.AppendFooter(table.Row{
		"total", "", summary.TotalOutcomes, summary.TotalCorrect,
		summary.TotalOutcomes - summary.TotalCorrect,
		fmt.Sprintf("%.2f%%", summary.OverallAccuracy*100),
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// PrintCSV writes results as CSV for spreadsheet comparison.
func (p *Printer) PrintCSV(results []sim.Result) {
	p.resultTable(results).RenderCSV()
}

// PrintMarkdown writes results as a markdown table.
func (p *Printer) PrintMarkdown(results []sim.Result) {
	p.resultTable(results).RenderMarkdown()
}

func (p *Printer) resultTable(results []sim.Result) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.Output)
	t.AppendHeader(table.Row{"pattern", "predictor", "total", "correct", "mispredictions", "accuracy"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.Pattern, string(r.Predictor), r.Total, r.Correct, r.Mispredictions,
			fmt.Sprintf("%.2f%%", r.AccuracyPercent()),
		})
	}
	return t
}

// PrintJSON writes results in JSON format for automated comparison.
func (p *Printer) PrintJSON(results []sim.Result) error {
	if results == nil {
		results = []sim.Result{}
	}

	report := Report{
		Metadata: Metadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(p.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// PrintTrials writes trial summaries as a table.
func (p *Printer) PrintTrials(summaries []sim.TrialSummary) {
	t := p.trialTable(summaries)
	t.SetTitle("Accuracy over repeated trials (%.0f%% CI)", sim.ConfidenceLevel*100)
	t.SetStyle(table.StyleLight)
	t.Render()
}

// PrintTrialsFormat writes trial summaries in the given format.
func (p *Printer) PrintTrialsFormat(format Format, summaries []sim.TrialSummary) error {
	switch format {
	case FormatText:
		for _, s := range summaries {
			_, _ = fmt.Fprintf(p.Output, "Pattern: %s | Mean accuracy: %.2f%% | %.0f%% CI: [%.2f%%, %.2f%%]\n",
				s.Pattern, s.Mean*100, sim.ConfidenceLevel*100, s.CILow*100, s.CIHigh*100)
		}
	case FormatTable:
		p.PrintTrials(summaries)
	case FormatCSV:
		p.trialTable(summaries).RenderCSV()
	case FormatMarkdown:
		p.trialTable(summaries).RenderMarkdown()
	case FormatJSON:
		if summaries == nil {
			summaries = []sim.TrialSummary{}
		}
		encoder := json.NewEncoder(p.Output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summaries)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", string(format))
	}
	return nil
}

func (p *Printer) trialTable(summaries []sim.TrialSummary) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.Output)
	t.AppendHeader(table.Row{"pattern", "predictor", "trials", "mean", "std dev", "ci low", "ci high"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.Pattern, string(s.Predictor), s.Trials,
			fmt.Sprintf("%.2f%%", s.Mean*100),
			fmt.Sprintf("%.2f", s.StdDev*100),
			fmt.Sprintf("%.2f%%", s.CILow*100),
			fmt.Sprintf("%.2f%%", s.CIHigh*100),
		})
	}
	return t
}
