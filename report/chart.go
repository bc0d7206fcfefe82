package report

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sarchlab/bpsim/sim"
)

// NewAccuracyChart creates a bar chart of accuracy per pattern.
func NewAccuracyChart(results []sim.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Branch Predictor Accuracy",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Branch Predictor Accuracy",
			Subtitle: "correct predictions per pattern (%)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "accuracy (%)",
			Min:  0,
			Max:  100,
		}),
	)

	labels := make([]string, 0, len(results))
	items := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		labels = append(labels, r.Pattern)
		items = append(items, opts.BarData{Name: r.Pattern, Value: r.AccuracyPercent()})
	}

	bar.SetXAxis(labels).AddSeries("accuracy", items)
	return bar
}

// RenderChart writes an HTML page with the accuracy chart to w.
func RenderChart(w io.Writer, results []sim.Result) error {
	if err := NewAccuracyChart(results).Render(w); err != nil {
		return errors.Wrap(err, "failed to render accuracy chart")
	}
	return nil
}
