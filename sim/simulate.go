// Package sim evaluates branch predictors against outcome patterns.
//
// A simulation feeds every outcome of a pattern through a fresh predictor.
// For each outcome the predictor is asked for a prediction first, the
// prediction is scored, and only then is the predictor trained with the
// actual outcome.
package sim

import (
	"github.com/cockroachdb/errors"

	"github.com/sarchlab/bpsim/pattern"
	"github.com/sarchlab/bpsim/predictor"
)

// ErrInvalidInput is returned when a simulation cannot be evaluated, such
// as for an empty pattern where accuracy is undefined.
var ErrInvalidInput = errors.New("invalid simulation input")

// Result holds the outcome of simulating one pattern on one predictor.
type Result struct {
	// Pattern names the simulated pattern.
	Pattern string `json:"pattern"`
	// Predictor is the kind of predictor that was simulated.
	Predictor predictor.Kind `json:"predictor"`
	// Total is the number of outcomes evaluated.
	Total uint64 `json:"total"`
	// Correct is the number of correct predictions.
	Correct uint64 `json:"correct"`
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64 `json:"mispredictions"`
	// Accuracy is Correct / Total, in [0,1].
	Accuracy float64 `json:"accuracy"`
}

// AccuracyPercent returns the prediction accuracy as a percentage.
func (r Result) AccuracyPercent() float64 {
	return r.Accuracy * 100
}

// MispredictionRate returns the fraction of mispredicted outcomes.
func (r Result) MispredictionRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Mispredictions) / float64(r.Total)
}

// Simulate runs outcomes through p and scores its predictions. p should be
// freshly created; Simulate does not reset it.
func Simulate(p predictor.Predictor, outcomes []bool) (Result, error) {
	if p == nil {
		return Result{}, errors.Wrap(ErrInvalidInput, "nil predictor")
	}
	if len(outcomes) == 0 {
		return Result{}, errors.Wrap(ErrInvalidInput, "empty pattern")
	}

	var correct uint64
	for _, taken := range outcomes {
		if p.Predict() == taken {
			correct++
		}
		p.Update(taken)
	}

	total := uint64(len(outcomes))
	return Result{
		Total:          total,
		Correct:        correct,
		Mispredictions: total - correct,
		Accuracy:       float64(correct) / float64(total),
	}, nil
}

// Run simulates pat on a fresh predictor of the given kind.
func Run(pat pattern.Pattern, kind predictor.Kind) (Result, error) {
	p, err := predictor.New(kind)
	if err != nil {
		return Result{}, err
	}

	result, err := Simulate(p, pat.Outcomes)
	if err != nil {
		return Result{}, errors.Wrapf(err, "pattern %q", pat.Name)
	}

	result.Pattern = pat.Name
	result.Predictor = kind
	return result, nil
}
