package pattern

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
)

// Random returns n outcomes drawn independently and uniformly.
func Random(rng *rand.Rand, n int) (Pattern, error) {
	if err := checkLength(n); err != nil {
		return Pattern{}, err
	}
	if rng == nil {
		return Pattern{}, errors.Wrap(ErrInvalidPattern, "nil random source")
	}

	outcomes := make([]bool, n)
	for i := range outcomes {
		outcomes[i] = rng.Intn(2) == 1
	}

	return Pattern{Name: "random", Outcomes: outcomes}, nil
}

// Biased returns n independent outcomes, each taken with probability p.
func Biased(rng *rand.Rand, p float64, n int) (Pattern, error) {
	if err := checkLength(n); err != nil {
		return Pattern{}, err
	}
	if rng == nil {
		return Pattern{}, errors.Wrap(ErrInvalidPattern, "nil random source")
	}
	if p < 0 || p > 1 {
		return Pattern{}, errors.Wrapf(ErrInvalidPattern,
			"taken probability %v outside [0,1]", p)
	}

	outcomes := make([]bool, n)
	for i := range outcomes {
		outcomes[i] = rng.Float64() < p
	}

	return Pattern{Name: fmt.Sprintf("biased(p=%.2f)", p), Outcomes: outcomes}, nil
}

// Loop returns k taken outcomes followed by one not-taken outcome, repeated
// m times. This is the outcome stream of a loop back-edge whose body runs k
// times before exiting.
func Loop(k, m int) (Pattern, error) {
	if k < 0 || m < 0 {
		return Pattern{}, errors.Wrapf(ErrInvalidPattern,
			"loop sizes must be non-negative, got k=%d m=%d", k, m)
	}
	if k == math.MaxInt {
		return Pattern{}, errors.Wrapf(ErrInvalidPattern, "loop body of %d taken outcomes is too long", k)
	}

	cycle := make([]bool, k+1)
	for i := 0; i < k; i++ {
		cycle[i] = true
	}

	return Repeat(fmt.Sprintf("loop(k=%d)", k), cycle, m)
}

// Repeat concatenates m copies of cycle.
func Repeat(name string, cycle []bool, m int) (Pattern, error) {
	if m < 0 {
		return Pattern{}, errors.Wrapf(ErrInvalidPattern,
			"repeat count must be non-negative, got %d", m)
	}
	if m > 0 && len(cycle) > math.MaxInt/m {
		return Pattern{}, errors.Wrapf(ErrInvalidPattern,
			"%d repeats of a %d-outcome cycle is too long", m, len(cycle))
	}

	outcomes := make([]bool, 0, len(cycle)*m)
	for i := 0; i < m; i++ {
		outcomes = append(outcomes, cycle...)
	}

	return Pattern{Name: name, Outcomes: outcomes}, nil
}

// Constant returns n outcomes that are all equal to taken.
func Constant(taken bool, n int) (Pattern, error) {
	if err := checkLength(n); err != nil {
		return Pattern{}, err
	}

	outcomes := make([]bool, n)
	for i := range outcomes {
		outcomes[i] = taken
	}

	name := "always-not-taken"
	if taken {
		name = "always-taken"
	}
	return Pattern{Name: name, Outcomes: outcomes}, nil
}

// Alternating returns n outcomes T, N, T, N, ...
func Alternating(n int) (Pattern, error) {
	if err := checkLength(n); err != nil {
		return Pattern{}, err
	}

	outcomes := make([]bool, n)
	for i := range outcomes {
		outcomes[i] = i%2 == 0
	}

	return Pattern{Name: "alternating", Outcomes: outcomes}, nil
}

func checkLength(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidPattern, "length must be non-negative, got %d", n)
	}
	return nil
}
