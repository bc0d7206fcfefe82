package config

import (
	"math/rand"

	"github.com/cockroachdb/errors"

	"github.com/sarchlab/bpsim/pattern"
)

// Pattern kinds accepted in PatternSpec.Kind.
const (
	KindRandom      = "random"
	KindBiased      = "biased"
	KindLoop        = "loop"
	KindConstant    = "constant"
	KindAlternating = "alternating"
	KindLiteral     = "literal"
)

// PatternSpec describes one pattern in a configuration file.
type PatternSpec struct {
	// Name overrides the generated pattern name.
	Name string `json:"name,omitempty"`

	// Kind selects the generator.
	Kind string `json:"kind"`

	// Length is the outcome count for random, biased, constant and
	// alternating patterns. 0 uses SimulationConfig.Length.
	Length int `json:"length,omitempty"`

	// Probability is the taken probability of a biased pattern.
	Probability float64 `json:"probability,omitempty"`

	// Taken is the number of taken outcomes per loop iteration.
	Taken int `json:"taken,omitempty"`

	// Repeats is the repetition count of loop and literal patterns.
	// 0 means once for literal patterns.
	Repeats int `json:"repeats,omitempty"`

	// Value is the outcome of a constant pattern.
	Value bool `json:"value,omitempty"`

	// Outcomes is a T/N string for literal patterns.
	Outcomes string `json:"outcomes,omitempty"`
}

// Validate checks the spec without generating it.
func (s PatternSpec) Validate() error {
	if s.Length < 0 {
		return errors.Wrap(ErrInvalidConfig, "length must be >= 0")
	}

	switch s.Kind {
	case KindRandom, KindConstant, KindAlternating:
		return nil
	case KindBiased:
		if s.Probability < 0 || s.Probability > 1 {
			return errors.Wrap(ErrInvalidConfig, "probability must be within [0,1]")
		}
		return nil
	case KindLoop:
		if s.Taken < 0 {
			return errors.Wrap(ErrInvalidConfig, "taken must be >= 0")
		}
		if s.Repeats <= 0 {
			return errors.Wrap(ErrInvalidConfig, "repeats must be > 0")
		}
		return nil
	case KindLiteral:
		if s.Repeats < 0 {
			return errors.Wrap(ErrInvalidConfig, "repeats must be >= 0")
		}
		p, err := pattern.Parse(s.Name, s.Outcomes)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "outcomes: %v", err)
		}
		if p.Len() == 0 {
			return errors.Wrap(ErrInvalidConfig, "literal pattern has no outcomes")
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown pattern kind %q", s.Kind)
	}
}

// Generate builds the pattern. defaultLength is used when the spec has no
// length of its own.
func (s PatternSpec) Generate(rng *rand.Rand, defaultLength int) (pattern.Pattern, error) {
	if err := s.Validate(); err != nil {
		return pattern.Pattern{}, err
	}

	n := s.Length
	if n == 0 {
		n = defaultLength
	}

	var (
		p   pattern.Pattern
		err error
	)
	switch s.Kind {
	case KindRandom:
		p, err = pattern.Random(rng, n)
	case KindBiased:
		p, err = pattern.Biased(rng, s.Probability, n)
	case KindLoop:
		p, err = pattern.Loop(s.Taken, s.Repeats)
	case KindConstant:
		p, err = pattern.Constant(s.Value, n)
	case KindAlternating:
		p, err = pattern.Alternating(n)
	case KindLiteral:
		p, err = s.literal()
	}
	if err != nil {
		return pattern.Pattern{}, err
	}

	if s.Name != "" {
		p.Name = s.Name
	}
	return p, nil
}

func (s PatternSpec) literal() (pattern.Pattern, error) {
	cycle, err := pattern.Parse(s.Name, s.Outcomes)
	if err != nil {
		return pattern.Pattern{}, err
	}

	repeats := s.Repeats
	if repeats == 0 {
		repeats = 1
	}

	name := s.Name
	if name == "" {
		name = "literal"
	}
	return pattern.Repeat(name, cycle.Outcomes, repeats)
}
