// Package pattern provides branch outcome sequences used to evaluate
// predictors.
//
// Randomised generators never touch the global random source; they take a
// *rand.Rand so that every sequence is reproducible from its seed.
package pattern

import (
	"math/rand"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidPattern is returned when a pattern cannot be generated or parsed.
var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is a named, ordered sequence of branch outcomes. true means taken.
type Pattern struct {
	Name     string
	Outcomes []bool
}

// Len returns the number of outcomes.
func (p Pattern) Len() int {
	return len(p.Outcomes)
}

// TakenCount returns how many outcomes are taken.
func (p Pattern) TakenCount() int {
	n := 0
	for _, o := range p.Outcomes {
		if o {
			n++
		}
	}
	return n
}

// String renders the outcomes as T/N characters.
func (p Pattern) String() string {
	var sb strings.Builder
	sb.Grow(len(p.Outcomes))
	for _, o := range p.Outcomes {
		if o {
			sb.WriteByte('T')
		} else {
			sb.WriteByte('N')
		}
	}
	return sb.String()
}

// NewRand returns a random source seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Parse reads a pattern written as T/N (or 1/0) characters. Case and
// whitespace are ignored.
func Parse(name, s string) (Pattern, error) {
	outcomes := make([]bool, 0, len(s))
	for i, r := range s {
		switch r {
		case 'T', 't', '1':
			outcomes = append(outcomes, true)
		case 'N', 'n', '0':
			outcomes = append(outcomes, false)
		case ' ', '\t', '\n', '\r', ',':
		default:
			return Pattern{}, errors.Wrapf(ErrInvalidPattern,
				"unexpected character %q at offset %d", r, i)
		}
	}

	return Pattern{Name: name, Outcomes: outcomes}, nil
}
