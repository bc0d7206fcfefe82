package predictor

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownKind is returned when a predictor kind is not supported.
var ErrUnknownKind = errors.New("unknown predictor kind")

// Predictor predicts the direction of a single branch and learns from the
// actual outcome.
type Predictor interface {
	// Predict returns the predicted direction without changing state.
	Predict() bool
	// Update trains the predictor with the actual direction.
	Update(taken bool)
}

// Kind names a predictor variant.
type Kind string

// KindSaturating2Bit is the 2-bit saturating counter.
const KindSaturating2Bit Kind = "2bit"

// DefaultKind is the predictor used when none is configured.
const DefaultKind = KindSaturating2Bit

// Kinds lists every supported predictor kind.
func Kinds() []Kind {
	return []Kind{KindSaturating2Bit}
}

// ParseKind converts a string to a Kind. An empty string yields DefaultKind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultKind, nil
	}

	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}

	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// New creates a fresh predictor of the given kind.
func New(kind Kind) (Predictor, error) {
	switch kind {
	case KindSaturating2Bit:
		return NewSaturatingCounter(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", string(kind))
	}
}
