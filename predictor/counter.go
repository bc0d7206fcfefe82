// Package predictor provides branch direction predictors.
//
// The only predictor implemented is the classic 2-bit saturating counter:
//
//	0 = Strongly Not Taken, 1 = Weakly Not Taken,
//	2 = Weakly Taken,       3 = Strongly Taken
//
// A counter predicts taken in states 2 and 3 and moves one step toward the
// actual outcome on every update, clamping at both ends.
package predictor

// SaturatingCounter is a single 2-bit saturating counter.
type SaturatingCounter struct {
	state State
}

// NewSaturatingCounter creates a counter in the WeaklyNotTaken state.
func NewSaturatingCounter() *SaturatingCounter {
	return &SaturatingCounter{state: InitialState}
}

// NewSaturatingCounterAt creates a counter in the given state. Values above
// StronglyTaken are clamped to StronglyTaken.
func NewSaturatingCounterAt(s State) *SaturatingCounter {
	return &SaturatingCounter{state: s.clamp()}
}

// Predict returns true if the counter predicts taken. It does not change the
// counter state.
func (c *SaturatingCounter) Predict() bool {
	return c.state.Taken()
}

// Update moves the counter one step toward the actual branch outcome.
func (c *SaturatingCounter) Update(taken bool) {
	if taken {
		c.state = c.state.Inc()
	} else {
		c.state = c.state.Dec()
	}
}

// State returns the current counter state.
func (c *SaturatingCounter) State() State {
	return c.state
}

// Reset puts the counter back into its initial state.
func (c *SaturatingCounter) Reset() {
	c.state = InitialState
}
