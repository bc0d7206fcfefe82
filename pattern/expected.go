package pattern

// LoopSteadyStateAccuracy returns the long-run accuracy of a 2-bit
// saturating counter on Loop(k, m) as m grows.
//
// For k >= 2 the counter sits in StronglyTaken at the loop exit, drops to
// WeaklyTaken on the single not-taken outcome and is back on the next taken
// outcome, so exactly one of every k+1 outcomes is mispredicted. For k == 1
// the counter oscillates between the two weak states and mispredicts every
// outcome. For k == 0 every outcome is not taken.
func LoopSteadyStateAccuracy(k int) float64 {
	switch {
	case k < 0:
		return 0
	case k == 0:
		return 1
	case k == 1:
		return 0
	default:
		return float64(k) / float64(k+1)
	}
}

// LoopExpectedCorrect returns the exact number of correct predictions a
// fresh 2-bit saturating counter (WeaklyNotTaken) makes on Loop(k, m).
//
// For k >= 2 the first taken outcome of the first cycle is the only extra
// miss, giving m(k+1) - (m+1).
func LoopExpectedCorrect(k, m int) int {
	switch {
	case k < 0 || m <= 0:
		return 0
	case k == 0:
		return m
	case k == 1:
		return 0
	default:
		return m*(k+1) - (m + 1)
	}
}
