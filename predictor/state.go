package predictor

import "fmt"

// State is the confidence level of a 2-bit saturating counter.
// The zero value is StronglyNotTaken.
type State uint8

// Counter states, ordered from strongly not-taken to strongly taken.
const (
	StronglyNotTaken State = iota
	WeaklyNotTaken
	WeaklyTaken
	StronglyTaken
)

// InitialState is the state a freshly created counter starts in.
const InitialState = WeaklyNotTaken

// Valid reports whether s is one of the four counter states.
func (s State) Valid() bool {
	return s <= StronglyTaken
}

// Taken reports whether the state predicts a taken branch (2 or 3).
func (s State) Taken() bool {
	return s >= WeaklyTaken
}

// Inc returns the next state toward StronglyTaken, saturating at the top.
func (s State) Inc() State {
	s = s.clamp()
	if s == StronglyTaken {
		return s
	}
	return s + 1
}

// Dec returns the next state toward StronglyNotTaken, saturating at the bottom.
func (s State) Dec() State {
	s = s.clamp()
	if s == StronglyNotTaken {
		return s
	}
	return s - 1
}

// clamp maps any raw value onto the nearest valid state.
func (s State) clamp() State {
	if s > StronglyTaken {
		return StronglyTaken
	}
	return s
}

func (s State) String() string {
	switch s {
	case StronglyNotTaken:
		return "StronglyNotTaken"
	case WeaklyNotTaken:
		return "WeaklyNotTaken"
	case WeaklyTaken:
		return "WeaklyTaken"
	case StronglyTaken:
		return "StronglyTaken"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
