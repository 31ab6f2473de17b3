// Package minigame implements the reaction-time game: a blocking measurement
// between a start signal and the user's key press, and the classification of
// the elapsed time.
package minigame

import "time"

// Rating classifies a reaction time.
type Rating int

const (
	VeryFast Rating = iota
	Fast
	Good
	NeedsImprovement
)

// Upper bounds (inclusive) of each band.
const (
	veryFastLimit = 480 * time.Millisecond
	fastLimit     = 550 * time.Millisecond
	goodLimit     = 650 * time.Millisecond
)

func (r Rating) String() string {
	switch r {
	case VeryFast:
		return "very fast"
	case Fast:
		return "fast"
	case Good:
		return "good"
	default:
		return "needs improvement"
	}
}

// Classify maps an elapsed time to its Rating.
func Classify(elapsed time.Duration) Rating {
	switch {
	case elapsed <= veryFastLimit:
		return VeryFast
	case elapsed <= fastLimit:
		return Fast
	case elapsed <= goodLimit:
		return Good
	default:
		return NeedsImprovement
	}
}
