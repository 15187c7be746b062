package srs

import (
	"time"

	"github.com/phrazzld/vortex-api/internal/domain"
)

// Intervals defines the fixed mapping from each post-answer status (plus
// the special forgot case) to the duration added to "now" when computing
// a word's next due timestamp. These are configuration constants, not
// derived values.
type Intervals struct {
	// New, Learning and Mastered apply after a correct answer, keyed by
	// the status the word lands on.
	New      time.Duration
	Learning time.Duration
	Mastered time.Duration

	// Forgot is the cooldown after an incorrect answer. It is deliberately
	// short: the intent is rapid re-exposure after a lapse, distinct from
	// the New interval used for brand-new words.
	Forgot time.Duration

	// FastMasteryWindow is how soon after creation a word must reach
	// MASTERED for the review to count as a fast-mastery event.
	FastMasteryWindow time.Duration
}

// DefaultIntervals returns the standard interval table:
// NEW 1 day, LEARNING 3 days, MASTERED 10 days, FORGOT 10 minutes,
// fast-mastery window 3 days.
func DefaultIntervals() Intervals {
	return Intervals{
		New:               24 * time.Hour,
		Learning:          72 * time.Hour,
		Mastered:          240 * time.Hour,
		Forgot:            10 * time.Minute,
		FastMasteryWindow: 72 * time.Hour,
	}
}

// ForStatus returns the reschedule interval for a word landing on the
// given status after a correct answer.
func (iv Intervals) ForStatus(status domain.WordStatus) time.Duration {
	switch status {
	case domain.WordStatusLearning:
		return iv.Learning
	case domain.WordStatusMastered:
		return iv.Mastered
	default:
		return iv.New
	}
}
