package srs

import (
	"time"

	"github.com/phrazzld/vortex-api/internal/domain"
)

// correctTransitions is the status transition table applied when the user
// knew the word. MASTERED maps to itself: a mastered word reviewed
// correctly neither regresses nor advances, but still gets rescheduled
// with the MASTERED interval.
var correctTransitions = map[domain.WordStatus]domain.WordStatus{
	domain.WordStatusNew:      domain.WordStatusLearning,
	domain.WordStatusLearning: domain.WordStatusMastered,
	domain.WordStatusMastered: domain.WordStatusMastered,
}

// ReviewEvent describes the outcome of applying a single answer, for the
// engagement evaluator to consume.
type ReviewEvent struct {
	// KnewIt is the recall outcome the user reported.
	KnewIt bool

	// NewStatus is the status the word landed on.
	NewStatus domain.WordStatus

	// FastMastery is true when this answer moved the word to MASTERED for
	// the first time within the fast-mastery window of its creation.
	FastMastery bool

	// ReviewedAt is the instant the answer was applied.
	ReviewedAt time.Time
}

// ApplyAnswer computes a word's next scheduling state from a recall
// outcome. It never mutates the input; a new Word is returned along with
// the review event.
//
// On a correct answer the status advances along the transition table
// (NEW→LEARNING→MASTERED, MASTERED stays) and the next due timestamp is
// now plus the interval of the resulting status. On an incorrect answer
// the status resets unconditionally to NEW and the short forgot cooldown
// applies, discarding prior progress.
//
// The function is deterministic given its inputs: the only clock it knows
// about is the now parameter.
func ApplyAnswer(word *domain.Word, knewIt bool, now time.Time, intervals Intervals) (*domain.Word, ReviewEvent) {
	updated := *word
	updated.Tags = append([]string(nil), word.Tags...)

	event := ReviewEvent{
		KnewIt:     knewIt,
		ReviewedAt: now,
	}

	if knewIt {
		next, ok := correctTransitions[word.Status]
		if !ok {
			next = domain.WordStatusLearning
		}
		if next == domain.WordStatusMastered &&
			word.Status != domain.WordStatusMastered &&
			now.Sub(word.CreatedAt) < intervals.FastMasteryWindow {
			event.FastMastery = true
		}
		updated.Status = next
		updated.NextReviewAt = now.Add(intervals.ForStatus(next))
	} else {
		updated.Status = domain.WordStatusNew
		updated.NextReviewAt = now.Add(intervals.Forgot)
	}

	updated.UpdatedAt = now
	event.NewStatus = updated.Status

	return &updated, event
}
