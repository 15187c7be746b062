package srs

import (
	"time"

	"github.com/phrazzld/vortex-api/internal/domain"
)

// SelectDue filters the word set down to the words due for review at the
// given instant (NextReviewAt <= now). The result preserves the input
// order; callers may re-sort for display. The filter is a single O(n)
// pass and is cheap enough to run on every request.
func SelectDue(words []*domain.Word, now time.Time) []*domain.Word {
	due := make([]*domain.Word, 0, len(words))
	for _, word := range words {
		if !word.NextReviewAt.After(now) {
			due = append(due, word)
		}
	}
	return due
}
