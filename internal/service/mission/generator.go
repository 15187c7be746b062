// Package mission generates the once-per-day adaptive micro-mission: a
// bounded random sample of the due queue, frozen at creation time.
package mission

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// minMissionSize is the floor on the number of words in a mission,
// subject to the due queue actually containing that many.
const minMissionSize = 3

// missionFraction is the share of the due queue a mission samples.
const missionFraction = 0.2

// Size returns the mission size for a due queue of n words:
// max(3, ceil(0.2*n)), capped at n. There is no upper bound beyond the
// queue size itself.
func Size(queueLen int) int {
	size := int(float64(queueLen) * missionFraction)
	if float64(size) < float64(queueLen)*missionFraction {
		size++ // ceil
	}
	if size < minMissionSize {
		size = minMissionSize
	}
	if size > queueLen {
		size = queueLen
	}
	return size
}

// Ensure makes sure the user's stats carry a mission for today. It is a
// no-op when a mission dated today already exists, and when the due queue
// is empty (an empty mission is never manufactured; whatever mission was
// there, stale or not, is left untouched).
//
// Otherwise a fresh mission replaces any prior-day mission: a uniform
// random sample without replacement of the due queue, drawn with a
// Fisher-Yates shuffle of the candidate IDs. The assignment is frozen:
// later changes to the due queue do not invalidate it.
//
// The input stats are not mutated; the (possibly new) stats object is
// returned along with a flag reporting whether a mission was created.
func Ensure(stats *domain.UserStats, due []*domain.Word, today string, rng *rand.Rand) (*domain.UserStats, bool) {
	if stats.DailyMission != nil && stats.DailyMission.Date == today {
		return stats, false
	}
	if len(due) == 0 {
		return stats, false
	}

	ids := make([]uuid.UUID, len(due))
	for i, word := range due {
		ids[i] = word.ID
	}
	shuffle(ids, rng)

	updated := stats.Clone()
	updated.DailyMission = &domain.DailyMission{
		Date:      today,
		WordIDs:   ids[:Size(len(due))],
		Completed: false,
	}
	return updated, true
}

// shuffle performs an in-place Fisher-Yates shuffle. A sort-by-random-
// comparator shuffle is biased toward list order and must not be used
// here.
func shuffle(ids []uuid.UUID, rng *rand.Rand) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
