// Package engagement owns the streak and achievement mechanics. It is the
// only component allowed to mutate the streak fields of UserStats; other
// services read stats but route all review-driven updates through here.
package engagement

import "github.com/phrazzld/vortex-api/internal/domain"

// RecordReview folds a completed review into the user's streak state. The
// first review of a calendar day advances the streak by one; every later
// review the same day leaves it unchanged. LastStudyDate is always set to
// today and LongestStreak tracks the high-water mark.
//
// The input stats are not mutated.
func RecordReview(stats *domain.UserStats, today string) *domain.UserStats {
	updated := stats.Clone()
	if updated.LastStudyDate != today {
		updated.Streak++
	}
	updated.LastStudyDate = today
	if updated.Streak > updated.LongestStreak {
		updated.LongestStreak = updated.Streak
	}
	return updated
}

// Sweep evaluates the full achievement table against the given counts and
// unions newly satisfied achievements into the stats. Unlocks are
// monotonic: an achievement once unlocked is never revoked, even when the
// counts later drop below its threshold. The sweep is idempotent and
// cheap enough to run on every state change.
//
// The input stats are not mutated; if nothing unlocks, the clone is
// returned with an unchanged achievement set.
func Sweep(stats *domain.UserStats, counts Counts) (*domain.UserStats, []string) {
	var unlocked []string
	for _, a := range achievements {
		if stats.HasAchievement(a.ID) {
			continue
		}
		if a.Satisfied(counts) {
			unlocked = append(unlocked, a.ID)
		}
	}
	if len(unlocked) == 0 {
		return stats, nil
	}

	updated := stats.Clone()
	updated.UnlockedAchievements = append(updated.UnlockedAchievements, unlocked...)
	return updated, unlocked
}

// MasteredCount recomputes the derived mastered tally from the word set.
// Stored counts are never trusted across commits.
func MasteredCount(words []*domain.Word) int {
	count := 0
	for _, word := range words {
		if word.Status == domain.WordStatusMastered {
			count++
		}
	}
	return count
}
