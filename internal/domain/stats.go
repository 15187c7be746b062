package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Stats-specific validation errors
var (
	// ErrMissionDateEmpty is returned when a daily mission has no date key.
	ErrMissionDateEmpty = errors.New("daily mission date cannot be empty")

	// ErrMissionEmpty is returned when a daily mission carries no word IDs.
	ErrMissionEmpty = errors.New("daily mission must contain at least one word")

	// ErrNegativeStreak is returned when a streak counter is negative.
	ErrNegativeStreak = errors.New("streak cannot be negative")
)

// DailyMission is a frozen, once-per-day subset of the due queue presented
// as a bounded side-challenge. The word ID set is fixed at creation time
// and is not invalidated when the underlying queue changes later that day;
// only Completed is tracked afterwards.
type DailyMission struct {
	Date      string      `json:"date"` // calendar-day key, YYYY-MM-DD
	WordIDs   []uuid.UUID `json:"word_ids"`
	Completed bool        `json:"completed"`
}

// Validate checks if the DailyMission has valid data.
func (m *DailyMission) Validate() error {
	if m.Date == "" {
		return ErrMissionDateEmpty
	}
	if len(m.WordIDs) == 0 {
		return ErrMissionEmpty
	}
	return nil
}

// UserStats is the aggregate engagement record for a user. The streak
// fields are owned exclusively by the engagement evaluator; other
// components read them but never mutate them directly. MasteredCount is
// derived and recomputed from the word set on every committed review.
type UserStats struct {
	UserName             string        `json:"user_name"`
	Streak               int           `json:"streak"`
	LongestStreak        int           `json:"longest_streak"`
	LastStudyDate        string        `json:"last_study_date"` // calendar-day key
	MasteredCount        int           `json:"mastered_count"`
	UnlockedAchievements []string      `json:"unlocked_achievements"`
	DailyMission         *DailyMission `json:"daily_mission,omitempty"`
	JoinDate             time.Time     `json:"join_date"`
}

// NewUserStats creates a zeroed stats record for a user joining now.
func NewUserStats(userName string, now time.Time) *UserStats {
	return &UserStats{
		UserName:             userName,
		Streak:               0,
		LongestStreak:        0,
		LastStudyDate:        "",
		MasteredCount:        0,
		UnlockedAchievements: []string{},
		JoinDate:             now,
	}
}

// Validate checks if the UserStats has valid data.
func (s *UserStats) Validate() error {
	if s.Streak < 0 || s.LongestStreak < 0 {
		return ErrNegativeStreak
	}
	if s.DailyMission != nil {
		if err := s.DailyMission.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasAchievement reports whether the achievement ID is already unlocked.
func (s *UserStats) HasAchievement(id string) bool {
	for _, unlocked := range s.UnlockedAchievements {
		if unlocked == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the stats. Evaluator functions operate on
// copies and return new instances rather than mutating their input.
func (s *UserStats) Clone() *UserStats {
	clone := *s
	clone.UnlockedAchievements = append([]string(nil), s.UnlockedAchievements...)
	if s.DailyMission != nil {
		mission := *s.DailyMission
		mission.WordIDs = append([]uuid.UUID(nil), s.DailyMission.WordIDs...)
		clone.DailyMission = &mission
	}
	return &clone
}

// StudyHistoryEntry records how many items were answered on a given
// calendar day. The history is append-only except for same-day count
// increments.
type StudyHistoryEntry struct {
	Date  string `json:"date"` // calendar-day key, YYYY-MM-DD
	Count int    `json:"count"`
}
