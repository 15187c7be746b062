package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewUserStats(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := NewUserStats("Vortex Learner", now)

	if stats.Streak != 0 || stats.LongestStreak != 0 {
		t.Error("Expected zeroed streak counters")
	}
	if stats.DailyMission != nil {
		t.Error("Expected no mission on a fresh stats record")
	}
	if len(stats.UnlockedAchievements) != 0 {
		t.Error("Expected no achievements on a fresh stats record")
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestUserStatsClone(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now().UTC()
	stats := NewUserStats("learner", now)
	stats.UnlockedAchievements = []string{"first_memory"}
	stats.DailyMission = &DailyMission{
		Date:    "2025-03-10",
		WordIDs: []uuid.UUID{uuid.New()},
	}

	clone := stats.Clone()

	if clone == stats {
		t.Fatal("Clone returned the same object")
	}

	clone.UnlockedAchievements = append(clone.UnlockedAchievements, "collector")
	clone.DailyMission.Completed = true

	if len(stats.UnlockedAchievements) != 1 {
		t.Error("Mutating the clone's achievements changed the original")
	}
	if stats.DailyMission.Completed {
		t.Error("Mutating the clone's mission changed the original")
	}
}

func TestUserStatsHasAchievement(t *testing.T) {
	t.Parallel() // Enable parallel execution
	stats := NewUserStats("learner", time.Now().UTC())
	stats.UnlockedAchievements = []string{"first_memory", "bronze_mind"}

	if !stats.HasAchievement("first_memory") {
		t.Error("Expected first_memory to be unlocked")
	}
	if stats.HasAchievement("prodigy") {
		t.Error("Expected prodigy to be locked")
	}
}

func TestDailyMissionValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	mission := &DailyMission{Date: "", WordIDs: []uuid.UUID{uuid.New()}}
	if err := mission.Validate(); err != ErrMissionDateEmpty {
		t.Errorf("Expected error %v, got %v", ErrMissionDateEmpty, err)
	}

	mission = &DailyMission{Date: "2025-03-10"}
	if err := mission.Validate(); err != ErrMissionEmpty {
		t.Errorf("Expected error %v, got %v", ErrMissionEmpty, err)
	}

	mission.WordIDs = []uuid.UUID{uuid.New()}
	if err := mission.Validate(); err != nil {
		t.Errorf("Expected valid mission, got %v", err)
	}
}
