package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

func newTestWord(t *testing.T, status domain.WordStatus, createdAt time.Time) *domain.Word {
	t.Helper()
	word, err := domain.NewWord(uuid.New(), "ephemeral", "lasting for a very short time", createdAt)
	if err != nil {
		t.Fatalf("Failed to create word: %v", err)
	}
	word.Status = status
	return word
}

func TestApplyAnswerCorrectTransitions(t *testing.T) {
	t.Parallel() // Enable parallel execution
	intervals := DefaultIntervals()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		status         domain.WordStatus
		expectedStatus domain.WordStatus
		expectedDelay  time.Duration
	}{
		{
			name:           "NEW advances to LEARNING with the LEARNING interval",
			status:         domain.WordStatusNew,
			expectedStatus: domain.WordStatusLearning,
			expectedDelay:  intervals.Learning,
		},
		{
			name:           "LEARNING advances to MASTERED with the MASTERED interval",
			status:         domain.WordStatusLearning,
			expectedStatus: domain.WordStatusMastered,
			expectedDelay:  intervals.Mastered,
		},
		{
			name:           "MASTERED stays MASTERED and is rescheduled",
			status:         domain.WordStatusMastered,
			expectedStatus: domain.WordStatusMastered,
			expectedDelay:  intervals.Mastered,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			word := newTestWord(t, tc.status, now.Add(-30*24*time.Hour))

			updated, event := ApplyAnswer(word, true, now, intervals)

			if updated.Status != tc.expectedStatus {
				t.Errorf("Expected status %s, got %s", tc.expectedStatus, updated.Status)
			}

			expectedDue := now.Add(tc.expectedDelay)
			if !updated.NextReviewAt.Equal(expectedDue) {
				t.Errorf("Expected next review at %v, got %v", expectedDue, updated.NextReviewAt)
			}

			if !updated.NextReviewAt.After(now) {
				t.Errorf("Expected next review strictly in the future, got %v", updated.NextReviewAt)
			}

			// Correct answers never regress status.
			if updated.Status.Rank() < word.Status.Rank() {
				t.Errorf("Status regressed from %s to %s", word.Status, updated.Status)
			}

			if event.NewStatus != tc.expectedStatus {
				t.Errorf("Expected event status %s, got %s", tc.expectedStatus, event.NewStatus)
			}
		})
	}
}

func TestApplyAnswerIncorrectResetsToNew(t *testing.T) {
	t.Parallel() // Enable parallel execution
	intervals := DefaultIntervals()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, status := range []domain.WordStatus{
		domain.WordStatusNew,
		domain.WordStatusLearning,
		domain.WordStatusMastered,
	} {
		t.Run(string(status), func(t *testing.T) {
			word := newTestWord(t, status, now.Add(-10*24*time.Hour))

			updated, event := ApplyAnswer(word, false, now, intervals)

			if updated.Status != domain.WordStatusNew {
				t.Errorf("Expected status NEW after a lapse, got %s", updated.Status)
			}

			expectedDue := now.Add(10 * time.Minute)
			if !updated.NextReviewAt.Equal(expectedDue) {
				t.Errorf("Expected next review at %v (10m cooldown), got %v",
					expectedDue, updated.NextReviewAt)
			}

			if event.FastMastery {
				t.Error("Incorrect answer must never fire a fast-mastery event")
			}
		})
	}
}

func TestApplyAnswerDoesNotMutateInput(t *testing.T) {
	t.Parallel() // Enable parallel execution
	intervals := DefaultIntervals()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	word := newTestWord(t, domain.WordStatusLearning, now.Add(-time.Hour))

	originalStatus := word.Status
	originalDue := word.NextReviewAt

	updated, _ := ApplyAnswer(word, true, now, intervals)

	if updated == word {
		t.Fatal("ApplyAnswer returned the same object, not a new one")
	}

	if word.Status != originalStatus || !word.NextReviewAt.Equal(originalDue) {
		t.Error("ApplyAnswer mutated its input")
	}
}

func TestApplyAnswerFastMastery(t *testing.T) {
	t.Parallel() // Enable parallel execution
	intervals := DefaultIntervals()
	t0 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Created at t0, answered correctly at t0: NEW → LEARNING, due t0+3d.
	word := newTestWord(t, domain.WordStatusNew, t0)
	learning, event := ApplyAnswer(word, true, t0, intervals)

	if learning.Status != domain.WordStatusLearning {
		t.Fatalf("Expected LEARNING, got %s", learning.Status)
	}
	if !learning.NextReviewAt.Equal(t0.Add(72 * time.Hour)) {
		t.Errorf("Expected next review at t0+3d, got %v", learning.NextReviewAt)
	}
	if event.FastMastery {
		t.Error("Landing on LEARNING must not fire fast mastery")
	}

	// Answered correctly again before the 3-day mark: MASTERED, due +10d,
	// and the fast-mastery event fires.
	answerTime := t0.Add(48 * time.Hour)
	mastered, event := ApplyAnswer(learning, true, answerTime, intervals)

	if mastered.Status != domain.WordStatusMastered {
		t.Fatalf("Expected MASTERED, got %s", mastered.Status)
	}
	if !mastered.NextReviewAt.Equal(answerTime.Add(240 * time.Hour)) {
		t.Errorf("Expected next review at answer time+10d, got %v", mastered.NextReviewAt)
	}
	if !event.FastMastery {
		t.Error("Expected fast-mastery event within 3 days of creation")
	}

	// A mastered word reviewed correctly again must not re-fire the event.
	_, event = ApplyAnswer(mastered, true, answerTime.Add(time.Hour), intervals)
	if event.FastMastery {
		t.Error("Fast mastery must only fire on the first arrival at MASTERED")
	}
}

func TestApplyAnswerFastMasteryOutsideWindow(t *testing.T) {
	t.Parallel() // Enable parallel execution
	intervals := DefaultIntervals()
	t0 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	word := newTestWord(t, domain.WordStatusLearning, t0)

	// Mastered four days after creation: outside the window.
	_, event := ApplyAnswer(word, true, t0.Add(96*time.Hour), intervals)

	if !event.KnewIt {
		t.Error("Expected event to record the correct answer")
	}
	if event.FastMastery {
		t.Error("Mastery after the 3-day window must not count as fast mastery")
	}
}
