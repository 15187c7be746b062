package srs

import (
	"testing"
	"time"

	"github.com/phrazzld/vortex-api/internal/domain"
)

func TestSelectDue(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	overdue := newTestWord(t, domain.WordStatusLearning, now.Add(-48*time.Hour))
	overdue.NextReviewAt = now.Add(-time.Hour)

	dueExactly := newTestWord(t, domain.WordStatusNew, now.Add(-24*time.Hour))
	dueExactly.NextReviewAt = now

	future := newTestWord(t, domain.WordStatusMastered, now.Add(-30*24*time.Hour))
	future.NextReviewAt = now.Add(time.Minute)

	words := []*domain.Word{future, overdue, dueExactly}

	due := SelectDue(words, now)

	if len(due) != 2 {
		t.Fatalf("Expected 2 due words, got %d", len(due))
	}

	// Input order is preserved for the matching entries.
	if due[0].ID != overdue.ID || due[1].ID != dueExactly.ID {
		t.Error("Expected due queue to preserve input order")
	}
}

func TestSelectDueIdempotent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	words := make([]*domain.Word, 0, 6)
	for i := 0; i < 6; i++ {
		word := newTestWord(t, domain.WordStatusNew, now.Add(-24*time.Hour))
		if i%2 == 0 {
			word.NextReviewAt = now.Add(-time.Duration(i) * time.Minute)
		} else {
			word.NextReviewAt = now.Add(time.Duration(i) * time.Minute)
		}
		words = append(words, word)
	}

	first := SelectDue(words, now)
	second := SelectDue(words, now)

	if len(first) != len(second) {
		t.Fatalf("Expected identical results, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Result differs at index %d", i)
		}
	}

	// Filtering the filtered set changes nothing.
	third := SelectDue(first, now)
	if len(third) != len(first) {
		t.Errorf("Expected filter to be idempotent, got %d from %d", len(third), len(first))
	}
}

func TestSelectDueEmptyInput(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now().UTC()

	due := SelectDue(nil, now)
	if len(due) != 0 {
		t.Errorf("Expected empty queue for nil input, got %d", len(due))
	}

	due = SelectDue([]*domain.Word{}, now)
	if len(due) != 0 {
		t.Errorf("Expected empty queue for empty input, got %d", len(due))
	}
}
