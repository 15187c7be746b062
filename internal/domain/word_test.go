package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWord(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	word, err := NewWord(userID, "  Serendipity ", "a happy accident", now)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if word.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if word.Term != "Serendipity" {
		t.Errorf("Expected trimmed term %q, got %q", "Serendipity", word.Term)
	}

	if word.Status != WordStatusNew {
		t.Errorf("Expected status NEW, got %s", word.Status)
	}

	// New words are immediately due.
	if !word.NextReviewAt.Equal(now) {
		t.Errorf("Expected NextReviewAt %v, got %v", now, word.NextReviewAt)
	}

	if !word.CreatedAt.Equal(now) {
		t.Errorf("Expected CreatedAt %v, got %v", now, word.CreatedAt)
	}

	// Test invalid user ID
	_, err = NewWord(uuid.Nil, "term", "definition", now)
	if err != ErrWordUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordUserIDEmpty, err)
	}

	// Test empty term
	_, err = NewWord(userID, "   ", "definition", now)
	if err != ErrWordTermEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordTermEmpty, err)
	}

	// Test empty definition
	_, err = NewWord(userID, "term", "", now)
	if err != ErrWordDefinitionEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordDefinitionEmpty, err)
	}
}

func TestWordStatusRank(t *testing.T) {
	t.Parallel() // Enable parallel execution
	if !(WordStatusNew.Rank() < WordStatusLearning.Rank() &&
		WordStatusLearning.Rank() < WordStatusMastered.Rank()) {
		t.Error("Expected NEW < LEARNING < MASTERED ordering")
	}

	if WordStatus("BOGUS").Rank() != -1 {
		t.Error("Expected unknown status to rank below NEW")
	}

	if WordStatus("BOGUS").IsValid() {
		t.Error("Expected unknown status to be invalid")
	}
}

func TestNormalizeTerm(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		in       string
		expected string
	}{
		{"Ephemeral", "ephemeral"},
		{"  SERENDIPITY  ", "serendipity"},
		{"meticulous", "meticulous"},
	}

	for _, tc := range testCases {
		if got := NormalizeTerm(tc.in); got != tc.expected {
			t.Errorf("NormalizeTerm(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestDayKey(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ts := time.Date(2025, 3, 10, 23, 55, 0, 0, time.UTC)
	if got := DayKey(ts); got != "2025-03-10" {
		t.Errorf("Expected day key 2025-03-10, got %s", got)
	}

	// Two instants on the same calendar day share a key.
	if DayKey(ts) != DayKey(ts.Add(-23*time.Hour)) {
		t.Error("Expected same-day instants to share a day key")
	}

	// Midnight rolls the key over.
	if DayKey(ts) == DayKey(ts.Add(10*time.Minute)) {
		t.Error("Expected the key to change across midnight")
	}
}
