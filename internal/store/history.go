package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// HistoryStore defines the persistence contract for the per-user study
// history (one entry per calendar day with at least one answered item).
type HistoryStore interface {
	// Get returns the user's study history, oldest first. Returns an empty
	// slice, not an error, when no reviews have been recorded.
	Get(ctx context.Context, userID uuid.UUID) ([]domain.StudyHistoryEntry, error)

	// Replace overwrites the user's study history with the given entries.
	Replace(ctx context.Context, userID uuid.UUID, entries []domain.StudyHistoryEntry) error
}
