package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// StatsStore defines the persistence contract for the per-user engagement
// aggregate (streaks, achievements, daily mission).
type StatsStore interface {
	// Get returns the user's stats record.
	// Returns ErrStatsNotFound if no record exists yet; callers typically
	// respond by creating a fresh domain.NewUserStats.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)

	// Replace overwrites the user's stats record, creating it if absent.
	Replace(ctx context.Context, userID uuid.UUID, stats *domain.UserStats) error
}
