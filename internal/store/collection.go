package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// CollectionStore defines the persistence contract for a user's word
// collections, with the same bulk read/replace semantics as WordStore.
type CollectionStore interface {
	// GetAll returns every collection owned by the user.
	GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error)

	// ReplaceAll atomically replaces the user's collections.
	ReplaceAll(ctx context.Context, userID uuid.UUID, collections []*domain.Collection) error
}
