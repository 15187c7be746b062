package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// WordStore defines the persistence contract for a user's word library.
//
// The contract is deliberately coarse: read the whole library, replace the
// whole library. The engine mutates words in memory (optimistically) and
// persists the full set afterwards; a crash before persistence completes
// loses at most the last mutation. In a multi-device scenario the replace
// granularity makes last-write-wins the de facto conflict policy.
type WordStore interface {
	// GetAll returns every word in the user's library. Returns an empty
	// slice, not an error, when the library is empty.
	GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error)

	// ReplaceAll atomically replaces the user's entire library with the
	// given word set. All words must be valid according to domain rules
	// and belong to the given user.
	ReplaceAll(ctx context.Context, userID uuid.UUID, words []*domain.Word) error
}
