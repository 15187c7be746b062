// Package collections manages user-curated word groupings. Collections
// never influence scheduling; their count feeds the achievement sweep.
package collections

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
	"github.com/phrazzld/vortex-api/internal/service/engagement"
	"github.com/phrazzld/vortex-api/internal/store"
)

// Service implements collection management over the collection store.
type Service struct {
	collectionStore store.CollectionStore
	sweeper         *engagement.Sweeper
	clock           clock.Clock
	logger          *slog.Logger
}

// NewService creates a collections Service.
func NewService(collectionStore store.CollectionStore, sweeper *engagement.Sweeper, clk clock.Clock, log *slog.Logger) *Service {
	if collectionStore == nil {
		panic("collectionStore cannot be nil")
	}
	if sweeper == nil {
		panic("sweeper cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		collectionStore: collectionStore,
		sweeper:         sweeper,
		clock:           clk,
		logger:          log.With(slog.String("component", "collections_service")),
	}
}

// refreshAchievements sweeps the achievement table after the collection
// count changes. The change itself is already persisted; a failed sweep
// is logged and caught up by the next one.
func (s *Service) refreshAchievements(ctx context.Context, userID uuid.UUID) {
	if err := s.sweeper.Refresh(ctx, userID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("achievement refresh failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

// List returns the user's collections.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error) {
	return s.collectionStore.GetAll(ctx, userID)
}

// Create adds a new empty collection.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name, icon string) (*domain.Collection, error) {
	collection, err := domain.NewCollection(userID, name, icon, s.clock.Now())
	if err != nil {
		return nil, err
	}

	existing, err := s.collectionStore.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.collectionStore.ReplaceAll(ctx, userID, append(existing, collection)); err != nil {
		return nil, err
	}
	s.refreshAchievements(ctx, userID)
	return collection, nil
}

// Rename changes a collection's name and icon. Returns store.ErrNotFound
// when the ID does not exist for this user.
func (s *Service) Rename(ctx context.Context, userID, collectionID uuid.UUID, name, icon string) (*domain.Collection, error) {
	var renamed *domain.Collection
	err := s.update(ctx, userID, collectionID, func(collection *domain.Collection) error {
		collection.Name = name
		collection.Icon = icon
		collection.UpdatedAt = s.clock.Now()
		if err := collection.Validate(); err != nil {
			return err
		}
		renamed = collection
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// Delete removes a collection. Words referenced by it are untouched.
func (s *Service) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	existing, err := s.collectionStore.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	remaining := make([]*domain.Collection, 0, len(existing))
	found := false
	for _, collection := range existing {
		if collection.ID == collectionID {
			found = true
			continue
		}
		remaining = append(remaining, collection)
	}
	if !found {
		return store.ErrNotFound
	}

	if err := s.collectionStore.ReplaceAll(ctx, userID, remaining); err != nil {
		return err
	}
	s.refreshAchievements(ctx, userID)
	return nil
}

// AddWords adds word IDs to a collection with set semantics.
func (s *Service) AddWords(ctx context.Context, userID, collectionID uuid.UUID, wordIDs []uuid.UUID) (*domain.Collection, error) {
	var updated *domain.Collection
	err := s.update(ctx, userID, collectionID, func(collection *domain.Collection) error {
		collection.AddWords(wordIDs, s.clock.Now())
		updated = collection
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveWords removes word IDs from a collection.
func (s *Service) RemoveWords(ctx context.Context, userID, collectionID uuid.UUID, wordIDs []uuid.UUID) (*domain.Collection, error) {
	var updated *domain.Collection
	err := s.update(ctx, userID, collectionID, func(collection *domain.Collection) error {
		collection.RemoveWords(wordIDs, s.clock.Now())
		updated = collection
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// update loads the collection set, applies fn to the matching collection
// and writes the whole set back.
func (s *Service) update(ctx context.Context, userID, collectionID uuid.UUID, fn func(*domain.Collection) error) error {
	existing, err := s.collectionStore.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for _, collection := range existing {
		if collection.ID != collectionID {
			continue
		}
		if err := fn(collection); err != nil {
			return err
		}
		found = true
		break
	}
	if !found {
		return store.ErrNotFound
	}

	return s.collectionStore.ReplaceAll(ctx, userID, existing)
}
