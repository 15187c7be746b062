// Package memory provides in-memory implementations of the store
// contracts. They back the service-layer unit tests and honor the same
// bulk read/replace semantics as the database-backed stores.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/store"
)

// Store implements WordStore, StatsStore, HistoryStore, CollectionStore
// and UserStore over in-process maps. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	words       map[uuid.UUID][]*domain.Word
	stats       map[uuid.UUID]*domain.UserStats
	history     map[uuid.UUID][]domain.StudyHistoryEntry
	collections map[uuid.UUID][]*domain.Collection
	users       map[uuid.UUID]*domain.User
	byEmail     map[string]uuid.UUID
}

// Interface compliance checks. History and collection access go through
// narrow views because their method names collide with the word and stats
// contracts on the same receiver.
var (
	_ store.WordStore       = (*Store)(nil)
	_ store.StatsStore      = (*Store)(nil)
	_ store.UserStore       = (*Store)(nil)
	_ store.HistoryStore    = historyView{}
	_ store.CollectionStore = collectionView{}
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		words:       make(map[uuid.UUID][]*domain.Word),
		stats:       make(map[uuid.UUID]*domain.UserStats),
		history:     make(map[uuid.UUID][]domain.StudyHistoryEntry),
		collections: make(map[uuid.UUID][]*domain.Collection),
		users:       make(map[uuid.UUID]*domain.User),
		byEmail:     make(map[string]uuid.UUID),
	}
}

// GetAll implements store.WordStore.
func (s *Store) GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := make([]*domain.Word, 0, len(s.words[userID]))
	for _, word := range s.words[userID] {
		copied := *word
		words = append(words, &copied)
	}
	return words, nil
}

// ReplaceAll implements store.WordStore.
func (s *Store) ReplaceAll(ctx context.Context, userID uuid.UUID, words []*domain.Word) error {
	for _, word := range words {
		if err := word.Validate(); err != nil {
			return store.NewStoreError("word", "replace_all", "validation failed", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make([]*domain.Word, 0, len(words))
	for _, word := range words {
		copied := *word
		replaced = append(replaced, &copied)
	}
	s.words[userID] = replaced
	return nil
}

// Get implements store.StatsStore.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[userID]
	if !ok {
		return nil, store.ErrStatsNotFound
	}
	return stats.Clone(), nil
}

// Replace implements store.StatsStore.
func (s *Store) Replace(ctx context.Context, userID uuid.UUID, stats *domain.UserStats) error {
	if err := stats.Validate(); err != nil {
		return store.NewStoreError("stats", "replace", "validation failed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[userID] = stats.Clone()
	return nil
}

type historyView struct{ s *Store }

// History returns the store viewed as a HistoryStore.
func (s *Store) History() store.HistoryStore {
	return historyView{s: s}
}

// Get implements store.HistoryStore.
func (v historyView) Get(ctx context.Context, userID uuid.UUID) ([]domain.StudyHistoryEntry, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	return append([]domain.StudyHistoryEntry(nil), v.s.history[userID]...), nil
}

// Replace implements store.HistoryStore.
func (v historyView) Replace(ctx context.Context, userID uuid.UUID, entries []domain.StudyHistoryEntry) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	v.s.history[userID] = append([]domain.StudyHistoryEntry(nil), entries...)
	return nil
}

type collectionView struct{ s *Store }

// Collections returns the store viewed as a CollectionStore.
func (s *Store) Collections() store.CollectionStore {
	return collectionView{s: s}
}

// GetAll implements store.CollectionStore.
func (v collectionView) GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	collections := make([]*domain.Collection, 0, len(v.s.collections[userID]))
	for _, collection := range v.s.collections[userID] {
		copied := *collection
		copied.WordIDs = append([]uuid.UUID(nil), collection.WordIDs...)
		collections = append(collections, &copied)
	}
	return collections, nil
}

// ReplaceAll implements store.CollectionStore.
func (v collectionView) ReplaceAll(ctx context.Context, userID uuid.UUID, collections []*domain.Collection) error {
	for _, collection := range collections {
		if err := collection.Validate(); err != nil {
			return store.NewStoreError("collection", "replace_all", "validation failed", err)
		}
	}

	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	replaced := make([]*domain.Collection, 0, len(collections))
	for _, collection := range collections {
		copied := *collection
		copied.WordIDs = append([]uuid.UUID(nil), collection.WordIDs...)
		replaced = append(replaced, &copied)
	}
	v.s.collections[userID] = replaced
	return nil
}

// Create implements store.UserStore.
func (s *Store) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "validation failed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	copied := *user
	s.users[user.ID] = &copied
	s.byEmail[user.Email] = user.ID
	return nil
}

// GetByEmail implements store.UserStore.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

// GetByID implements store.UserStore.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
