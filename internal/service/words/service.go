// Package words manages the user's word library: creation with duplicate
// detection, listing, deletion and quick-start seeding. Scheduling state
// is owned by the review pipeline; this service never touches it beyond
// the immediately-due defaults a new word gets.
package words

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

// CreateWordInput carries the caller-supplied fields of a new word.
// Everything beyond term and definition is optional flavor.
type CreateWordInput struct {
	Term       string
	Definition string
	Example    string
	IPA        string
	Tags       []string
	ImageURL   string
}

// Service implements library management over the word store.
type Service struct {
	wordStore store.WordStore
	sweeper   *engagement.Sweeper
	clock     clock.Clock
	logger    *slog.Logger
}

// NewService creates a words Service.
func NewService(wordStore store.WordStore, sweeper *engagement.Sweeper, clk clock.Clock, log *slog.Logger) *Service {
	if wordStore == nil {
		panic("wordStore cannot be nil")
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
		wordStore: wordStore,
		sweeper:   sweeper,
		clock:     clk,
		logger:    log.With(slog.String("component", "words_service")),
	}
}

// refreshAchievements sweeps the achievement table after a library
// change. The change itself is already persisted; a failed sweep is
// logged and caught up by the next one.
func (s *Service) refreshAchievements(ctx context.Context, userID uuid.UUID) {
	if err := s.sweeper.Refresh(ctx, userID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("achievement refresh failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

// List returns the user's full word library.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	return s.wordStore.GetAll(ctx, userID)
}

// Create adds a new word to the library. Terms are compared
// case-insensitively after trimming; a clash returns
// store.ErrDuplicateTerm. The new word starts NEW and immediately due.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateWordInput) (*domain.Word, error) {
	now := s.clock.Now()

	word, err := domain.NewWord(userID, input.Term, input.Definition, now)
	if err != nil {
		return nil, err
	}
	word.Example = input.Example
	word.IPA = input.IPA
	word.Tags = input.Tags
	word.ImageURL = input.ImageURL

	existing, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	normalized := domain.NormalizeTerm(word.Term)
	for _, other := range existing {
		if domain.NormalizeTerm(other.Term) == normalized {
			return nil, store.ErrDuplicateTerm
		}
	}

	if err := s.wordStore.ReplaceAll(ctx, userID, append(existing, word)); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("word created",
		slog.String("user_id", userID.String()),
		slog.String("word_id", word.ID.String()))
	s.refreshAchievements(ctx, userID)
	return word, nil
}

// Delete removes a word from the library. Returns store.ErrNotFound when
// the ID does not exist for this user.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, wordID uuid.UUID) error {
	existing, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	remaining := make([]*domain.Word, 0, len(existing))
	found := false
	for _, word := range existing {
		if word.ID == wordID {
			found = true
			continue
		}
		remaining = append(remaining, word)
	}
	if !found {
		return store.ErrNotFound
	}

	if err := s.wordStore.ReplaceAll(ctx, userID, remaining); err != nil {
		return err
	}
	s.refreshAchievements(ctx, userID)
	return nil
}

// QuickStart seeds the library with the starter words, skipping any whose
// term the user already has. Returns the words actually added.
func (s *Service) QuickStart(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	now := s.clock.Now()

	existing, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, word := range existing {
		taken[domain.NormalizeTerm(word.Term)] = struct{}{}
	}

	var added []*domain.Word
	for _, starter := range starterWords {
		if _, ok := taken[domain.NormalizeTerm(starter.Term)]; ok {
			continue
		}
		word, err := domain.NewWord(userID, starter.Term, starter.Definition, now)
		if err != nil {
			return nil, err
		}
		word.Example = starter.Example
		word.IPA = starter.IPA
		word.Tags = append([]string(nil), starter.Tags...)
		word.ImageURL = starter.ImageURL
		added = append(added, word)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := s.wordStore.ReplaceAll(ctx, userID, append(existing, added...)); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("library seeded",
		slog.String("user_id", userID.String()),
		slog.Int("added", len(added)))
	s.refreshAchievements(ctx, userID)
	return added, nil
}
