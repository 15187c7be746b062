package engagement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
	"github.com/phrazzld/vortex-api/internal/store"
)

// Sweeper re-evaluates the achievement table after non-review state
// changes, so library and collection edits unlock their achievements
// immediately instead of waiting for the next review commit. The review
// pipeline runs its own integrated sweep.
type Sweeper struct {
	wordStore       store.WordStore
	statsStore      store.StatsStore
	collectionStore store.CollectionStore
	clock           clock.Clock
	logger          *slog.Logger
}

// NewSweeper creates a Sweeper over the given stores.
func NewSweeper(
	wordStore store.WordStore,
	statsStore store.StatsStore,
	collectionStore store.CollectionStore,
	clk clock.Clock,
	log *slog.Logger,
) *Sweeper {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if collectionStore == nil {
		panic("collectionStore cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		wordStore:       wordStore,
		statsStore:      statsStore,
		collectionStore: collectionStore,
		clock:           clk,
		logger:          log.With(slog.String("component", "achievement_sweeper")),
	}
}

// Refresh loads the user's words, collections and stats, recomputes the
// derived mastered count and sweeps the achievement table over the
// current tallies, persisting the stats when anything changed. Users
// without a stats record yet get a fresh one on first unlock.
func (s *Sweeper) Refresh(ctx context.Context, userID uuid.UUID) error {
	words, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return err
	}
	collections, err := s.collectionStore.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	stats, err := s.statsStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrStatsNotFound) {
			return err
		}
		stats = domain.NewUserStats("", s.clock.Now())
	}

	mastered := MasteredCount(words)
	masteredChanged := stats.MasteredCount != mastered
	if masteredChanged {
		stats = stats.Clone()
		stats.MasteredCount = mastered
	}

	stats, unlocked := Sweep(stats, Counts{
		Words:       len(words),
		Mastered:    mastered,
		Streak:      stats.Streak,
		Collections: len(collections),
	})
	if len(unlocked) == 0 && !masteredChanged {
		return nil
	}
	if len(unlocked) > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("achievements unlocked",
			slog.String("user_id", userID.String()),
			slog.Any("achievements", unlocked))
	}

	return s.statsStore.Replace(ctx, userID, stats)
}
