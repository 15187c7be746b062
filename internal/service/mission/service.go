package mission

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/domain/srs"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
	"github.com/phrazzld/vortex-api/internal/store"
)

// Service lazily materializes the daily mission: the first request of a
// calendar day samples the due queue and persists the assignment, later
// requests return it unchanged.
type Service struct {
	wordStore  store.WordStore
	statsStore store.StatsStore
	clock      clock.Clock
	logger     *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a mission Service.
func NewService(
	wordStore store.WordStore,
	statsStore store.StatsStore,
	clk clock.Clock,
	rng *rand.Rand,
	log *slog.Logger,
) *Service {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}
	if rng == nil {
		panic("rng cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		wordStore:  wordStore,
		statsStore: statsStore,
		clock:      clk,
		rng:        rng,
		logger:     log.With(slog.String("component", "mission_service")),
	}
}

// Today returns the mission for the current calendar day, generating and
// persisting one first when needed. Returns nil without error when
// nothing is due and no mission for today already exists.
func (s *Service) Today(ctx context.Context, userID uuid.UUID) (*domain.DailyMission, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()
	today := domain.DayKey(now)

	stats, err := s.statsStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrStatsNotFound) {
			return nil, err
		}
		stats = domain.NewUserStats("", now)
	}

	words, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	due := srs.SelectDue(words, now)

	s.mu.Lock()
	updated, created := Ensure(stats, due, today, s.rng)
	s.mu.Unlock()

	if created {
		if err := s.statsStore.Replace(ctx, userID, updated); err != nil {
			return nil, err
		}
		log.Debug("daily mission generated",
			slog.String("user_id", userID.String()),
			slog.String("date", today),
			slog.Int("size", len(updated.DailyMission.WordIDs)))
	}

	mission := updated.DailyMission
	if mission == nil || mission.Date != today {
		return nil, nil
	}
	return mission, nil
}
