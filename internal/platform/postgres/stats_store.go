package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
	"github.com/phrazzld/vortex-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface using a
// PostgreSQL database. The achievement set and daily mission are stored
// as JSONB alongside the scalar counters.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface. If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db store.DBTX, log *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresStatsStore{
		db:     db,
		logger: log.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// Get implements store.StatsStore.Get.
func (s *PostgresStatsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	query := `
		SELECT user_name, streak, longest_streak, last_study_date,
		       mastered_count, unlocked_achievements, daily_mission, join_date
		FROM user_stats
		WHERE user_id = $1
	`
	var stats domain.UserStats
	var achievements, mission []byte
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserName, &stats.Streak, &stats.LongestStreak, &stats.LastStudyDate,
		&stats.MasteredCount, &achievements, &mission, &stats.JoinDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStatsNotFound
		}
		return nil, MapError(err)
	}

	if len(achievements) > 0 {
		if err := json.Unmarshal(achievements, &stats.UnlockedAchievements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal achievements: %w", err)
		}
	}
	if len(mission) > 0 {
		if err := json.Unmarshal(mission, &stats.DailyMission); err != nil {
			return nil, fmt.Errorf("failed to unmarshal daily mission: %w", err)
		}
	}
	return &stats, nil
}

// Replace implements store.StatsStore.Replace via upsert.
func (s *PostgresStatsStore) Replace(ctx context.Context, userID uuid.UUID, stats *domain.UserStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stats.Validate(); err != nil {
		return store.NewStoreError("stats", "replace", "validation failed", err)
	}

	achievements, err := json.Marshal(stats.UnlockedAchievements)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}
	var mission []byte
	if stats.DailyMission != nil {
		mission, err = json.Marshal(stats.DailyMission)
		if err != nil {
			return fmt.Errorf("failed to marshal daily mission: %w", err)
		}
	}

	query := `
		INSERT INTO user_stats (user_id, user_name, streak, longest_streak, last_study_date,
		                        mastered_count, unlocked_achievements, daily_mission, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			streak = EXCLUDED.streak,
			longest_streak = EXCLUDED.longest_streak,
			last_study_date = EXCLUDED.last_study_date,
			mastered_count = EXCLUDED.mastered_count,
			unlocked_achievements = EXCLUDED.unlocked_achievements,
			daily_mission = EXCLUDED.daily_mission,
			join_date = EXCLUDED.join_date
	`
	if _, err := s.db.ExecContext(ctx, query,
		userID, stats.UserName, stats.Streak, stats.LongestStreak, stats.LastStudyDate,
		stats.MasteredCount, achievements, mission, stats.JoinDate,
	); err != nil {
		log.Error("failed to replace stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}
	return nil
}
