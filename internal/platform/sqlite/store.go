// Package sqlite provides a single-file SQLite implementation of the
// store interfaces, selected by database.driver=sqlite. It honors the
// same bulk read/replace contracts as the PostgreSQL backend and suits
// single-node personal deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS words (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	term TEXT NOT NULL,
	definition TEXT NOT NULL,
	example TEXT NOT NULL DEFAULT '',
	ipa TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	image_url TEXT NOT NULL DEFAULT '',
	favorite INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	next_review_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_words_user ON words(user_id);
CREATE TABLE IF NOT EXISTS user_stats (
	user_id TEXT PRIMARY KEY,
	user_name TEXT NOT NULL DEFAULT '',
	streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	last_study_date TEXT NOT NULL DEFAULT '',
	mastered_count INTEGER NOT NULL DEFAULT 0,
	unlocked_achievements TEXT NOT NULL DEFAULT '[]',
	daily_mission TEXT,
	join_date TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS study_history (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (user_id, date)
);
CREATE TABLE IF NOT EXISTS collections (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	icon TEXT NOT NULL DEFAULT '',
	word_ids TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_collections_user ON collections(user_id);
`

// Store implements WordStore, StatsStore and UserStore over a SQLite
// database. History and collection access go through narrow views
// because their method names collide with the word and stats contracts
// on the same receiver.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Interface compliance checks.
var (
	_ store.WordStore       = (*Store)(nil)
	_ store.StatsStore      = (*Store)(nil)
	_ store.UserStore       = (*Store)(nil)
	_ store.HistoryStore    = historyView{}
	_ store.CollectionStore = collectionView{}
)

// Open opens (creating if needed) the SQLite database at path and
// applies the schema. If logger is nil, a default logger will be used.
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// The sqlite driver serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent transactions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: log.With(slog.String("component", "sqlite_store")),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetAll implements store.WordStore.
func (s *Store) GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, term, definition, example, ipa, tags, image_url,
		       favorite, status, next_review_at, created_at, updated_at
		FROM words WHERE user_id = ? ORDER BY created_at, id`, userID.String())
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		var word domain.Word
		var id, userIDStr, tags string
		if err := rows.Scan(
			&id, &userIDStr, &word.Term, &word.Definition, &word.Example,
			&word.IPA, &tags, &word.ImageURL, &word.Favorite, &word.Status,
			&word.NextReviewAt, &word.CreatedAt, &word.UpdatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		if word.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid word id %q: %w", id, err)
		}
		if word.UserID, err = uuid.Parse(userIDStr); err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", userIDStr, err)
		}
		if err := json.Unmarshal([]byte(tags), &word.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		words = append(words, &word)
	}
	return words, rows.Err()
}

// ReplaceAll implements store.WordStore.
func (s *Store) ReplaceAll(ctx context.Context, userID uuid.UUID, words []*domain.Word) error {
	for _, word := range words {
		if err := word.Validate(); err != nil {
			return store.NewStoreError("word", "replace_all", "validation failed", err)
		}
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE user_id = ?`, userID.String()); err != nil {
			return err
		}
		for _, word := range words {
			tags, err := json.Marshal(word.Tags)
			if err != nil {
				return fmt.Errorf("failed to marshal tags: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO words (id, user_id, term, definition, example, ipa, tags, image_url,
				                   favorite, status, next_review_at, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				word.ID.String(), word.UserID.String(), word.Term, word.Definition,
				word.Example, word.IPA, string(tags), word.ImageURL, word.Favorite,
				string(word.Status), word.NextReviewAt, word.CreatedAt, word.UpdatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get implements store.StatsStore.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	var stats domain.UserStats
	var achievements string
	var mission sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT user_name, streak, longest_streak, last_study_date,
		       mastered_count, unlocked_achievements, daily_mission, join_date
		FROM user_stats WHERE user_id = ?`, userID.String()).Scan(
		&stats.UserName, &stats.Streak, &stats.LongestStreak, &stats.LastStudyDate,
		&stats.MasteredCount, &achievements, &mission, &stats.JoinDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStatsNotFound
		}
		return nil, mapError(err)
	}

	if err := json.Unmarshal([]byte(achievements), &stats.UnlockedAchievements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal achievements: %w", err)
	}
	if mission.Valid && mission.String != "" {
		if err := json.Unmarshal([]byte(mission.String), &stats.DailyMission); err != nil {
			return nil, fmt.Errorf("failed to unmarshal daily mission: %w", err)
		}
	}
	return &stats, nil
}

// Replace implements store.StatsStore via upsert.
func (s *Store) Replace(ctx context.Context, userID uuid.UUID, stats *domain.UserStats) error {
	if err := stats.Validate(); err != nil {
		return store.NewStoreError("stats", "replace", "validation failed", err)
	}

	achievements, err := json.Marshal(stats.UnlockedAchievements)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}
	var mission any
	if stats.DailyMission != nil {
		encoded, err := json.Marshal(stats.DailyMission)
		if err != nil {
			return fmt.Errorf("failed to marshal daily mission: %w", err)
		}
		mission = string(encoded)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_stats (user_id, user_name, streak, longest_streak, last_study_date,
		                        mastered_count, unlocked_achievements, daily_mission, join_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			user_name = excluded.user_name,
			streak = excluded.streak,
			longest_streak = excluded.longest_streak,
			last_study_date = excluded.last_study_date,
			mastered_count = excluded.mastered_count,
			unlocked_achievements = excluded.unlocked_achievements,
			daily_mission = excluded.daily_mission,
			join_date = excluded.join_date`,
		userID.String(), stats.UserName, stats.Streak, stats.LongestStreak,
		stats.LastStudyDate, stats.MasteredCount, string(achievements), mission, stats.JoinDate,
	)
	return mapError(err)
}

type historyView struct{ s *Store }

// History returns the store viewed as a HistoryStore.
func (s *Store) History() store.HistoryStore {
	return historyView{s: s}
}

// Get implements store.HistoryStore.
func (v historyView) Get(ctx context.Context, userID uuid.UUID) ([]domain.StudyHistoryEntry, error) {
	rows, err := v.s.db.QueryContext(ctx,
		`SELECT date, count FROM study_history WHERE user_id = ? ORDER BY date`, userID.String())
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.StudyHistoryEntry
	for rows.Next() {
		var entry domain.StudyHistoryEntry
		if err := rows.Scan(&entry.Date, &entry.Count); err != nil {
			return nil, mapError(err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Replace implements store.HistoryStore.
func (v historyView) Replace(ctx context.Context, userID uuid.UUID, entries []domain.StudyHistoryEntry) error {
	return v.s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM study_history WHERE user_id = ?`, userID.String()); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO study_history (user_id, date, count) VALUES (?, ?, ?)`,
				userID.String(), entry.Date, entry.Count,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

type collectionView struct{ s *Store }

// Collections returns the store viewed as a CollectionStore.
func (s *Store) Collections() store.CollectionStore {
	return collectionView{s: s}
}

// GetAll implements store.CollectionStore.
func (v collectionView) GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error) {
	rows, err := v.s.db.QueryContext(ctx, `
		SELECT id, user_id, name, icon, word_ids, created_at, updated_at
		FROM collections WHERE user_id = ? ORDER BY created_at, id`, userID.String())
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var collections []*domain.Collection
	for rows.Next() {
		var collection domain.Collection
		var id, userIDStr, wordIDs string
		if err := rows.Scan(
			&id, &userIDStr, &collection.Name, &collection.Icon,
			&wordIDs, &collection.CreatedAt, &collection.UpdatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		if collection.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid collection id %q: %w", id, err)
		}
		if collection.UserID, err = uuid.Parse(userIDStr); err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", userIDStr, err)
		}
		if err := json.Unmarshal([]byte(wordIDs), &collection.WordIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal word IDs: %w", err)
		}
		collections = append(collections, &collection)
	}
	return collections, rows.Err()
}

// ReplaceAll implements store.CollectionStore.
func (v collectionView) ReplaceAll(ctx context.Context, userID uuid.UUID, collections []*domain.Collection) error {
	for _, collection := range collections {
		if err := collection.Validate(); err != nil {
			return store.NewStoreError("collection", "replace_all", "validation failed", err)
		}
	}

	return v.s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE user_id = ?`, userID.String()); err != nil {
			return err
		}
		for _, collection := range collections {
			wordIDs, err := json.Marshal(collection.WordIDs)
			if err != nil {
				return fmt.Errorf("failed to marshal word IDs: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO collections (id, user_id, name, icon, word_ids, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				collection.ID.String(), collection.UserID.String(), collection.Name,
				collection.Icon, string(wordIDs), collection.CreatedAt, collection.UpdatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Create implements store.UserStore.
func (s *Store) Create(ctx context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "hashed password missing", domain.ErrEmptyHashedPassword)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, hashed_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID.String(), user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		return mapError(err)
	}
	return nil
}

// GetByEmail implements store.UserStore.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, `SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE email = ?`, email)
}

// GetByID implements store.UserStore.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getUser(ctx, `SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE id = ?`, id.String())
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var id string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&id, &user.Email, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, mapError(err)
	}
	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return &user, nil
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	return nil
}

// mapError maps SQLite errors onto the store sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

// isUniqueViolation detects SQLITE_CONSTRAINT_UNIQUE. The modernc driver
// exposes the code in the error string.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
