package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/store"
)

// PostgresHistoryStore implements the store.HistoryStore interface using
// a PostgreSQL database, one row per (user, day).
type PostgresHistoryStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the
// HistoryStore interface. If logger is nil, a default logger will be used.
func NewPostgresHistoryStore(db *sql.DB, log *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresHistoryStore{
		db:     db,
		logger: log.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore interface
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// Get implements store.HistoryStore.Get.
func (s *PostgresHistoryStore) Get(ctx context.Context, userID uuid.UUID) ([]domain.StudyHistoryEntry, error) {
	query := `
		SELECT date, count
		FROM study_history
		WHERE user_id = $1
		ORDER BY date
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.StudyHistoryEntry
	for rows.Next() {
		var entry domain.StudyHistoryEntry
		if err := rows.Scan(&entry.Date, &entry.Count); err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return entries, nil
}

// Replace implements store.HistoryStore.Replace with a transactional
// delete and insert.
func (s *PostgresHistoryStore) Replace(ctx context.Context, userID uuid.UUID, entries []domain.StudyHistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM study_history WHERE user_id = $1`, userID); err != nil {
		return MapError(err)
	}
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO study_history (user_id, date, count) VALUES ($1, $2, $3)`,
			userID, entry.Date, entry.Count,
		); err != nil {
			return MapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	return nil
}
