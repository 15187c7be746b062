package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
	"github.com/phrazzld/vortex-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface using a
// PostgreSQL database. ReplaceAll runs the whole-collection swap in a
// transaction, so it needs a *sql.DB rather than a bare DBTX.
type PostgresWordStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. If logger is nil, a default logger will be used.
func NewPostgresWordStore(db *sql.DB, log *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresWordStore{
		db:     db,
		logger: log.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// GetAll implements store.WordStore.GetAll.
func (s *PostgresWordStore) GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, term, definition, example, ipa, tags, image_url,
		       favorite, status, next_review_at, created_at, updated_at
		FROM words
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return words, nil
}

// ReplaceAll implements store.WordStore.ReplaceAll. The user's whole
// word set is swapped atomically: delete then insert inside one
// transaction, last write wins.
func (s *PostgresWordStore) ReplaceAll(ctx context.Context, userID uuid.UUID, words []*domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, word := range words {
		if err := word.Validate(); err != nil {
			return store.NewStoreError("word", "replace_all", "validation failed", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE user_id = $1`, userID); err != nil {
		return MapError(err)
	}

	insert := `
		INSERT INTO words (id, user_id, term, definition, example, ipa, tags, image_url,
		                   favorite, status, next_review_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, word := range words {
		tags, err := json.Marshal(word.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			word.ID, word.UserID, word.Term, word.Definition, word.Example,
			word.IPA, tags, word.ImageURL, word.Favorite, word.Status,
			word.NextReviewAt, word.CreatedAt, word.UpdatedAt,
		); err != nil {
			return MapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}

	log.Debug("words replaced",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	return nil
}

// scanWord reads one word row.
func scanWord(rows *sql.Rows) (*domain.Word, error) {
	var word domain.Word
	var tags []byte
	if err := rows.Scan(
		&word.ID, &word.UserID, &word.Term, &word.Definition, &word.Example,
		&word.IPA, &tags, &word.ImageURL, &word.Favorite, &word.Status,
		&word.NextReviewAt, &word.CreatedAt, &word.UpdatedAt,
	); err != nil {
		return nil, MapError(err)
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &word.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &word, nil
}
