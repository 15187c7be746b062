package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/store"
)

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database. Word membership is stored as a JSONB ID
// array on each collection row.
type PostgresCollectionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of
// the CollectionStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresCollectionStore(db *sql.DB, log *slog.Logger) *PostgresCollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresCollectionStore{
		db:     db,
		logger: log.With(slog.String("component", "collection_store")),
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore interface
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// GetAll implements store.CollectionStore.GetAll.
func (s *PostgresCollectionStore) GetAll(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error) {
	query := `
		SELECT id, user_id, name, icon, word_ids, created_at, updated_at
		FROM collections
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var collections []*domain.Collection
	for rows.Next() {
		var collection domain.Collection
		var wordIDs []byte
		if err := rows.Scan(
			&collection.ID, &collection.UserID, &collection.Name, &collection.Icon,
			&wordIDs, &collection.CreatedAt, &collection.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		if len(wordIDs) > 0 {
			if err := json.Unmarshal(wordIDs, &collection.WordIDs); err != nil {
				return nil, fmt.Errorf("failed to unmarshal word IDs: %w", err)
			}
		}
		collections = append(collections, &collection)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return collections, nil
}

// ReplaceAll implements store.CollectionStore.ReplaceAll with a
// transactional delete and insert.
func (s *PostgresCollectionStore) ReplaceAll(ctx context.Context, userID uuid.UUID, collections []*domain.Collection) error {
	for _, collection := range collections {
		if err := collection.Validate(); err != nil {
			return store.NewStoreError("collection", "replace_all", "validation failed", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE user_id = $1`, userID); err != nil {
		return MapError(err)
	}

	insert := `
		INSERT INTO collections (id, user_id, name, icon, word_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, collection := range collections {
		wordIDs, err := json.Marshal(collection.WordIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal word IDs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			collection.ID, collection.UserID, collection.Name, collection.Icon,
			wordIDs, collection.CreatedAt, collection.UpdatedAt,
		); err != nil {
			return MapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	return nil
}
