package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Collection-specific validation errors
var (
	// ErrCollectionIDEmpty is returned when a collection ID is empty or nil.
	ErrCollectionIDEmpty = errors.New("collection ID cannot be empty")

	// ErrCollectionUserIDEmpty is returned when a collection's user ID is empty or nil.
	ErrCollectionUserIDEmpty = errors.New("collection user ID cannot be empty")

	// ErrCollectionNameEmpty is returned when a collection's name is empty.
	ErrCollectionNameEmpty = errors.New("collection name cannot be empty")
)

// Collection is a user-curated grouping of words. Collections are a
// library-management concern and are inert to scheduling, but the number
// of collections a user keeps feeds the achievement sweep.
type Collection struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Name      string      `json:"name"`
	Icon      string      `json:"icon,omitempty"` // an emoji
	WordIDs   []uuid.UUID `json:"word_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewCollection creates a new empty Collection for the given user.
// Returns an error if validation fails.
func NewCollection(userID uuid.UUID, name, icon string, now time.Time) (*Collection, error) {
	collection := &Collection{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Icon:      icon,
		WordIDs:   []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
func (c *Collection) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCollectionIDEmpty
	}
	if c.UserID == uuid.Nil {
		return ErrCollectionUserIDEmpty
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrCollectionNameEmpty
	}
	return nil
}

// AddWords appends the given word IDs, skipping any already present.
func (c *Collection) AddWords(ids []uuid.UUID, now time.Time) {
	existing := make(map[uuid.UUID]struct{}, len(c.WordIDs))
	for _, id := range c.WordIDs {
		existing[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			c.WordIDs = append(c.WordIDs, id)
			existing[id] = struct{}{}
		}
	}
	c.UpdatedAt = now
}

// RemoveWords removes the given word IDs if present.
func (c *Collection) RemoveWords(ids []uuid.UUID, now time.Time) {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := c.WordIDs[:0]
	for _, id := range c.WordIDs {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	c.WordIDs = kept
	c.UpdatedAt = now
}
