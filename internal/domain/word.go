package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordStatus represents a word's position in the learning lifecycle.
type WordStatus string

// Possible word status values, in order of progression.
const (
	WordStatusNew      WordStatus = "NEW"
	WordStatusLearning WordStatus = "LEARNING"
	WordStatusMastered WordStatus = "MASTERED"
)

// statusRank orders the lifecycle states. Used to assert that correct
// answers never regress a word's status.
var statusRank = map[WordStatus]int{
	WordStatusNew:      0,
	WordStatusLearning: 1,
	WordStatusMastered: 2,
}

// Rank returns the ordinal position of the status in the learning
// progression (NEW < LEARNING < MASTERED). Unknown statuses rank below NEW.
func (s WordStatus) Rank() int {
	rank, ok := statusRank[s]
	if !ok {
		return -1
	}
	return rank
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s WordStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordUserIDEmpty is returned when a word's user ID is empty or nil.
	ErrWordUserIDEmpty = errors.New("word user ID cannot be empty")

	// ErrWordTermEmpty is returned when a word's term is empty or whitespace.
	ErrWordTermEmpty = errors.New("word term cannot be empty")

	// ErrWordDefinitionEmpty is returned when a word's definition is empty.
	ErrWordDefinitionEmpty = errors.New("word definition cannot be empty")

	// ErrWordStatusInvalid is returned when a word's status is not a known
	// lifecycle state.
	ErrWordStatusInvalid = errors.New("word status must be NEW, LEARNING or MASTERED")
)

// Word represents a single learnable term/definition pair with its own
// scheduling state. The display fields (Example, IPA, Tags, ImageURL,
// Favorite) are inert to scheduling; only Status and NextReviewAt are
// moved by the scheduling policy.
type Word struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Term         string     `json:"term"`
	Definition   string     `json:"definition"`
	Example      string     `json:"example,omitempty"`
	IPA          string     `json:"ipa,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	Favorite     bool       `json:"favorite"`
	Status       WordStatus `json:"status"`
	NextReviewAt time.Time  `json:"next_review_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewWord creates a new Word owned by the given user. New words start in
// the NEW status with NextReviewAt set to now, so they are immediately due
// for their first review. CreatedAt is immutable after this point; the
// fast-mastery check depends on it.
// Returns an error if validation fails.
func NewWord(userID uuid.UUID, term, definition string, now time.Time) (*Word, error) {
	word := &Word{
		ID:           uuid.New(),
		UserID:       userID,
		Term:         strings.TrimSpace(term),
		Definition:   strings.TrimSpace(definition),
		Status:       WordStatusNew,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.UserID == uuid.Nil {
		return ErrWordUserIDEmpty
	}

	if strings.TrimSpace(w.Term) == "" {
		return ErrWordTermEmpty
	}

	if strings.TrimSpace(w.Definition) == "" {
		return ErrWordDefinitionEmpty
	}

	if !w.Status.IsValid() {
		return ErrWordStatusInvalid
	}

	return nil
}

// NormalizeTerm lowercases and trims a term for duplicate detection.
// Two words are considered the same entry when their normalized terms match.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
