// Package review drives review sessions: it snapshots a queue, walks the
// learner through it one exposure at a time, applies the scheduling policy
// to each answer and forwards outcomes to the engagement evaluator.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// SessionMode selects the queue source and commit semantics of a session.
type SessionMode string

// Supported session modes.
const (
	// ModeRegular reviews the due queue, committing each answer
	// immediately so an early exit loses no progress.
	ModeRegular SessionMode = "regular"

	// ModeMission reviews today's mission words, resolved against the
	// live word set. Completing every word marks the mission done.
	ModeMission SessionMode = "mission"

	// ModeRecovery is a multiple-choice quiz over the mission words.
	// Outcomes are held back and committed in one batch when the session
	// completes; cancelling commits nothing.
	ModeRecovery SessionMode = "recovery"
)

// IsValid reports whether the mode is one of the supported values.
func (m SessionMode) IsValid() bool {
	return m == ModeRegular || m == ModeMission || m == ModeRecovery
}

// ReviewAnswer carries a learner's answer to the current exposure. Flip
// card modes use KnewIt; recovery quizzes use SelectedTerm, judged by
// exact match against the correct option.
type ReviewAnswer struct {
	KnewIt       bool   `json:"knew_it"`
	SelectedTerm string `json:"selected_term,omitempty"`
}

// ReviewService orchestrates review sessions. At most one session per
// user may be in progress at a time.
type ReviewService interface {
	// Queue returns the user's current due queue without starting a
	// session.
	Queue(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error)

	// Start begins a session in the given mode.
	// Returns ErrSessionActive if the user already has one in progress,
	// ErrNothingToReview if the queue for the mode is empty, and
	// ErrNoMission when a mission mode is requested without a mission
	// for today.
	Start(ctx context.Context, userID uuid.UUID, mode SessionMode) (*Session, error)

	// Active returns the user's in-progress session.
	// Returns ErrNoActiveSession if there is none.
	Active(ctx context.Context, userID uuid.UUID) (*Session, error)

	// SubmitAnswer answers the current exposure and advances the
	// session, committing per the mode's semantics. The returned session
	// reflects the post-answer state; when the last exposure is answered
	// its status is SessionCompleted.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, answer ReviewAnswer) (*Session, error)

	// Cancel terminates the session early. Already-committed answers
	// are kept; a recovery session discards its collected results.
	Cancel(ctx context.Context, userID uuid.UUID) (*Session, error)
}

// Common error types for ReviewService
var (
	// ErrSessionActive indicates the user already has a session in progress.
	ErrSessionActive = errors.New("a review session is already in progress")

	// ErrNoActiveSession indicates no session is in progress for the user.
	ErrNoActiveSession = errors.New("no review session in progress")

	// ErrNothingToReview indicates the queue for the requested mode is empty.
	ErrNothingToReview = errors.New("nothing to review")

	// ErrNoMission indicates a mission mode was requested but no mission
	// exists for today.
	ErrNoMission = errors.New("no mission for today")

	// ErrInvalidMode indicates an unknown session mode.
	ErrInvalidMode = errors.New("invalid session mode")
)

// ServiceError wraps errors from the review service with operation
// context so consumers can differentiate failures with errors.As.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
