package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

// Session lifecycle states. NotStarted exists only transiently between
// allocation and the first exposure; Completed and Cancelled are both
// terminal but must stay distinguishable to callers.
const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// pendingResult is a quiz outcome held back for the batch commit.
type pendingResult struct {
	wordID uuid.UUID
	knewIt bool
}

// Session is one walk through a review queue. The word snapshot is fixed
// at start time; words becoming due mid-session do not join it.
type Session struct {
	Mode      SessionMode     `json:"mode"`
	Status    SessionStatus   `json:"status"`
	Words     []*domain.Word  `json:"words"`
	Questions []QuizQuestion  `json:"questions,omitempty"` // recovery mode only
	Index     int             `json:"index"`
	Correct   int             `json:"correct"`
	Incorrect int             `json:"incorrect"`
	StartedAt time.Time       `json:"started_at"`

	pending []pendingResult
}

func newSession(mode SessionMode, words []*domain.Word, questions []QuizQuestion, startedAt time.Time) *Session {
	return &Session{
		Mode:      mode,
		Status:    SessionInProgress,
		Words:     words,
		Questions: questions,
		Index:     0,
		StartedAt: startedAt,
	}
}

// CurrentWord returns the word under review, or nil when the session is
// no longer in progress.
func (s *Session) CurrentWord() *domain.Word {
	if s.Status != SessionInProgress || s.Index >= len(s.Words) {
		return nil
	}
	return s.Words[s.Index]
}

// CurrentQuestion returns the quiz question under review in recovery
// mode, or nil otherwise.
func (s *Session) CurrentQuestion() *QuizQuestion {
	if s.Mode != ModeRecovery || s.Status != SessionInProgress || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// Remaining returns how many exposures are left, including the current one.
func (s *Session) Remaining() int {
	if s.Status != SessionInProgress {
		return 0
	}
	return len(s.Words) - s.Index
}

// advance records the outcome tally and moves to the next exposure,
// flipping to Completed after the last one.
func (s *Session) advance(knewIt bool) {
	if knewIt {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.Index++
	if s.Index >= len(s.Words) {
		s.Status = SessionCompleted
	}
}

// cancel terminates the session early. A cancelled session keeps its
// tallies for reporting but is terminal.
func (s *Session) cancel() {
	s.Status = SessionCancelled
}

// snapshot returns a copy safe to hand outside the service's lock. The
// pending results never leave the service.
func (s *Session) snapshot() *Session {
	copied := *s
	copied.Words = append([]*domain.Word(nil), s.Words...)
	copied.Questions = append([]QuizQuestion(nil), s.Questions...)
	copied.pending = nil
	return &copied
}
