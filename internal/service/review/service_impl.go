package review

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/domain/srs"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/logger"
	"github.com/phrazzld/vortex-api/internal/service/engagement"
	"github.com/phrazzld/vortex-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface. Sessions are
// held in process memory, one per user; they are transient workflow state,
// while every committed answer is persisted through the stores.
type reviewServiceImpl struct {
	wordStore       store.WordStore
	statsStore      store.StatsStore
	historyStore    store.HistoryStore
	collectionStore store.CollectionStore
	clock           clock.Clock
	intervals       srs.Intervals
	logger          *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	rng      *rand.Rand
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	wordStore store.WordStore,
	statsStore store.StatsStore,
	historyStore store.HistoryStore,
	collectionStore store.CollectionStore,
	clk clock.Clock,
	intervals srs.Intervals,
	rng *rand.Rand,
	log *slog.Logger,
) ReviewService {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if historyStore == nil {
		panic("historyStore cannot be nil")
	}
	if collectionStore == nil {
		panic("collectionStore cannot be nil")
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

	return &reviewServiceImpl{
		wordStore:       wordStore,
		statsStore:      statsStore,
		historyStore:    historyStore,
		collectionStore: collectionStore,
		clock:           clk,
		intervals:       intervals,
		rng:             rng,
		logger:          log.With(slog.String("component", "review_service")),
		sessions:        make(map[uuid.UUID]*Session),
	}
}

// Queue implements ReviewService.Queue.
func (s *reviewServiceImpl) Queue(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	words, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "queue", Message: "failed to load words", Err: err}
	}
	return srs.SelectDue(words, s.clock.Now()), nil
}

// Start implements ReviewService.Start.
func (s *reviewServiceImpl) Start(ctx context.Context, userID uuid.UUID, mode SessionMode) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.IsValid() {
		return nil, ErrInvalidMode
	}

	now := s.clock.Now()

	words, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "start", Message: "failed to load words", Err: err}
	}

	var queue []*domain.Word
	switch mode {
	case ModeRegular:
		queue = srs.SelectDue(words, now)
	case ModeMission, ModeRecovery:
		queue, err = s.missionQueue(ctx, userID, words, now)
		if err != nil {
			return nil, err
		}
	}
	if len(queue) == 0 {
		return nil, ErrNothingToReview
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[userID]; ok && existing.Status == SessionInProgress {
		return nil, ErrSessionActive
	}

	var questions []QuizQuestion
	if mode == ModeRecovery {
		questions = buildQuestions(queue, words, s.rng)
	}
	session := newSession(mode, queue, questions, now)
	s.sessions[userID] = session

	log.Debug("review session started",
		slog.String("user_id", userID.String()),
		slog.String("mode", string(mode)),
		slog.Int("queue_size", len(queue)))
	return session.snapshot(), nil
}

// Active implements ReviewService.Active.
func (s *reviewServiceImpl) Active(ctx context.Context, userID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Status != SessionInProgress {
		return nil, ErrNoActiveSession
	}
	return session.snapshot(), nil
}

// SubmitAnswer implements ReviewService.SubmitAnswer.
func (s *reviewServiceImpl) SubmitAnswer(ctx context.Context, userID uuid.UUID, answer ReviewAnswer) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Status != SessionInProgress {
		return nil, ErrNoActiveSession
	}

	word := session.CurrentWord()
	if word == nil {
		return nil, ErrNoActiveSession
	}

	knewIt := answer.KnewIt
	if session.Mode == ModeRecovery {
		knewIt = session.CurrentQuestion().IsCorrect(answer.SelectedTerm)
	}

	lastExposure := session.Index+1 >= len(session.Words)

	switch session.Mode {
	case ModeRecovery:
		// Quiz results are held back so the learner sees every question
		// before any word state changes; the batch lands on the final
		// answer. A commit failure leaves the session in progress so
		// the final answer can be retried.
		pending := append(session.pending, pendingResult{wordID: word.ID, knewIt: knewIt})
		if lastExposure {
			if err := s.commit(ctx, userID, pending, true); err != nil {
				log.Error("failed to commit quiz results",
					slog.String("user_id", userID.String()),
					slog.String("error", err.Error()))
				return nil, err
			}
		}
		session.pending = pending
	default:
		// Regular and mission reviews commit immediately so an early
		// exit loses no progress. The exposure only advances once its
		// answer is durably applied.
		markMission := session.Mode == ModeMission && lastExposure
		if err := s.commit(ctx, userID, []pendingResult{{wordID: word.ID, knewIt: knewIt}}, markMission); err != nil {
			log.Error("failed to commit answer",
				slog.String("user_id", userID.String()),
				slog.String("word_id", word.ID.String()),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	session.advance(knewIt)
	return session.snapshot(), nil
}

// Cancel implements ReviewService.Cancel.
func (s *reviewServiceImpl) Cancel(ctx context.Context, userID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Status != SessionInProgress {
		return nil, ErrNoActiveSession
	}

	// A cancelled quiz discards its collected results; flip-card modes
	// have already persisted everything answered so far.
	session.pending = nil
	session.cancel()
	return session.snapshot(), nil
}

// missionQueue resolves today's mission word IDs against the live word
// set. IDs whose words were deleted since mission creation are silently
// skipped. Returns ErrNoMission when no mission dated today exists.
func (s *reviewServiceImpl) missionQueue(ctx context.Context, userID uuid.UUID, words []*domain.Word, now time.Time) ([]*domain.Word, error) {
	stats, err := s.statsStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrStatsNotFound) {
			return nil, ErrNoMission
		}
		return nil, &ServiceError{Operation: "start", Message: "failed to load stats", Err: err}
	}

	mission := stats.DailyMission
	if mission == nil || mission.Date != domain.DayKey(now) {
		return nil, ErrNoMission
	}

	byID := make(map[uuid.UUID]*domain.Word, len(words))
	for _, word := range words {
		byID[word.ID] = word
	}
	queue := make([]*domain.Word, 0, len(mission.WordIDs))
	for _, id := range mission.WordIDs {
		if word, ok := byID[id]; ok {
			queue = append(queue, word)
		}
	}
	return queue, nil
}

// commit persists a set of answered exposures: policy application, word
// persistence, study history increment, then streak and achievement
// update, in that order. markMission additionally flags today's mission
// as completed, provided at least one answer still applied; a mission
// whose words were all deleted mid-session stays incomplete.
func (s *reviewServiceImpl) commit(ctx context.Context, userID uuid.UUID, results []pendingResult, markMission bool) error {
	now := s.clock.Now()
	today := domain.DayKey(now)

	words, err := s.wordStore.GetAll(ctx, userID)
	if err != nil {
		return &ServiceError{Operation: "commit", Message: "failed to load words", Err: err}
	}

	byID := make(map[uuid.UUID]int, len(words))
	for i, word := range words {
		byID[word.ID] = i
	}

	fastMastery := false
	applied := 0
	for _, result := range results {
		i, ok := byID[result.wordID]
		if !ok {
			// Word deleted mid-session; nothing to reschedule.
			continue
		}
		updated, event := srs.ApplyAnswer(words[i], result.knewIt, now, s.intervals)
		words[i] = updated
		if event.FastMastery {
			fastMastery = true
		}
		applied++
	}

	if applied > 0 {
		if err := s.wordStore.ReplaceAll(ctx, userID, words); err != nil {
			return &ServiceError{Operation: "commit", Message: "failed to persist words", Err: err}
		}
		if err := s.recordHistory(ctx, userID, today, applied); err != nil {
			return err
		}
	}

	return s.updateStats(ctx, userID, words, today, fastMastery, markMission && applied > 0, applied > 0)
}

// recordHistory increments today's study history entry by count,
// appending a new entry when today has none yet.
func (s *reviewServiceImpl) recordHistory(ctx context.Context, userID uuid.UUID, today string, count int) error {
	entries, err := s.historyStore.Get(ctx, userID)
	if err != nil {
		return &ServiceError{Operation: "commit", Message: "failed to load history", Err: err}
	}

	found := false
	for i := range entries {
		if entries[i].Date == today {
			entries[i].Count += count
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, domain.StudyHistoryEntry{Date: today, Count: count})
	}

	if err := s.historyStore.Replace(ctx, userID, entries); err != nil {
		return &ServiceError{Operation: "commit", Message: "failed to persist history", Err: err}
	}
	return nil
}

// updateStats folds the committed answers into the engagement record:
// streak advance, derived mastered count, mission completion flag and the
// achievement sweep.
func (s *reviewServiceImpl) updateStats(
	ctx context.Context,
	userID uuid.UUID,
	words []*domain.Word,
	today string,
	fastMastery bool,
	markMission bool,
	reviewed bool,
) error {
	stats, err := s.statsStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrStatsNotFound) {
			return &ServiceError{Operation: "commit", Message: "failed to load stats", Err: err}
		}
		stats = domain.NewUserStats("", s.clock.Now())
	}

	if reviewed {
		stats = engagement.RecordReview(stats, today)
	}
	stats.MasteredCount = engagement.MasteredCount(words)

	if markMission && stats.DailyMission != nil && stats.DailyMission.Date == today {
		stats = stats.Clone()
		stats.DailyMission.Completed = true
	}

	collections, err := s.collectionStore.GetAll(ctx, userID)
	if err != nil {
		return &ServiceError{Operation: "commit", Message: "failed to load collections", Err: err}
	}

	stats, unlocked := engagement.Sweep(stats, engagement.Counts{
		Words:       len(words),
		Mastered:    stats.MasteredCount,
		Streak:      stats.Streak,
		Collections: len(collections),
		FastMastery: fastMastery,
	})
	if len(unlocked) > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("achievements unlocked",
			slog.String("user_id", userID.String()),
			slog.Any("achievements", unlocked))
	}

	if err := s.statsStore.Replace(ctx, userID, stats); err != nil {
		return &ServiceError{Operation: "commit", Message: "failed to persist stats", Err: err}
	}
	return nil
}
