package review

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/domain/srs"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/memory"
)

type fixture struct {
	service ReviewService
	store   *memory.Store
	clock   *clock.Fixed
	userID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	clk := clock.NewFixed(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := NewReviewService(
		st,
		st,
		st.History(),
		st.Collections(),
		clk,
		srs.DefaultIntervals(),
		rand.New(rand.NewSource(1)),
		nil,
	)
	return &fixture{service: svc, store: st, clock: clk, userID: uuid.New()}
}

// seedWords stores n immediately-due words and returns them.
func (f *fixture) seedWords(t *testing.T, terms ...string) []*domain.Word {
	t.Helper()
	ctx := context.Background()
	words := make([]*domain.Word, 0, len(terms))
	for _, term := range terms {
		word, err := domain.NewWord(f.userID, term, "definition of "+term, f.clock.Now())
		require.NoError(t, err)
		words = append(words, word)
	}
	require.NoError(t, f.store.ReplaceAll(ctx, f.userID, words))
	return words
}

// seedMission persists stats carrying a mission for today over the given
// word IDs.
func (f *fixture) seedMission(t *testing.T, wordIDs []uuid.UUID) {
	t.Helper()
	stats := domain.NewUserStats("learner", f.clock.Now())
	stats.DailyMission = &domain.DailyMission{
		Date:    domain.DayKey(f.clock.Now()),
		WordIDs: wordIDs,
	}
	require.NoError(t, f.store.Replace(context.Background(), f.userID, stats))
}

func wordIDs(words []*domain.Word) []uuid.UUID {
	ids := make([]uuid.UUID, len(words))
	for i, word := range words {
		ids[i] = word.ID
	}
	return ids
}

func TestStartRegularSnapshotsDueQueue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedWords(t, "ephemeral", "ubiquitous", "laconic")

	session, err := f.service.Start(ctx, f.userID, ModeRegular)

	require.NoError(t, err)
	assert.Equal(t, SessionInProgress, session.Status)
	assert.Len(t, session.Words, 3)
	assert.Equal(t, 0, session.Index)
	assert.NotNil(t, session.CurrentWord())
}

func TestStartEmptyQueue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.service.Start(context.Background(), f.userID, ModeRegular)

	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestStartInvalidMode(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.service.Start(context.Background(), f.userID, SessionMode("cram"))

	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestOneSessionPerUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedWords(t, "ephemeral", "ubiquitous")

	_, err := f.service.Start(ctx, f.userID, ModeRegular)
	require.NoError(t, err)

	_, err = f.service.Start(ctx, f.userID, ModeRegular)
	assert.ErrorIs(t, err, ErrSessionActive)

	// Another user is unaffected.
	other := newFixture(t)
	other.seedWords(t, "laconic")
	_, err = other.service.Start(ctx, other.userID, ModeRegular)
	assert.NoError(t, err)
}

func TestRegularAnswerCommitsImmediately(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedWords(t, "ephemeral", "ubiquitous")

	_, err := f.service.Start(ctx, f.userID, ModeRegular)
	require.NoError(t, err)

	session, err := f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
	require.NoError(t, err)
	assert.Equal(t, SessionInProgress, session.Status)
	assert.Equal(t, 1, session.Index)
	assert.Equal(t, 1, session.Correct)

	// The answered word is already rescheduled even though the session
	// is still in progress.
	words, err := f.store.GetAll(ctx, f.userID)
	require.NoError(t, err)
	var answered *domain.Word
	for _, word := range words {
		if word.Term == "ephemeral" {
			answered = word
		}
	}
	require.NotNil(t, answered)
	assert.Equal(t, domain.WordStatusLearning, answered.Status)
	assert.True(t, answered.NextReviewAt.After(f.clock.Now()))

	// History and streak reflect the single committed answer.
	history, err := f.store.History().Get(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.DayKey(f.clock.Now()), history[0].Date)
	assert.Equal(t, 1, history[0].Count)

	stats, err := f.store.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Streak)
	assert.True(t, stats.HasAchievement("first_memory"))
}

func TestCancelKeepsCommittedProgress(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedWords(t, "ephemeral", "ubiquitous")

	_, err := f.service.Start(ctx, f.userID, ModeRegular)
	require.NoError(t, err)
	_, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: false})
	require.NoError(t, err)

	session, err := f.service.Cancel(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, SessionCancelled, session.Status)

	// The incorrect answer stayed committed: NEW with the short cooldown.
	words, err := f.store.GetAll(ctx, f.userID)
	require.NoError(t, err)
	for _, word := range words {
		if word.Term == "ephemeral" {
			assert.Equal(t, domain.WordStatusNew, word.Status)
			assert.Equal(t, f.clock.Now().Add(10*time.Minute), word.NextReviewAt)
		}
	}

	// A new session can start after cancellation.
	_, err = f.service.Start(ctx, f.userID, ModeRegular)
	assert.NoError(t, err)
}

func TestStreakAdvancesOncePerDay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedWords(t, "a", "b", "c", "d", "e")

	_, err := f.service.Start(ctx, f.userID, ModeRegular)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
		require.NoError(t, err)
	}

	stats, err := f.store.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Streak, "five same-day reviews advance the streak once")

	history, err := f.store.History().Get(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 5, history[0].Count)
}

func TestMissionSessionSkipsDeletedWords(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous", "laconic")
	ids := wordIDs(words)
	ids = append(ids, uuid.New()) // deleted since mission creation
	f.seedMission(t, ids)

	session, err := f.service.Start(ctx, f.userID, ModeMission)

	require.NoError(t, err)
	assert.Len(t, session.Words, 3, "dangling mission IDs are silently skipped")
}

func TestMissionCompletionMarksMissionDone(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous")
	f.seedMission(t, wordIDs(words))

	_, err := f.service.Start(ctx, f.userID, ModeMission)
	require.NoError(t, err)

	_, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
	require.NoError(t, err)

	stats, err := f.store.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, stats.DailyMission.Completed, "mission not done until the last word")

	session, err := f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
	require.NoError(t, err)
	assert.Equal(t, SessionCompleted, session.Status)

	stats, err = f.store.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, stats.DailyMission.Completed)
}

func TestMissionNotCompletedWhenAllWordsDeletedMidSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous")
	f.seedMission(t, wordIDs(words))

	session, err := f.service.Start(ctx, f.userID, ModeMission)
	require.NoError(t, err)
	require.Len(t, session.Words, 2)

	// The whole library vanishes while the session is in flight.
	require.NoError(t, f.store.ReplaceAll(ctx, f.userID, nil))

	_, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
	require.NoError(t, err)
	session, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
	require.NoError(t, err)
	assert.Equal(t, SessionCompleted, session.Status)

	stats, err := f.store.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, stats.DailyMission.Completed, "no answer applied, mission stays open")
	assert.Zero(t, stats.Streak, "nothing was reviewed")

	history, err := f.store.History().Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMissionModeWithoutMission(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.seedWords(t, "ephemeral")

	_, err := f.service.Start(ctx, f.userID, ModeMission)
	assert.ErrorIs(t, err, ErrNoMission)

	// A stale mission from yesterday does not count.
	stats := domain.NewUserStats("learner", f.clock.Now())
	stats.DailyMission = &domain.DailyMission{
		Date:    "2025-03-09",
		WordIDs: []uuid.UUID{uuid.New()},
	}
	require.NoError(t, f.store.Replace(ctx, f.userID, stats))

	_, err = f.service.Start(ctx, f.userID, ModeMission)
	assert.ErrorIs(t, err, ErrNoMission)
}

func TestRecoveryQuestionsHaveDistractors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous", "laconic", "gregarious", "austere")
	f.seedMission(t, wordIDs(words[:2]))

	session, err := f.service.Start(ctx, f.userID, ModeRecovery)

	require.NoError(t, err)
	require.Len(t, session.Questions, 2)
	for i, question := range session.Questions {
		assert.Len(t, question.Options, 4, "three distractors plus the correct term")
		assert.Contains(t, question.Options, words[i].Term)
		assert.Equal(t, words[i].Definition, question.Definition)
		for _, option := range question.Options {
			assert.NotEqual(t, "", option)
		}
	}
}

func TestRecoveryDegradesWithSmallCorpus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous")
	f.seedMission(t, wordIDs(words[:1]))

	session, err := f.service.Start(ctx, f.userID, ModeRecovery)

	require.NoError(t, err)
	require.Len(t, session.Questions, 1)
	assert.Len(t, session.Questions[0].Options, 2, "one distractor available, one used")
}

func TestRecoveryCommitsOnlyAtCompletion(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous", "laconic")
	f.seedMission(t, wordIDs(words[:2]))

	session, err := f.service.Start(ctx, f.userID, ModeRecovery)
	require.NoError(t, err)

	// Answer the first question correctly by picking the right term.
	correct := words[0].Term
	session, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{SelectedTerm: correct})
	require.NoError(t, err)
	assert.Equal(t, 1, session.Correct)

	// Nothing has been committed yet.
	stored, err := f.store.GetAll(ctx, f.userID)
	require.NoError(t, err)
	for _, word := range stored {
		assert.Equal(t, domain.WordStatusNew, word.Status)
	}
	history, err := f.store.History().Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Completing the quiz lands the whole batch.
	session, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{SelectedTerm: "wrong answer"})
	require.NoError(t, err)
	assert.Equal(t, SessionCompleted, session.Status)
	assert.Equal(t, 1, session.Incorrect)

	stored, err = f.store.GetAll(ctx, f.userID)
	require.NoError(t, err)
	byTerm := make(map[string]*domain.Word)
	for _, word := range stored {
		byTerm[word.Term] = word
	}
	assert.Equal(t, domain.WordStatusLearning, byTerm[words[0].Term].Status)
	assert.Equal(t, domain.WordStatusNew, byTerm[words[1].Term].Status)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), byTerm[words[1].Term].NextReviewAt)

	history, err = f.store.History().Get(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].Count)

	stats, err := f.store.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, stats.DailyMission.Completed, "completed quiz finishes the mission")
}

func TestRecoveryCancelCommitsNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous", "laconic")
	f.seedMission(t, wordIDs(words[:2]))

	_, err := f.service.Start(ctx, f.userID, ModeRecovery)
	require.NoError(t, err)
	_, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{SelectedTerm: words[0].Term})
	require.NoError(t, err)

	session, err := f.service.Cancel(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, SessionCancelled, session.Status)

	stored, err := f.store.GetAll(ctx, f.userID)
	require.NoError(t, err)
	for _, word := range stored {
		assert.Equal(t, domain.WordStatusNew, word.Status, "cancelled quiz leaves words untouched")
	}
	history, err := f.store.History().Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestActiveSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Active(ctx, f.userID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	f.seedWords(t, "ephemeral")
	started, err := f.service.Start(ctx, f.userID, ModeRegular)
	require.NoError(t, err)

	active, err := f.service.Active(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, started.Mode, active.Mode)
	assert.Equal(t, started.StartedAt, active.StartedAt)

	_, err = f.service.SubmitAnswer(ctx, f.userID, ReviewAnswer{KnewIt: true})
	require.NoError(t, err)

	_, err = f.service.Active(ctx, f.userID)
	assert.ErrorIs(t, err, ErrNoActiveSession, "completed session is no longer active")
}

func TestQueueReturnsDueWordsOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	words := f.seedWords(t, "ephemeral", "ubiquitous")
	words[1].NextReviewAt = f.clock.Now().Add(24 * time.Hour)
	require.NoError(t, f.store.ReplaceAll(ctx, f.userID, words))

	due, err := f.service.Queue(ctx, f.userID)

	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "ephemeral", due[0].Term)
}
