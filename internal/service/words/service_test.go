package words

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/platform/memory"
	"github.com/phrazzld/vortex-api/internal/service/engagement"
	"github.com/phrazzld/vortex-api/internal/store"
)

func newService(t *testing.T) (*Service, *memory.Store, uuid.UUID) {
	t.Helper()
	st := memory.NewStore()
	clk := clock.NewFixed(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	sweeper := engagement.NewSweeper(st, st, st.Collections(), clk, nil)
	return NewService(st, sweeper, clk, nil), st, uuid.New()
}

func TestCreateWord(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()

	word, err := svc.Create(ctx, userID, CreateWordInput{
		Term:       "Laconic",
		Definition: "Using very few words.",
		Tags:       []string{"Academic"},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.WordStatusNew, word.Status)
	assert.Equal(t, word.CreatedAt, word.NextReviewAt, "new words are immediately due")

	stored, err := st.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Laconic", stored[0].Term)
}

func TestCreateRejectsDuplicateTerm(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, CreateWordInput{Term: "Laconic", Definition: "Using very few words."})
	require.NoError(t, err)

	// Case and surrounding whitespace do not make a term distinct.
	_, err = svc.Create(ctx, userID, CreateWordInput{Term: "  laconic ", Definition: "terse"})
	assert.ErrorIs(t, err, store.ErrDuplicateTerm)
	assert.True(t, store.IsDuplicateError(err))

	// Other users are free to use the same term.
	_, err = svc.Create(ctx, uuid.New(), CreateWordInput{Term: "Laconic", Definition: "terse"})
	assert.NoError(t, err)
}

func TestCreateValidatesInput(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)

	_, err := svc.Create(context.Background(), userID, CreateWordInput{Term: "", Definition: "x"})
	assert.ErrorIs(t, err, domain.ErrWordTermEmpty)

	_, err = svc.Create(context.Background(), userID, CreateWordInput{Term: "x", Definition: ""})
	assert.ErrorIs(t, err, domain.ErrWordDefinitionEmpty)
}

func TestDeleteWord(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()

	word, err := svc.Create(ctx, userID, CreateWordInput{Term: "Laconic", Definition: "Using very few words."})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, word.ID))

	stored, err := st.GetAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	err = svc.Delete(ctx, userID, word.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUnlocksFirstMemoryImmediately(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()

	// No review has happened; the unlock must come from the create alone.
	_, err := svc.Create(ctx, userID, CreateWordInput{Term: "Laconic", Definition: "Using very few words."})
	require.NoError(t, err)

	stats, err := st.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, stats.HasAchievement("first_memory"))
	assert.Zero(t, stats.Streak, "library edits never touch the streak")
}

func TestDeleteRecomputesMasteredCount(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	word, err := domain.NewWord(userID, "Laconic", "Using very few words.", now)
	require.NoError(t, err)
	word.Status = domain.WordStatusMastered
	require.NoError(t, st.ReplaceAll(ctx, userID, []*domain.Word{word}))

	stats := domain.NewUserStats("", now)
	stats.MasteredCount = 1
	require.NoError(t, st.Replace(ctx, userID, stats))

	require.NoError(t, svc.Delete(ctx, userID, word.ID))

	stats, err = st.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, stats.MasteredCount)
}

func TestQuickStartSeedsLibrary(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()

	added, err := svc.QuickStart(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, added, 3)

	stored, err := st.GetAll(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
	for _, word := range stored {
		assert.Equal(t, domain.WordStatusNew, word.Status)
	}

	stats, err := st.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, stats.HasAchievement("first_memory"))
}

func TestQuickStartSkipsExistingTerms(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, CreateWordInput{Term: "ephemeral", Definition: "fleeting"})
	require.NoError(t, err)

	added, err := svc.QuickStart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, added, 2, "already-known terms are skipped")

	// A second quick start adds nothing.
	added, err = svc.QuickStart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, added)
}
