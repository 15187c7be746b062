package collections

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
	return NewService(st.Collections(), sweeper, clk, nil), st, uuid.New()
}

func TestCreateAndList(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, "Travel", "✈️")
	require.NoError(t, err)
	assert.Equal(t, "Travel", created.Name)
	assert.Empty(t, created.WordIDs)

	listed, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	_, err = svc.Create(ctx, userID, "  ", "x")
	assert.ErrorIs(t, err, domain.ErrCollectionNameEmpty)
}

func TestRename(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, "Travel", "✈️")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, userID, created.ID, "Trips", "🌍")
	require.NoError(t, err)
	assert.Equal(t, "Trips", renamed.Name)
	assert.Equal(t, "🌍", renamed.Icon)

	_, err = svc.Rename(ctx, userID, uuid.New(), "X", "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, "Travel", "✈️")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, created.ID))

	listed, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, svc.Delete(ctx, userID, created.ID), store.ErrNotFound)
}

func TestCreateUnlocksCollectionAchievements(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()

	// No review has happened; the unlock must come from the create alone.
	_, err := svc.Create(ctx, userID, "Travel", "✈️")
	require.NoError(t, err)

	stats, err := st.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, stats.HasAchievement("collector"))
	assert.False(t, stats.HasAchievement("polymath"))

	for _, name := range []string{"Work", "Books", "Food", "Nature"} {
		_, err := svc.Create(ctx, userID, name, "")
		require.NoError(t, err)
	}

	stats, err = st.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, stats.HasAchievement("polymath"))
}

func TestDeleteKeepsUnlockedAchievements(t *testing.T) {
	t.Parallel()
	svc, st, userID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, "Travel", "✈️")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, userID, created.ID))

	stats, err := st.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, stats.HasAchievement("collector"), "unlocks are never revoked")
}

func TestAddAndRemoveWords(t *testing.T) {
	t.Parallel()
	svc, _, userID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, "Travel", "✈️")
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	updated, err := svc.AddWords(ctx, userID, created.ID, []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Len(t, updated.WordIDs, 2)

	// Adding again is a no-op; membership is a set.
	updated, err = svc.AddWords(ctx, userID, created.ID, []uuid.UUID{a})
	require.NoError(t, err)
	assert.Len(t, updated.WordIDs, 2)

	updated, err = svc.RemoveWords(ctx, userID, created.ID, []uuid.UUID{a})
	require.NoError(t, err)
	require.Len(t, updated.WordIDs, 1)
	assert.Equal(t, b, updated.WordIDs[0])
}
