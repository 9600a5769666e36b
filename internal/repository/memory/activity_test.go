package memory

import (
	"context"
	"testing"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(0)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ProjectID: "p1", ActivityType: activity.TypeRunStarted, CreatedAt: base}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ProjectID: "p2", ActivityType: activity.TypeRunStarted, CreatedAt: base.Add(time.Second)}))
	third := &activity.ActivityEntry{ProjectID: "p1", ActivityType: activity.TypeRunCompleted, CreatedAt: base.Add(2 * time.Second)}
	require.NoError(t, repo.Log(ctx, third))
	require.Equal(t, int64(3), third.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeRunCompleted, entries[0].ActivityType)

	typ := activity.TypeRunStarted
	entries, err = repo.List(ctx, activity.ListActivityOptions{ActivityType: &typ, Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "p2", entries[0].ProjectID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 5})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestActivityRepository_Capacity(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(2)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ProjectID: "p", ActivityType: activity.TypeRunStarted}))
	}
	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(5), entries[0].ID)
	require.Equal(t, int64(4), entries[1].ID)
}

func TestActivityRepository_Since(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(0)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ProjectID: "p1", Summary: "old", CreatedAt: base}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ProjectID: "p1", Summary: "new", CreatedAt: base.Add(time.Hour)}))

	entries, err := repo.List(ctx, activity.ListActivityOptions{Since: base.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "new", entries[0].Summary)
}
