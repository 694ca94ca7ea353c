package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

var _ store.Store = (*store.MemoryStore)(nil)

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func snapshotAt(t time.Time, dueToday int64) *types.SnapshotRecord {
	return (&types.Snapshot{OrdersDueToday: dueToday, CollectedAt: t}).Record("")
}

func TestMemoryStore_Snapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()

	_, err := s.LatestSnapshot(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	base := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	// Saved out of order; latest is by collected_at.
	for i, offset := range []int{0, 10, 5} {
		rec := snapshotAt(base.Add(time.Duration(offset)*time.Minute), int64(i))
		require.NoError(t, s.SaveSnapshot(ctx, rec))
		assert.NotEmpty(t, rec.ID)
	}

	latest, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, base.Add(10*time.Minute), latest.CollectedAt)
	assert.InDelta(t, 1.0, latest.Metrics[types.KeyOrdersDueToday], 0.0001)

	recs, total, err := s.ListSnapshots(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].CollectedAt.After(recs[1].CollectedAt))
	assert.True(t, recs[1].CollectedAt.After(recs[2].CollectedAt))

	since := base.Add(time.Minute)
	recs, total, err = s.ListSnapshots(ctx, &store.SnapshotQuery{Since: &since, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, recs, 1)
	assert.Equal(t, base.Add(10*time.Minute), recs[0].CollectedAt)

	recs, total, err = s.ListSnapshots(ctx, &store.SnapshotQuery{Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, recs)
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemoryStore()

	rec := snapshotAt(time.Now(), 2)
	rec.Degraded = []string{"funds_summary"}
	require.NoError(t, s.SaveSnapshot(ctx, rec))

	rec.Metrics[types.KeyOrdersDueToday] = 99
	rec.Degraded[0] = "changed"

	got, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Metrics[types.KeyOrdersDueToday], 0.0001)
	assert.Equal(t, []string{"funds_summary"}, got.Degraded)
}

func TestMemoryStore_PruneSnapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := &clock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	s := store.NewMemoryStore(store.WithMemoryNowFunc(clk.Now))

	require.NoError(t, s.SaveSnapshot(ctx, snapshotAt(clk.Now().Add(-48*time.Hour), 1)))
	require.NoError(t, s.SaveSnapshot(ctx, snapshotAt(clk.Now().Add(-time.Hour), 2)))

	n, err := s.PruneSnapshots(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, total, err := s.ListSnapshots(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestMemoryStore_PollRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := &clock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	s := store.NewMemoryStore(store.WithMemoryNowFunc(clk.Now))

	first, err := s.InsertPollRun(ctx)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	require.NoError(t, s.CompletePollRun(ctx, first, types.PollStatusSucceeded, "", 2))

	clk.Advance(time.Minute)
	second, err := s.InsertPollRun(ctx)
	require.NoError(t, err)

	runs, err := s.ListPollRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, types.PollStatusRunning, runs[0].Status)
	assert.Nil(t, runs[0].CompletedAt)

	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, types.PollStatusSucceeded, runs[1].Status)
	assert.Equal(t, 2, runs[1].DegradedEndpoints)
	require.NotNil(t, runs[1].CompletedAt)

	runs, err = s.ListPollRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	require.ErrorIs(t, s.CompletePollRun(ctx, "missing", types.PollStatusFailed, "x", 0), store.ErrNotFound)
}

func TestMemoryStore_RecoverStalePollRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := &clock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	s := store.NewMemoryStore(store.WithMemoryNowFunc(clk.Now))

	ancient, err := s.InsertPollRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.CompletePollRun(ctx, ancient, types.PollStatusSucceeded, "", 0))

	clk.Advance(40 * 24 * time.Hour)
	stale, err := s.InsertPollRun(ctx)
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	fresh, err := s.InsertPollRun(ctx)
	require.NoError(t, err)

	n, err := s.RecoverStalePollRuns(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	runs, err := s.ListPollRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, fresh, runs[0].ID)
	assert.Equal(t, types.PollStatusRunning, runs[0].Status)
	assert.Equal(t, stale, runs[1].ID)
	assert.Equal(t, types.PollStatusCrashed, runs[1].Status)
}
