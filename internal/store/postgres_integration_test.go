//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

var _ store.Store = (*store.PostgresStore)(nil)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("esm_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, store.WithPoolSize(4))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_Snapshots(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.LatestSnapshot(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	base := time.Now().UTC().Truncate(time.Microsecond)

	older := (&types.Snapshot{
		OrdersDueToday: 1,
		CollectedAt:    base.Add(-time.Hour),
	}).Record("")
	require.NoError(t, s.SaveSnapshot(ctx, older))
	assert.NotEmpty(t, older.ID)

	newer := (&types.Snapshot{
		OrdersDueToday: 3,
		AvailableFunds: 812.4,
		CollectedAt:    base,
		Degraded:       []string{"traffic_report"},
	}).Record("")
	require.NoError(t, s.SaveSnapshot(ctx, newer))

	latest, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.True(t, base.Equal(latest.CollectedAt))
	assert.Equal(t, []string{"traffic_report"}, latest.Degraded)
	assert.Len(t, latest.Metrics, len(types.Keys()))
	assert.InDelta(t, 812.4, latest.Metrics[types.KeyAvailableFunds], 0.0001)

	snap := latest.Snapshot()
	assert.Equal(t, int64(3), snap.OrdersDueToday)

	recs, total, err := s.ListSnapshots(ctx, &store.SnapshotQuery{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, recs, 1)
	assert.Equal(t, newer.ID, recs[0].ID)

	since := base.Add(-30 * time.Minute)
	recs, total, err = s.ListSnapshots(ctx, &store.SnapshotQuery{Since: &since})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, recs, 1)

	n, err := s.PruneSnapshots(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresStore_PollRuns(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	id, err := s.InsertPollRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, s.CompletePollRun(ctx, id, types.PollStatusFailed, "no oauth token", 0))

	second, err := s.InsertPollRun(ctx)
	require.NoError(t, err)

	runs, err := s.ListPollRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, types.PollStatusRunning, runs[0].Status)
	assert.Equal(t, types.PollStatusFailed, runs[1].Status)
	assert.Equal(t, "no oauth token", runs[1].ErrorText)
	require.NotNil(t, runs[1].CompletedAt)

	// Nothing is older than an hour yet.
	n, err := s.RecoverStalePollRuns(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.RecoverStalePollRuns(ctx, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	err = s.CompletePollRun(ctx, "00000000-0000-0000-0000-000000000000", types.PollStatusSucceeded, "", 0)
	require.ErrorIs(t, err, store.ErrNotFound)
}
