package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures NewPostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = int32(n) //nolint:gosec // validated by config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// SaveSnapshot inserts a snapshot. When rec.ID is empty the database
// assigns one and rec.ID is set to it.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, rec *types.SnapshotRecord) error {
	degraded := rec.Degraded
	if degraded == nil {
		degraded = []string{}
	}

	if rec.ID != "" {
		if _, err := s.pool.Exec(ctx, queryInsertSnapshotWithID,
			rec.ID, rec.CollectedAt, rec.Metrics, degraded,
		); err != nil {
			return fmt.Errorf("inserting snapshot: %w", err)
		}
		return nil
	}

	if err := s.pool.QueryRow(ctx, queryInsertSnapshot,
		rec.CollectedAt, rec.Metrics, degraded,
	).Scan(&rec.ID); err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently collected snapshot, or
// ErrNotFound when none has been saved.
func (s *PostgresStore) LatestSnapshot(ctx context.Context) (*types.SnapshotRecord, error) {
	rec := &types.SnapshotRecord{}
	err := scanSnapshot(s.pool.QueryRow(ctx, queryLatestSnapshot), rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}
	return rec, nil
}

// ListSnapshots returns snapshots newest first with the total matching count.
func (s *PostgresStore) ListSnapshots(
	ctx context.Context,
	q *SnapshotQuery,
) ([]types.SnapshotRecord, int, error) {
	if q == nil {
		q = &SnapshotQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting snapshots: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var recs []types.SnapshotRecord
	for rows.Next() {
		var rec types.SnapshotRecord
		if err := scanSnapshot(rows, &rec); err != nil {
			return nil, 0, fmt.Errorf("scanning snapshot: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, total, rows.Err()
}

// PruneSnapshots deletes snapshots collected more than olderThan ago and
// returns how many were removed.
func (s *PostgresStore) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPruneSnapshots, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// InsertPollRun records the start of a poll cycle and returns its UUID.
func (s *PostgresStore) InsertPollRun(ctx context.Context) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertPollRun).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting poll run: %w", err)
	}
	return id, nil
}

// CompletePollRun marks a poll run as finished with the given status and metadata.
func (s *PostgresStore) CompletePollRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	degraded int,
) error {
	tag, err := s.pool.Exec(ctx, queryCompletePollRun, id, status, errText, degraded)
	if err != nil {
		return fmt.Errorf("completing poll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPollRuns returns the most recent poll runs, newest first.
func (s *PostgresStore) ListPollRuns(ctx context.Context, limit int) ([]types.PollRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListPollRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("querying poll runs: %w", err)
	}
	defer rows.Close()

	var runs []types.PollRun
	for rows.Next() {
		var r types.PollRun
		if err := rows.Scan(
			&r.ID, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.DegradedEndpoints,
		); err != nil {
			return nil, fmt.Errorf("scanning poll run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecoverStalePollRuns marks any 'running' rows older than olderThan as
// 'crashed', then deletes all rows older than 30 days. Returns the number of
// rows marked as crashed.
func (s *PostgresStore) RecoverStalePollRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStalePollRunsCrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale poll runs crashed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldPollRuns); err != nil {
		return affected, fmt.Errorf("deleting old poll runs: %w", err)
	}

	return affected, nil
}

func scanSnapshot(row pgx.Row, rec *types.SnapshotRecord) error {
	return row.Scan(&rec.ID, &rec.CollectedAt, &rec.Metrics, &rec.Degraded)
}
