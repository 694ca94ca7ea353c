// Package store defines the datastore abstraction for ebay-seller-metrics.
// The poller and API depend on the Store interface, never on concrete
// implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SnapshotQuery defines optional filters for snapshot history queries.
type SnapshotQuery struct {
	Since  *time.Time
	Until  *time.Time
	Limit  int // default 50
	Offset int
}

// Store defines all data access operations for ebay-seller-metrics.
type Store interface {
	// Snapshots
	SaveSnapshot(ctx context.Context, rec *types.SnapshotRecord) error
	LatestSnapshot(ctx context.Context) (*types.SnapshotRecord, error)
	ListSnapshots(ctx context.Context, q *SnapshotQuery) ([]types.SnapshotRecord, int, error)
	PruneSnapshots(ctx context.Context, olderThan time.Duration) (int, error)

	// Poll runs
	InsertPollRun(ctx context.Context) (id string, err error)
	CompletePollRun(ctx context.Context, id string, status string, errText string, degraded int) error
	ListPollRuns(ctx context.Context, limit int) ([]types.PollRun, error)
	RecoverStalePollRuns(ctx context.Context, olderThan time.Duration) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
