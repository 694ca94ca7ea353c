package store

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

const pollRunRetention = 30 * 24 * time.Hour

// MemoryStore implements Store in process memory. It is used when no
// database is configured; history is lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots []types.SnapshotRecord // oldest first
	runs      []types.PollRun        // oldest first
	nowFunc   func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryNowFunc overrides the time function for testing.
func WithMemoryNowFunc(f func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.nowFunc = f
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{nowFunc: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds.
func (*MemoryStore) Ping(context.Context) error { return nil }

// Migrate is a no-op.
func (*MemoryStore) Migrate(context.Context) error { return nil }

// SaveSnapshot stores a copy of rec, assigning an ID when empty.
func (s *MemoryStore) SaveSnapshot(_ context.Context, rec *types.SnapshotRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneRecord(*rec)
	i, _ := slices.BinarySearchFunc(s.snapshots, cp.CollectedAt, func(r types.SnapshotRecord, t time.Time) int {
		if r.CollectedAt.After(t) {
			return 1
		}
		return -1
	})
	s.snapshots = slices.Insert(s.snapshots, i, cp)
	return nil
}

// LatestSnapshot returns the most recently collected snapshot.
func (s *MemoryStore) LatestSnapshot(context.Context) (*types.SnapshotRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return nil, ErrNotFound
	}
	rec := cloneRecord(s.snapshots[len(s.snapshots)-1])
	return &rec, nil
}

// ListSnapshots returns snapshots newest first with the total matching count.
func (s *MemoryStore) ListSnapshots(
	_ context.Context,
	q *SnapshotQuery,
) ([]types.SnapshotRecord, int, error) {
	if q == nil {
		q = &SnapshotQuery{}
	}
	limit, offset := q.limits()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []types.SnapshotRecord
	for i := len(s.snapshots) - 1; i >= 0; i-- {
		r := s.snapshots[i]
		if q.Since != nil && r.CollectedAt.Before(*q.Since) {
			continue
		}
		if q.Until != nil && !r.CollectedAt.Before(*q.Until) {
			continue
		}
		matched = append(matched, r)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)

	out := make([]types.SnapshotRecord, 0, end-offset)
	for _, r := range matched[offset:end] {
		out = append(out, cloneRecord(r))
	}
	return out, total, nil
}

// PruneSnapshots deletes snapshots collected more than olderThan ago.
func (s *MemoryStore) PruneSnapshots(_ context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.nowFunc().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.snapshots)
	s.snapshots = slices.DeleteFunc(s.snapshots, func(r types.SnapshotRecord) bool {
		return r.CollectedAt.Before(cutoff)
	})
	return before - len(s.snapshots), nil
}

// InsertPollRun records the start of a poll cycle.
func (s *MemoryStore) InsertPollRun(context.Context) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, types.PollRun{
		ID:        id,
		StartedAt: s.nowFunc(),
		Status:    types.PollStatusRunning,
	})
	return id, nil
}

// CompletePollRun marks a poll run as finished.
func (s *MemoryStore) CompletePollRun(
	_ context.Context,
	id string,
	status string,
	errText string,
	degraded int,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.runs {
		if s.runs[i].ID != id {
			continue
		}
		now := s.nowFunc()
		s.runs[i].CompletedAt = &now
		s.runs[i].Status = status
		s.runs[i].ErrorText = errText
		s.runs[i].DegradedEndpoints = degraded
		return nil
	}
	return ErrNotFound
}

// ListPollRuns returns the most recent poll runs, newest first.
func (s *MemoryStore) ListPollRuns(_ context.Context, limit int) ([]types.PollRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.PollRun, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// RecoverStalePollRuns marks running rows older than olderThan as crashed
// and forgets rows older than 30 days.
func (s *MemoryStore) RecoverStalePollRuns(_ context.Context, olderThan time.Duration) (int, error) {
	now := s.nowFunc()
	cutoff := now.Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	var crashed int
	for i := range s.runs {
		r := &s.runs[i]
		if r.Status == types.PollStatusRunning && r.StartedAt.Before(cutoff) {
			r.Status = types.PollStatusCrashed
			r.CompletedAt = &now
			crashed++
		}
	}

	s.runs = slices.DeleteFunc(s.runs, func(r types.PollRun) bool {
		return r.StartedAt.Before(now.Add(-pollRunRetention))
	})
	return crashed, nil
}

func cloneRecord(r types.SnapshotRecord) types.SnapshotRecord {
	r.Metrics = maps.Clone(r.Metrics)
	r.Degraded = slices.Clone(r.Degraded)
	return r
}
