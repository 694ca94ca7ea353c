// Package engine runs the poll cycle: obtain a token, collect a snapshot,
// publish it, persist it and notify.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
	"github.com/donaldgifford/ebay-seller-metrics/internal/notify"
	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

const instrumentationName = "github.com/donaldgifford/ebay-seller-metrics/internal/engine"

// ErrNoSnapshot is returned by Latest before any poll has completed.
var ErrNoSnapshot = errors.New("no snapshot collected yet")

// Poller runs poll cycles and holds the latest snapshot.
type Poller struct {
	tokens    ebay.TokenProvider
	collector ebay.MetricsCollector
	store     store.Store
	notifier  notify.Notifier
	log       *slog.Logger
	retention time.Duration
	nowFunc   func() time.Time

	tracer       trace.Tracer
	pollDuration metric.Float64Histogram

	// cycle serializes poll cycles from the scheduler and manual triggers.
	cycle sync.Mutex

	mu     sync.RWMutex
	latest *types.Snapshot
}

// PollerOption configures the Poller.
type PollerOption func(*Poller)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		p.log = l
	}
}

// WithRetention prunes stored snapshots older than d after each poll.
// Zero keeps everything.
func WithRetention(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.retention = d
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) PollerOption {
	return func(p *Poller) {
		p.nowFunc = f
	}
}

// NewPoller creates a new Poller with injected dependencies.
func NewPoller(
	tokens ebay.TokenProvider,
	collector ebay.MetricsCollector,
	s store.Store,
	n notify.Notifier,
	opts ...PollerOption,
) *Poller {
	p := &Poller{
		tokens:    tokens,
		collector: collector,
		store:     s,
		notifier:  n,
		log:       slog.Default(),
		nowFunc:   time.Now,
		tracer:    otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(p)
	}

	hist, err := otel.Meter(instrumentationName).Float64Histogram(
		"ebay_seller.poll.duration",
		metric.WithDescription("Duration of poll cycles."),
		metric.WithUnit("s"),
	)
	if err != nil {
		p.log.Warn("creating poll duration instrument", "error", err)
	}
	p.pollDuration = hist

	return p
}

// Init loads the most recent stored snapshot so the API and the notification
// baseline survive restarts, and marks poll runs left running by a previous
// process as crashed.
func (p *Poller) Init(ctx context.Context, staleAfter time.Duration) error {
	crashed, err := p.store.RecoverStalePollRuns(ctx, staleAfter)
	if err != nil {
		return fmt.Errorf("recovering stale poll runs: %w", err)
	}
	if crashed > 0 {
		p.log.Warn("marked stale poll runs as crashed", "count", crashed)
	}

	rec, err := p.store.LatestSnapshot(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading latest snapshot: %w", err)
	}

	snap := rec.Snapshot()
	p.setLatest(snap)
	metrics.PublishSnapshot(snap)
	p.log.Info("loaded latest snapshot", "collected_at", snap.CollectedAt)
	return nil
}

// Latest returns the most recent snapshot, or ErrNoSnapshot.
func (p *Poller) Latest() (*types.Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.latest == nil {
		return nil, ErrNoSnapshot
	}
	return p.latest, nil
}

func (p *Poller) setLatest(s *types.Snapshot) (prev *types.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev = p.latest
	p.latest = s
	return prev
}

// RunPoll executes one poll cycle and returns the collected snapshot. It
// fails only when no access token can be obtained or the snapshot cannot be
// persisted; degraded endpoints are reported in the snapshot.
func (p *Poller) RunPoll(ctx context.Context) (*types.Snapshot, error) {
	p.cycle.Lock()
	defer p.cycle.Unlock()

	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "engine.RunPoll")
	defer span.End()

	runID, err := p.store.InsertPollRun(ctx)
	if err != nil {
		p.log.Warn("recording poll run start", "error", err)
	}

	snap, err := p.poll(ctx)

	status := types.PollStatusSucceeded
	var errText string
	var degraded int
	if err != nil {
		status = types.PollStatusFailed
		errText = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if snap != nil {
		degraded = len(snap.Degraded)
	}

	if runID != "" {
		if cerr := p.store.CompletePollRun(ctx, runID, status, errText, degraded); cerr != nil {
			p.log.Warn("recording poll run completion", "run_id", runID, "error", cerr)
		}
	}

	elapsed := time.Since(start).Seconds()
	metrics.PollDuration.Observe(elapsed)
	metrics.PollsTotal.WithLabelValues(status).Inc()
	if p.pollDuration != nil {
		p.pollDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("status", status)))
	}
	span.SetAttributes(
		attribute.String("poll.status", status),
		attribute.Int("poll.degraded_endpoints", degraded),
	)

	p.log.Info("poll finished",
		"run_id", runID,
		"status", status,
		"degraded", degraded,
		"duration_ms", int64(elapsed*1000),
	)

	return snap, err
}

func (p *Poller) poll(ctx context.Context) (*types.Snapshot, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining access token: %w", err)
	}

	snap := p.collector.Collect(ctx, token)
	if snap.CollectedAt.IsZero() {
		snap.CollectedAt = p.nowFunc()
	}

	metrics.PublishSnapshot(snap)
	prev := p.setLatest(snap)
	p.maybeNotify(ctx, prev, snap)

	if err := p.store.SaveSnapshot(ctx, snap.Record("")); err != nil {
		return snap, fmt.Errorf("persisting snapshot: %w", err)
	}

	if p.retention > 0 {
		pruned, err := p.store.PruneSnapshots(ctx, p.retention)
		if err != nil {
			p.log.Warn("pruning snapshots", "error", err)
		} else if pruned > 0 {
			p.log.Debug("pruned snapshots", "count", pruned)
		}
	}

	return snap, nil
}
