package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
)

const maintenanceInterval = time.Hour

// Scheduler runs the poll cycle and store maintenance on a schedule.
type Scheduler struct {
	cron       *cron.Cron
	poller     *Poller
	store      store.Store
	staleAfter time.Duration
	log        *slog.Logger

	pollEntryID        cron.EntryID
	maintenanceEntryID cron.EntryID

	adhoc sync.WaitGroup
}

// NewScheduler creates a Scheduler that polls every pollInterval. Poll runs
// still marked running after staleAfter are recovered by the hourly
// maintenance job. Overlapping runs of the same job are skipped.
func NewScheduler(
	p *Poller,
	s store.Store,
	pollInterval time.Duration,
	staleAfter time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	sched := &Scheduler{
		cron:       c,
		poller:     p,
		store:      s,
		staleAfter: staleAfter,
		log:        log,
	}

	var err error
	sched.pollEntryID, err = c.AddFunc("@every "+pollInterval.String(), sched.runPoll)
	if err != nil {
		return nil, err
	}

	sched.maintenanceEntryID, err = c.AddFunc("@every "+maintenanceInterval.String(), sched.runMaintenance)
	if err != nil {
		return nil, err
	}

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// PollNow runs the poll job once in the background, outside the schedule.
// It shares the job's overlap guard, so it is skipped while a scheduled
// poll is in flight.
func (s *Scheduler) PollNow() {
	job := s.cron.Entry(s.pollEntryID).WrappedJob
	if job == nil {
		return
	}
	s.adhoc.Add(1)
	go func() {
		defer s.adhoc.Done()
		job.Run()
	}()
}

// Stop gracefully stops the scheduler. The returned context is done once
// scheduled and PollNow jobs have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	cronDone := s.cron.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-cronDone.Done()
		s.adhoc.Wait()
		cancel()
	}()
	return ctx
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextPoll returns when the poll job runs next. Zero before Start.
func (s *Scheduler) NextPoll() time.Time {
	return s.cron.Entry(s.pollEntryID).Next
}

// SyncNextRunTimestamps publishes the next poll time as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	if next := s.NextPoll(); !next.IsZero() {
		metrics.SchedulerNextPollTimestamp.Set(float64(next.Unix()))
	}
}

func (s *Scheduler) runPoll() {
	ctx := context.Background()
	s.log.Debug("scheduled poll starting")
	if _, err := s.poller.RunPoll(ctx); err != nil {
		s.log.Error("scheduled poll failed", "error", err)
	}
	s.SyncNextRunTimestamps()
}

func (s *Scheduler) runMaintenance() {
	ctx := context.Background()
	n, err := s.store.RecoverStalePollRuns(ctx, s.staleAfter)
	if err != nil {
		s.log.Error("recovering stale poll runs", "error", err)
		return
	}
	if n > 0 {
		s.log.Warn("marked stale poll runs as crashed", "count", n)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
