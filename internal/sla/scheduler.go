package sla

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/observability"
)

// Sweeper runs one full SLA evaluation pass.
type Sweeper interface {
	Sweep(ctx context.Context) (SweepResult, error)
}

// Scheduler fires the tracker on a fixed cadence. A single atomic in-progress
// flag guards against overlapping passes within this process: a tick that
// arrives while a sweep is running is dropped, never queued. There is no
// cross-process coordination; each replica runs its own timer.
type Scheduler struct {
	tracker  Sweeper
	interval time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger

	inProgress atomic.Bool
	cancel     context.CancelFunc
	done       chan struct{}

	mu        sync.Mutex
	lastRun   time.Time
	lastSweep SweepResult
}

// NewScheduler creates the scheduler.
func NewScheduler(tracker Sweeper, interval time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		tracker:  tracker,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start launches the periodic loop. It returns immediately; the loop stops
// when Stop is called or the parent context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("sla scheduler started", zap.Duration("interval", s.interval))
		for {
			select {
			case <-loopCtx.Done():
				s.logger.Info("sla scheduler stopped")
				return
			case <-ticker.C:
				s.runGuarded(loopCtx)
			}
		}
	}()
}

// Stop terminates the loop and waits for it to exit. An in-flight sweep is
// interrupted via context cancellation.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// TriggerNow runs a sweep outside the timer for manual invocation. It respects
// the same overlap guard: when a sweep is already in flight it is a no-op and
// the second return value is false.
func (s *Scheduler) TriggerNow(ctx context.Context) (SweepResult, bool) {
	return s.runGuarded(ctx)
}

// IsRunning reports whether a sweep is currently in progress.
func (s *Scheduler) IsRunning() bool {
	return s.inProgress.Load()
}

// LastRun returns the completion time and result of the most recent sweep.
func (s *Scheduler) LastRun() (time.Time, SweepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastSweep
}

// runGuarded checks and sets the in-progress flag atomically so two
// concurrent callers cannot both observe "not running".
func (s *Scheduler) runGuarded(ctx context.Context) (SweepResult, bool) {
	if !s.inProgress.CompareAndSwap(false, true) {
		s.logger.Warn("sweep already in progress, skipping tick")
		s.metrics.RecordSweepSkipped()
		return SweepResult{}, false
	}
	defer s.inProgress.Store(false)

	start := time.Now()
	result, err := s.tracker.Sweep(ctx)
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		return result, true
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastSweep = result
	s.mu.Unlock()

	s.logger.Info("sweep completed",
		zap.Int("checked", result.Checked),
		zap.Int("warnings_raised", result.WarningsRaised),
		zap.Int("breaches_raised", result.BreachesRaised),
		zap.Duration("duration", time.Since(start)))
	return result, true
}
