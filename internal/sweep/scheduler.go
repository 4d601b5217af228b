package sweep

import (
	"context"
	"sync"
	"time"

	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 30 * time.Minute

// Scheduler drives the two sweeps on cron cadences. Each sweep holds
// its own mutex so a slow run is skipped by the next tick instead of
// overlapping itself.
type Scheduler struct {
	l    pkgLog.Logger
	uc   UseCase
	cron *cron.Cron

	searchMu    sync.Mutex
	watchlistMu sync.Mutex
}

func NewScheduler(l pkgLog.Logger, uc UseCase) *Scheduler {
	return &Scheduler{
		l:    l,
		uc:   uc,
		cron: cron.New(),
	}
}

// Start registers both sweeps and starts the cron loop.
func (s *Scheduler) Start(searchSpec, watchlistSpec string) error {
	if _, err := s.cron.AddFunc(searchSpec, s.runSearchSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(watchlistSpec, s.runWatchlistSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.l.Infof(context.Background(), "internal.sweep.Scheduler.Start: search=%q watchlist=%q", searchSpec, watchlistSpec)

	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.l.Infof(context.Background(), "internal.sweep.Scheduler.Stop: stopped")
}

// RunOnce executes both sweeps synchronously, for one-shot batch mode.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if _, err := s.uc.RunSearchSweep(ctx); err != nil {
		return err
	}
	if _, err := s.uc.RunWatchlistSweep(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) runSearchSweep() {
	if !s.searchMu.TryLock() {
		s.l.Warnf(context.Background(), "internal.sweep.Scheduler.runSearchSweep: previous run still active, skipping tick")
		return
	}
	defer s.searchMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.uc.RunSearchSweep(ctx); err != nil {
		s.l.Errorf(ctx, "internal.sweep.Scheduler.runSearchSweep: %v", err)
	}
}

func (s *Scheduler) runWatchlistSweep() {
	if !s.watchlistMu.TryLock() {
		s.l.Warnf(context.Background(), "internal.sweep.Scheduler.runWatchlistSweep: previous run still active, skipping tick")
		return
	}
	defer s.watchlistMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.uc.RunWatchlistSweep(ctx); err != nil {
		s.l.Errorf(ctx, "internal.sweep.Scheduler.runWatchlistSweep: %v", err)
	}
}
