// Package scheduler keeps the directory snapshot warm by reloading it on a
// cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"codev-directory-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Refresher reloads the directory snapshot and reports how many profiles it holds.
type Refresher interface {
	RefreshSnapshot(ctx context.Context) (int, error)
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string // cron spec, e.g. "@every 5m"

	mu      sync.Mutex
	running bool
	initial sync.WaitGroup
}

func New(refresher Refresher, spec string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      spec,
	}
}

// Start registers the job and starts the scheduler. One refresh runs
// immediately so the cache is populated before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	logger.Log.Info("Directory refresh scheduled", "spec", s.spec)

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.refresh(ctx)
	}()
	return nil
}

// Stop halts the scheduler and waits for running refreshes, including the
// startup one, to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
	logger.Log.Info("Directory refresh stopped")
}

// refresh skips the tick if the previous one is still running.
func (s *Scheduler) refresh(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logger.Log.Warn("Directory refresh still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	count, err := s.refresher.RefreshSnapshot(ctx)
	if err != nil {
		logger.Log.Error("Directory refresh failed", "error", err)
		return
	}
	logger.Log.Info("Directory snapshot refreshed", "profiles", count)
}
