package scheduler

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs a task at a fixed interval on a background goroutine. The
// market services use it for periodic housekeeping such as publishing cache
// size gauges.
type Scheduler struct {
	interval time.Duration
	task     func(context.Context)
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
}

// New builds a scheduler that will invoke task every interval once started.
func New(interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
	}
}

// Start launches the loop. With firstRunImmediately the task also runs once
// before the first tick. Starting an already running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go s.run(ctx, firstRunImmediately)
}

func (s *Scheduler) run(ctx context.Context, firstRunImmediately bool) {
	defer s.wg.Done()

	if firstRunImmediately {
		s.task(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.task(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the loop and waits for an in-flight task to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning reports whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
