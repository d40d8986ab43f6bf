// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/secopslab/incidentdb/ingest"
)

// Runner runs one ingestion pass. *ingest.Loader satisfies it.
type Runner interface {
	LoadAll(ctx context.Context, mode ingest.WriteMode) (*ingest.Result, error)
}

// Scheduler re-runs ingestion on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	mode   ingest.WriteMode
	spec   string
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New validates spec and registers the ingestion job. The job is not
// started until Start is called.
func New(runner Runner, spec string, mode ingest.WriteMode, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   cron.New(),
		runner: runner,
		mode:   mode,
		spec:   spec,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid load schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("load scheduler started", "schedule", s.spec, "mode", s.mode)
}

// Stop cancels any in-flight load and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("load scheduler stopped")
}

// run is the cron job. Overlapping ticks are skipped.
func (s *Scheduler) run() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("previous scheduled load still running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	res, err := s.runner.LoadAll(s.ctx, s.mode)
	if err != nil {
		s.logger.Warn("scheduled load failed", "error", err)
		return
	}
	s.logger.Info("scheduled load finished", "run_id", res.RunID, "total_rows", res.Total)
}
