package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic snapshot and specials-sweep jobs.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
}

// NewScheduler creates a Scheduler that runs engine jobs on a schedule.
func NewScheduler(
	eng *Engine,
	snapshotInterval time.Duration,
	specialsSweepInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if _, err := c.AddFunc(
		"@every "+snapshotInterval.String(),
		s.runSnapshot,
	); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(
		"@every "+specialsSweepInterval.String(),
		s.runSpecialsSweep,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runSnapshot() {
	if err := s.engine.RunSnapshot(context.Background()); err != nil {
		s.log.Error("scheduled snapshot failed", "error", err)
	}
}

func (s *Scheduler) runSpecialsSweep() {
	if err := s.engine.RunSpecialsSweep(context.Background()); err != nil {
		s.log.Error("scheduled specials sweep failed", "error", err)
	}
}
