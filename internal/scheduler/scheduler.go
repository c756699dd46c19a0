package scheduler

import (
	"time"

	"autorent-backend/internal/jobs"
	"autorent-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with the provided job runner. Schedules
// use UTC and second precision.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.ActivateDueBookings, s.jobs.ActivateDueBookings); err != nil {
		logger.Error("failed to register ActivateDueBookings job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.CompleteElapsedMaintenance, s.jobs.CompleteElapsedMaintenance); err != nil {
		logger.Error("failed to register CompleteElapsedMaintenance job", "error", err)
	}

	logger.Info("cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("cron scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron scheduler stopped")
}
