package jobs

import (
	"context"

	"autorent-backend/internal/config"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/service"
)

// JobRunner coordinates the scheduled lifecycle sweeps. All state changes go
// through the services so the vehicle status single-writer rule holds for
// background work too.
type JobRunner struct {
	orders   service.OrderService
	vehicles service.VehicleStatusService
	config   *config.Config
}

func NewJobRunner(orders service.OrderService, vehicles service.VehicleStatusService, cfg *config.Config) *JobRunner {
	return &JobRunner{orders: orders, vehicles: vehicles, config: cfg}
}

// Config exposes the configuration for schedule registration.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("starting job", "job", jobName)
	jobFunc()
	logger.Info("job completed", "job", jobName)
}

// ActivateDueBookings flips pending orders whose issue date has arrived to
// active.
func (jr *JobRunner) ActivateDueBookings() {
	jr.runWithRecovery("ActivateDueBookings", func() {
		count, err := jr.orders.ActivateDueBookings(context.Background())
		if err != nil {
			logger.Error("failed to activate due bookings", "error", err)
			return
		}
		logger.Info("due bookings activated", "count", count)
	})
}

// CompleteElapsedMaintenance closes maintenance windows that have run out and
// returns the vehicles to the available pool.
func (jr *JobRunner) CompleteElapsedMaintenance() {
	jr.runWithRecovery("CompleteElapsedMaintenance", func() {
		count, err := jr.vehicles.CompleteElapsedMaintenance(context.Background())
		if err != nil {
			logger.Error("failed to complete elapsed maintenance", "error", err)
			return
		}
		logger.Info("elapsed maintenance windows completed", "count", count)
	})
}

// RunAllJobs runs every sweep once, for manual execution by operators.
func (jr *JobRunner) RunAllJobs() {
	jr.ActivateDueBookings()
	jr.CompleteElapsedMaintenance()
}
