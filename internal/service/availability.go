package service

import (
	"context"
	"fmt"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type availabilityService struct {
	orderRepo   repository.OrderRepository
	vehicleRepo repository.VehicleRepository
}

func NewAvailabilityService(orderRepo repository.OrderRepository, vehicleRepo repository.VehicleRepository) AvailabilityService {
	return &availabilityService{orderRepo: orderRepo, vehicleRepo: vehicleRepo}
}

func (s *availabilityService) Check(ctx context.Context, vehicleID int32, from, to time.Time) (*domain.Availability, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	conflicts, err := s.orderRepo.ListLiveOverlapping(ctx, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if len(conflicts) == 0 {
		return &domain.Availability{Available: true}, nil
	}

	c := conflicts[0]
	reason := fmt.Sprintf("vehicle unavailable for the selected dates: %s from %s to %s",
		c.Status, c.IssueDate.Format("2006-01-02"), c.ReturnDate.Format("2006-01-02"))
	return &domain.Availability{Available: false, Reason: reason}, nil
}

func validateDateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return domain.ValidationError("issue and return dates are required")
	}
	if from.After(to) {
		return domain.ValidationError("issue date %s is after return date %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return nil
}

// dateOnly truncates a timestamp to its calendar date in UTC. Order date
// ranges are whole days; comparisons use date precision.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
