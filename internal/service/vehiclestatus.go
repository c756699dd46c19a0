package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
)

type vehicleStatusService struct {
	txr         repository.TxRunner
	vehicleRepo repository.VehicleRepository
	orderRepo   repository.OrderRepository

	// Length of an administrative maintenance block, in days.
	windowDays int
}

func NewVehicleStatusService(txr repository.TxRunner, vehicleRepo repository.VehicleRepository, orderRepo repository.OrderRepository, windowDays int) VehicleStatusService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &vehicleStatusService{
		txr:         txr,
		vehicleRepo: vehicleRepo,
		orderRepo:   orderRepo,
		windowDays:  windowDays,
	}
}

// SetStatus executes the administrative transition as one transaction: the
// vehicle's cached status and its maintenance orders change together or not
// at all.
func (s *vehicleStatusService) SetStatus(ctx context.Context, vehicleID int32, target string) (*domain.Vehicle, error) {
	if target != domain.StatusAvailable && target != domain.StatusMaintenance {
		return nil, domain.InvalidOperationError("status %q cannot be set directly; allowed targets are %q and %q",
			target, domain.StatusAvailable, domain.StatusMaintenance)
	}

	today := dateOnly(time.Now())
	var vehicle *domain.Vehicle
	err := s.txr.InTx(ctx, func(tx repository.Tx) error {
		v, err := tx.Vehicles().LockByID(ctx, vehicleID)
		if err != nil {
			return err
		}

		targetID, _, err := tx.Statuses().Resolve(ctx, target)
		if err != nil {
			return err
		}

		switch target {
		case domain.StatusMaintenance:
			open, err := tx.Orders().FindOpenMaintenance(ctx, vehicleID, today)
			if err != nil {
				return err
			}
			if open == nil {
				window := &domain.Order{
					VehicleID:  vehicleID,
					StatusID:   targetID,
					Status:     domain.StatusMaintenance,
					IssueDate:  today,
					ReturnDate: today.AddDate(0, 0, s.windowDays),
					PriceCents: 0,
				}
				if err := tx.Orders().Create(ctx, window); err != nil {
					return err
				}
				logger.Info("maintenance window opened",
					"vehicle_id", vehicleID, "order_id", window.ID,
					"until", window.ReturnDate.Format("2006-01-02"))
			}

		case domain.StatusAvailable:
			completedID, _, err := tx.Statuses().Resolve(ctx, domain.StatusCompleted)
			if err != nil {
				return err
			}
			open, err := tx.Orders().FindOpenMaintenance(ctx, vehicleID, today)
			if err != nil {
				return err
			}
			if open != nil {
				returned := today
				if err := tx.Orders().CloseStatus(ctx, open.ID, completedID, &returned); err != nil {
					return err
				}
				logger.Info("maintenance window closed", "vehicle_id", vehicleID, "order_id", open.ID)
			}
		}

		if err := tx.Vehicles().UpdateStatus(ctx, vehicleID, target); err != nil {
			return err
		}
		v.Status = target
		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleStatusService) GetVehicle(ctx context.Context, vehicleID int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *vehicleStatusService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.Brand == "" || v.Model == "" {
		return domain.ValidationError("brand and model are required")
	}
	if v.PricePerDayCents <= 0 {
		return domain.ValidationError("daily price must be positive")
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleStatusService) ListVehicles(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.List(ctx, page, pageSize)
}

func (s *vehicleStatusService) DeleteVehicle(ctx context.Context, vehicleID int32) error {
	today := dateOnly(time.Now())
	return s.txr.InTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Vehicles().LockByID(ctx, vehicleID); err != nil {
			return err
		}
		blocking, err := tx.Orders().CountBlockingDeletion(ctx, vehicleID, today)
		if err != nil {
			return err
		}
		if blocking > 0 {
			return domain.InvalidOperationError("vehicle %d is in active use by %d order(s)", vehicleID, blocking)
		}
		return tx.Vehicles().Delete(ctx, vehicleID)
	})
}

// CompleteElapsedMaintenance closes maintenance windows whose return date has
// passed and brings the owning vehicles' cached status back in line.
func (s *vehicleStatusService) CompleteElapsedMaintenance(ctx context.Context) (int, error) {
	today := dateOnly(time.Now())

	closed := 0
	err := s.txr.InTx(ctx, func(tx repository.Tx) error {
		expired, err := tx.Orders().ListExpiredMaintenance(ctx, today)
		if err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		completedID, _, err := tx.Statuses().Resolve(ctx, domain.StatusCompleted)
		if err != nil {
			return err
		}

		vehicles := make(map[int32]struct{})
		for _, o := range expired {
			if err := tx.Orders().CloseStatus(ctx, o.ID, completedID, nil); err != nil {
				return err
			}
			vehicles[o.VehicleID] = struct{}{}
			closed++
		}
		for vehicleID := range vehicles {
			if _, err := recomputeVehicleStatus(ctx, tx, vehicleID, today); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		logger.Info("completed elapsed maintenance windows", "count", closed)
	}
	return closed, nil
}

// recomputeVehicleStatus rematerializes vehicles.status from the live orders
// covering today. It locks the vehicle row first; callers must already be
// inside a transaction. Together with SetStatus it is the only code path
// that writes the status column.
func recomputeVehicleStatus(ctx context.Context, tx repository.Tx, vehicleID int32, today time.Time) (string, error) {
	v, err := tx.Vehicles().LockByID(ctx, vehicleID)
	if err != nil {
		return "", err
	}

	live, err := tx.Orders().ListLiveOverlapping(ctx, vehicleID, today, today)
	if err != nil {
		return "", err
	}

	status := domain.StatusAvailable
	for _, o := range live {
		switch o.Status {
		case domain.StatusMaintenance:
			status = domain.StatusMaintenance
		case domain.StatusRented, domain.StatusActive:
			if status != domain.StatusMaintenance {
				status = domain.StatusRented
			}
		}
	}

	if v.Status != status {
		if err := tx.Vehicles().UpdateStatus(ctx, vehicleID, status); err != nil {
			return "", err
		}
	}
	return status, nil
}
