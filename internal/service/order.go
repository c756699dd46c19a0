package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
)

type orderService struct {
	txr       repository.TxRunner
	orderRepo repository.OrderRepository
}

func NewOrderService(txr repository.TxRunner, orderRepo repository.OrderRepository) OrderService {
	return &orderService{txr: txr, orderRepo: orderRepo}
}

// CreateBooking re-validates availability inside the same transaction as the
// insert. The vehicle row lock serializes concurrent bookings for the same
// vehicle, so two overlapping requests cannot both pass the check.
func (s *orderService) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Order, error) {
	from, to := dateOnly(in.IssueDate), dateOnly(in.ReturnDate)
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	if in.PriceCents < 0 {
		return nil, domain.ValidationError("price must not be negative")
	}

	var order *domain.Order
	err := s.txr.InTx(ctx, func(tx repository.Tx) error {
		vehicle, err := tx.Vehicles().LockByID(ctx, in.VehicleID)
		if err != nil {
			return err
		}

		conflicts, err := tx.Orders().ListLiveOverlapping(ctx, in.VehicleID, from, to)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return domain.ConflictError("vehicle unavailable for the selected dates")
		}

		statusID, _, err := tx.Statuses().Resolve(ctx, domain.StatusPending)
		if err != nil {
			return err
		}

		price := in.PriceCents
		if price == 0 {
			price = domain.RentalDays(from, to) * vehicle.PricePerDayCents
		}

		order = &domain.Order{
			VehicleID:  in.VehicleID,
			ClientID:   in.ClientID,
			EmployeeID: in.EmployeeID,
			StatusID:   statusID,
			Status:     domain.StatusPending,
			IssueDate:  from,
			ReturnDate: to,
			PriceCents: price,
			Extras:     in.Extras,
		}
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("booking created",
		"order_id", order.ID, "vehicle_id", order.VehicleID,
		"issue_date", from.Format("2006-01-02"), "return_date", to.Format("2006-01-02"))
	return order, nil
}

func (s *orderService) CloseOrder(ctx context.Context, orderID int32, outcome string) (*domain.Order, error) {
	if outcome != domain.StatusCompleted && outcome != domain.StatusCancelled {
		return nil, domain.ValidationError("outcome must be %q or %q", domain.StatusCompleted, domain.StatusCancelled)
	}

	var order *domain.Order
	err := s.txr.InTx(ctx, func(tx repository.Tx) error {
		o, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if domain.IsClosedStatus(o.Status) {
			// Retry tolerance: closing a closed order succeeds untouched.
			order = o
			return nil
		}
		if outcome == domain.StatusCancelled &&
			o.Status != domain.StatusPending && o.Status != domain.StatusActive {
			return domain.InvalidOperationError("order %d cannot be cancelled from status %q", orderID, o.Status)
		}

		statusID, _, err := tx.Statuses().Resolve(ctx, outcome)
		if err != nil {
			return err
		}
		if err := tx.Orders().CloseStatus(ctx, orderID, statusID, nil); err != nil {
			return err
		}
		o.StatusID = statusID
		o.Status = outcome
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID int32) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) ListVehicleOrders(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.ListByVehicle(ctx, vehicleID, page, pageSize)
}

// ActivateDueBookings moves pending orders whose issue date has arrived into
// the active state and resyncs each touched vehicle's cached status.
func (s *orderService) ActivateDueBookings(ctx context.Context) (int, error) {
	today := dateOnly(time.Now())

	activated := 0
	err := s.txr.InTx(ctx, func(tx repository.Tx) error {
		due, err := tx.Orders().ListDuePending(ctx, today)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		activeID, _, err := tx.Statuses().Resolve(ctx, domain.StatusActive)
		if err != nil {
			return err
		}

		vehicles := make(map[int32]struct{})
		for _, o := range due {
			if err := tx.Orders().UpdateStatusID(ctx, o.ID, activeID); err != nil {
				return err
			}
			vehicles[o.VehicleID] = struct{}{}
			activated++
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
	if activated > 0 {
		logger.Info("activated due bookings", "count", activated)
	}
	return activated, nil
}
