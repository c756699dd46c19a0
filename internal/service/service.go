package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
)

// AvailabilityService answers whether a vehicle can be booked for a date
// range. The verdict is advisory: booking creation re-checks inside its own
// transaction, so a positive answer here can still lose the race.
type AvailabilityService interface {
	Check(ctx context.Context, vehicleID int32, from, to time.Time) (*domain.Availability, error)
}

// CreateBookingInput carries a confirmed customer booking. PriceCents of
// zero means "compute from the vehicle's daily price" (inclusive day count).
type CreateBookingInput struct {
	VehicleID  int32
	ClientID   *int32
	EmployeeID *int32
	IssueDate  time.Time
	ReturnDate time.Time
	PriceCents int32
	Extras     []string
}

// OrderService owns creation and closure of order rows. It never writes the
// denormalized vehicle status; that belongs to VehicleStatusService.
type OrderService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Order, error)
	// CloseOrder moves the order to completed or cancelled. Closing an
	// already-closed order is a no-op success so retries stay safe.
	CloseOrder(ctx context.Context, orderID int32, outcome string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int32) (*domain.Order, error)
	ListVehicleOrders(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Order, int32, error)
	// ActivateDueBookings flips pending orders whose issue date has arrived
	// to active and resyncs the affected vehicles. Returns the number of
	// activated orders. Called from the scheduler.
	ActivateDueBookings(ctx context.Context) (int, error)
}

// VehicleStatusService is the administrative surface for vehicle state and
// the single writer of vehicles.status.
type VehicleStatusService interface {
	// SetStatus transitions the vehicle between available and maintenance.
	// Any other target is rejected. Repeating the current state is an
	// idempotent success.
	SetStatus(ctx context.Context, vehicleID int32, target string) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID int32) (*domain.Vehicle, error)
	AddVehicle(ctx context.Context, v *domain.Vehicle) error
	ListVehicles(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error)
	// DeleteVehicle removes the vehicle unless a pending/active/rented order
	// with return_date >= today exists. Maintenance history never blocks.
	DeleteVehicle(ctx context.Context, vehicleID int32) error
	// CompleteElapsedMaintenance closes maintenance orders whose window has
	// ended and recomputes the owning vehicles' status. Returns the number
	// of closed windows. Called from the scheduler.
	CompleteElapsedMaintenance(ctx context.Context) (int, error)
}
