package repository

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	// LockByID fetches the vehicle with a row lock (SELECT ... FOR UPDATE),
	// making the caller's check-and-insert a critical section per vehicle.
	// Only meaningful inside a transaction.
	LockByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error)
	// UpdateStatus writes the denormalized status column. The vehicle status
	// service is the only caller; nothing else may touch vehicles.status.
	UpdateStatus(ctx context.Context, id int32, status string) error
	Delete(ctx context.Context, id int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	// ListLiveOverlapping returns orders in a live status whose inclusive
	// date range intersects [from, to] for the vehicle.
	ListLiveOverlapping(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Order, error)
	// FindOpenMaintenance returns the live maintenance order covering onDate,
	// or nil when the vehicle has none.
	FindOpenMaintenance(ctx context.Context, vehicleID int32, onDate time.Time) (*domain.Order, error)
	// CloseStatus moves the order to a terminal status, optionally truncating
	// its return date (early return of a maintenance window).
	CloseStatus(ctx context.Context, orderID, statusID int32, returnDate *time.Time) error
	// CountBlockingDeletion counts orders that forbid deleting the vehicle:
	// status in {pending, active, rented} with return_date >= today.
	CountBlockingDeletion(ctx context.Context, vehicleID int32, today time.Time) (int32, error)
	ListByVehicle(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Order, int32, error)
	ListDuePending(ctx context.Context, onDate time.Time) ([]domain.Order, error)
	// ListExpiredMaintenance returns maintenance orders still in the live
	// status whose window ended before asOf.
	ListExpiredMaintenance(ctx context.Context, asOf time.Time) ([]domain.Order, error)
	UpdateStatusID(ctx context.Context, orderID, statusID int32) error
}

type StatusRepository interface {
	// Resolve returns the id for a status name, inserting it on first use.
	// The bool reports whether the row was created by this call.
	Resolve(ctx context.Context, name string) (int32, bool, error)
	GetByName(ctx context.Context, name string) (*domain.Status, error)
}

// Tx is the repository set bound to one open transaction.
type Tx interface {
	Vehicles() VehicleRepository
	Orders() OrderRepository
	Statuses() StatusRepository
}

// TxRunner runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back on any error or panic, so
// partial writes are never visible. Store-level failures are classified into
// the domain error taxonomy before they leave the runner.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
