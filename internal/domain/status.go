package domain

// Status is a row of the statuses reference table. The vocabulary is
// open-ended: unseen names are inserted on first use and existing names are
// never renamed or deleted.
type Status struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// Symbolic status names shared by vehicles and orders.
const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusRented      = "rented"
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// LiveOrderStatuses are the order statuses that occupy a vehicle's schedule.
// An order in any of these states blocks overlapping bookings.
var LiveOrderStatuses = []string{
	StatusPending,
	StatusActive,
	StatusRented,
	StatusMaintenance,
}

// ClosedOrderStatuses are the terminal order statuses.
var ClosedOrderStatuses = []string{
	StatusCompleted,
	StatusCancelled,
}

// IsClosedStatus reports whether name is a terminal order status.
func IsClosedStatus(name string) bool {
	return name == StatusCompleted || name == StatusCancelled
}
