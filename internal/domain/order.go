package domain

import "time"

// Order is either a customer reservation or a synthetic maintenance block.
// Maintenance orders carry a zero price and no client.
//
// Lifecycle: pending → active → completed, with cancelled reachable from
// pending or active. Maintenance orders sit outside the customer funnel and
// close straight to completed. Orders are never physically deleted while
// referenced by history; closure is a status change.
type Order struct {
	ID         int32     `json:"id"`
	VehicleID  int32     `json:"vehicle_id"`
	ClientID   *int32    `json:"client_id,omitempty"`
	EmployeeID *int32    `json:"employee_id,omitempty"`
	StatusID   int32     `json:"status_id"`
	Status     string    `json:"status"` // joined status name, populated on reads
	IssueDate  time.Time `json:"issue_date"`
	ReturnDate time.Time `json:"return_date"`
	PriceCents int32     `json:"price_cents"`
	Extras     []string  `json:"extras,omitempty"` // add-ons like child seat or gps
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// Overlaps reports whether the order's date range intersects [from, to],
// boundaries inclusive. An order returning on the requested start date still
// counts as a conflict.
func (o *Order) Overlaps(from, to time.Time) bool {
	return !o.IssueDate.After(to) && !o.ReturnDate.Before(from)
}

// IsLive reports whether the order still occupies the vehicle's schedule.
func (o *Order) IsLive() bool {
	for _, s := range LiveOrderStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// RentalDays returns the inclusive day count of the order's range. Same-day
// rentals count as one day.
func RentalDays(from, to time.Time) int32 {
	days := int32(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// Availability is the verdict of an availability check. Reason is set only
// when the vehicle is unavailable and is safe to show to the end user.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
