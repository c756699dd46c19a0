package domain

import "time"

// Vehicle is a rentable vehicle in the catalog.
//
// Status is a denormalized projection of the vehicle's live order history:
// it must reflect whether a maintenance or rented/active order covers today.
// Only the vehicle status service writes it; everything else treats it as a
// read-only cache over the orders table.
type Vehicle struct {
	ID                int32     `json:"id"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	Color             string    `json:"color"`
	FuelType          string    `json:"fuel_type"`
	Transmission      string    `json:"transmission"`
	Year              int32     `json:"year"`
	PricePerDayCents  int32     `json:"price_per_day_cents"`
	Mileage           int32     `json:"mileage"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// Client owns orders. The engine only ever references clients by ID; account
// management lives outside this core.
type Client struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedOn time.Time `json:"created_on"`
}
