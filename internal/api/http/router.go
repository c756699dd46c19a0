package http

import (
	"autorent-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires the public and admin routes. Role checks live here, at the
// edge; the services behind the handlers do not re-check.
func NewRouter(
	booking *BookingHandler,
	admin *AdminHandler,
	tm security.TokenManager,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public catalog and booking surface.
	api.HandleFunc("/vehicles", admin.ListVehicles).Methods("GET")
	api.HandleFunc("/vehicles/{id}", admin.GetVehicle).Methods("GET")
	api.HandleFunc("/vehicles/{id}/availability", booking.CheckAvailability).Methods("GET")
	api.HandleFunc("/bookings", booking.CreateBooking).Methods("POST")
	api.HandleFunc("/orders/{id}", booking.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/close", booking.CloseOrder).Methods("POST")

	// Staff-only back office.
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(RequireRole(tm, security.RoleAdmin, security.RoleEmployee))
	adminRoutes.HandleFunc("/vehicles", admin.AddVehicle).Methods("POST")
	adminRoutes.HandleFunc("/vehicles/{id}/status", admin.SetVehicleStatus).Methods("PUT")
	adminRoutes.HandleFunc("/vehicles/{id}", admin.DeleteVehicle).Methods("DELETE")
	adminRoutes.HandleFunc("/vehicles/{id}/orders", booking.ListVehicleOrders).Methods("GET")

	return r
}
