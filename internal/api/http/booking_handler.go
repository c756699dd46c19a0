package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/service"

	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// BookingHandler exposes the customer-facing booking surface: availability
// lookups, booking creation, and order closure.
type BookingHandler struct {
	orders       service.OrderService
	availability service.AvailabilityService
}

func NewBookingHandler(orders service.OrderService, availability service.AvailabilityService) *BookingHandler {
	return &BookingHandler{orders: orders, availability: availability}
}

type createBookingRequest struct {
	VehicleID  int32    `json:"vehicle_id"`
	ClientID   *int32   `json:"client_id,omitempty"`
	EmployeeID *int32   `json:"employee_id,omitempty"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	PriceCents int32    `json:"price_cents,omitempty"`
	Extras     []string `json:"extras,omitempty"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "end_date must be YYYY-MM-DD")
		return
	}

	order, err := h.orders.CreateBooking(r.Context(), service.CreateBookingInput{
		VehicleID:  req.VehicleID,
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		IssueDate:  start,
		ReturnDate: end,
		PriceCents: req.PriceCents,
		Extras:     req.Extras,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, order)
}

type closeOrderRequest struct {
	Outcome string `json:"outcome"`
}

func (h *BookingHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid order id")
		return
	}

	var req closeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	order, err := h.orders.CloseOrder(r.Context(), orderID, req.Outcome)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

func (h *BookingHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid order id")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid vehicle id")
		return
	}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "to must be YYYY-MM-DD")
		return
	}

	verdict, err := h.availability.Check(r.Context(), vehicleID, from, to)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, verdict)
}

func (h *BookingHandler) ListVehicleOrders(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid vehicle id")
		return
	}

	page, pageSize := paging(r)
	orders, total, err := h.orders.ListVehicleOrders(r.Context(), vehicleID, page, pageSize)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"orders": ordersOrEmpty(orders),
		"total":  total,
	})
}

func ordersOrEmpty(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid id %q", raw)
	}
	return int32(id), nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func paging(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 200 {
		pageSize = int32(v)
	}
	return page, pageSize
}
