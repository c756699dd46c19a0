package http

import (
	"encoding/json"
	"net/http"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/service"
)

// AdminHandler exposes the back-office vehicle surface. The router guards it
// with the role middleware; handlers assume the caller is staff.
type AdminHandler struct {
	vehicles service.VehicleStatusService
}

func NewAdminHandler(vehicles service.VehicleStatusService) *AdminHandler {
	return &AdminHandler{vehicles: vehicles}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetVehicleStatus(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid vehicle id")
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	vehicle, err := h.vehicles.SetStatus(r.Context(), vehicleID, req.Status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, vehicle)
}

func (h *AdminHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid vehicle id")
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), vehicleID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	if err := h.vehicles.AddVehicle(r.Context(), &v); err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, v)
}

func (h *AdminHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid vehicle id")
		return
	}

	vehicle, err := h.vehicles.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, vehicle)
}

func (h *AdminHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paging(r)
	vehicles, total, err := h.vehicles.ListVehicles(r.Context(), page, pageSize)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"vehicles": vehicles,
		"total":    total,
	})
}
