package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
)

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error: APIError{Code: code, Message: message},
	})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDomainError maps the engine's error taxonomy onto HTTP responses.
// Transient failures come back 503 so callers know a retry may succeed;
// everything else is final.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidOperation):
		WriteError(w, http.StatusBadRequest, "invalid_operation", err.Error())
	case errors.Is(err, domain.ErrTransient):
		WriteError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "temporary failure, please retry")
	default:
		logger.Error("unhandled error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
