package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/logger"
)

// envelope is the wire shape of every JSON response. Exactly one of Data and
// Error is set.
type envelope struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeData(w http.ResponseWriter, data any, status int) {
	writeJSON(w, envelope{Data: data}, status)
}

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPersistence):
		status = http.StatusBadGateway
	}
	if status >= 500 {
		logger.Error("Request failed", "error", err, "status", status)
	}
	writeJSON(w, envelope{Error: err.Error()}, status)
}

func writeErrorMsg(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, envelope{Error: msg}, status)
}
