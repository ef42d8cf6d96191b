package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

type SystemHandler struct {
	db *sql.DB
}

func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

type versionResponse struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, versionResponse{Version: version, BuildTime: buildTime}, http.StatusOK)
	}
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeErrorMsg(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	writeData(w, map[string]string{"status": "ok"}, http.StatusOK)
}
