package api

import (
	"net/http"

	"sitework-backend/internal/service"
)

type ReportsHandler struct {
	reports service.ReportService
}

func NewReportsHandler(reports service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

func (h *ReportsHandler) Utilization(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Utilization(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, report, http.StatusOK)
}

func (h *ReportsHandler) MaintenanceDue(w http.ResponseWriter, r *http.Request) {
	due, err := h.reports.MaintenanceDue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, due, http.StatusOK)
}
