package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/logger"
	"sitework-backend/internal/service"
)

type RecordsHandler struct {
	records service.RecordService
}

func NewRecordsHandler(records service.RecordService) *RecordsHandler {
	return &RecordsHandler{records: records}
}

func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var rec domain.ResourceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}
	rec.ProjectID = id

	if err := h.records.Add(r.Context(), &rec); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, rec, http.StatusCreated)
}

func (h *RecordsHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	kind := domain.RecordKind(r.URL.Query().Get("kind"))
	if kind != "" && kind != domain.RecordKindMaterial && kind != domain.RecordKindLabor {
		writeErrorMsg(w, "invalid kind filter", http.StatusBadRequest)
		return
	}

	recs, err := h.records.ListByProject(r.Context(), id, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, recs, http.StatusOK)
}

func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid record id", http.StatusBadRequest)
		return
	}

	if err := h.records.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecordsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	summary, err := h.records.Summary(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, summary, http.StatusOK)
}

// Export streams the material and labor records of a project as CSV.
func (h *RecordsHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	recs, err := h.records.ListByProject(r.Context(), id, "")
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="project-%d-records.csv"`, id))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"kind", "name", "unit", "quantity", "unit_cost_cents", "duration_days", "total_cents"})
	for _, rec := range recs {
		duration := ""
		if rec.DurationDays != nil {
			duration = strconv.FormatInt(int64(*rec.DurationDays), 10)
		}
		row := []string{
			string(rec.Kind),
			rec.Name,
			rec.Unit,
			strconv.FormatInt(int64(rec.Quantity), 10),
			strconv.FormatInt(int64(rec.UnitCostCents), 10),
			duration,
			strconv.FormatInt(rec.TotalCents(), 10),
		}
		if err := cw.Write(row); err != nil {
			logger.Error("Failed to write CSV row", "error", err)
			return
		}
	}
	cw.Flush()
}
