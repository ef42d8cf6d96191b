package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"sitework-backend/internal/logger"
	"sitework-backend/internal/service"
)

type AssignmentsHandler struct {
	assignments service.AssignmentService
}

func NewAssignmentsHandler(assignments service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignments}
}

type assignRequest struct {
	ProjectID          int32   `json:"project_id"`
	SerialNumber       string  `json:"serial_number"`
	AssignedDate       string  `json:"assigned_date"`
	ExpectedReturnDate *string `json:"expected_return_date,omitempty"`
}

func (h *AssignmentsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProjectID <= 0 {
		writeErrorMsg(w, "project_id is required", http.StatusBadRequest)
		return
	}

	a, err := h.assignments.Assign(r.Context(), req.ProjectID, req.SerialNumber, req.AssignedDate, req.ExpectedReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, a, http.StatusCreated)
}

type assignManyRequest struct {
	ProjectID          int32    `json:"project_id"`
	SerialNumbers      []string `json:"serial_numbers"`
	Quantity           int32    `json:"quantity"`
	AssignedDate       string   `json:"assigned_date"`
	ExpectedReturnDate *string  `json:"expected_return_date,omitempty"`
}

// AssignMany hands several units to one project atomically. Either every
// serial is assigned or none are.
func (h *AssignmentsHandler) AssignMany(w http.ResponseWriter, r *http.Request) {
	var req assignManyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProjectID <= 0 {
		writeErrorMsg(w, "project_id is required", http.StatusBadRequest)
		return
	}

	as, err := h.assignments.AssignMany(r.Context(), req.ProjectID, req.SerialNumbers, req.Quantity, req.AssignedDate, req.ExpectedReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, as, http.StatusCreated)
}

func (h *AssignmentsHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid assignment id", http.StatusBadRequest)
		return
	}

	a, err := h.assignments.Return(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, a, http.StatusOK)
}

func (h *AssignmentsHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	as, err := h.assignments.ListForProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, as, http.StatusOK)
}

// ExportForProject streams the open assignments of a project as CSV.
func (h *AssignmentsHandler) ExportForProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	as, err := h.assignments.ListForProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="project-%d-tools.csv"`, id))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"tool", "serial_number", "assigned_date", "expected_return_date", "overdue"})
	for _, a := range as {
		expected := ""
		if a.ExpectedReturnDate != nil {
			expected = *a.ExpectedReturnDate
		}
		if err := cw.Write([]string{a.ToolName, a.SerialNumber, a.AssignedDate, expected, strconv.FormatBool(a.Overdue)}); err != nil {
			logger.Error("Failed to write CSV row", "error", err)
			return
		}
	}
	cw.Flush()
}
