package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/service"
)

type ToolsHandler struct {
	inventory service.InventoryService
}

func NewToolsHandler(inventory service.InventoryService) *ToolsHandler {
	return &ToolsHandler{inventory: inventory}
}

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (int32, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func (h *ToolsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateToolTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.inventory.CreateToolType(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, t, http.StatusCreated)
}

func (h *ToolsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid tool id", http.StatusBadRequest)
		return
	}

	var input service.CreateToolTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.inventory.UpdateToolType(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, t, http.StatusOK)
}

func (h *ToolsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid tool id", http.StatusBadRequest)
		return
	}

	if err := h.inventory.DeleteToolType(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.UnitStatus(q.Get("status"))
	if status != "" && !status.Valid() {
		writeErrorMsg(w, "invalid status filter", http.StatusBadRequest)
		return
	}

	types, err := h.inventory.ListToolTypes(r.Context(), q.Get("search"), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, types, http.StatusOK)
}

func (h *ToolsHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	types, err := h.inventory.ListAvailableUnits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, types, http.StatusOK)
}

// Lookup resolves a scanned QR code. The code encodes the serial number.
func (h *ToolsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]
	result, err := h.inventory.LookupSerial(r.Context(), serial)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result, http.StatusOK)
}

type setUnitStatusRequest struct {
	Status domain.UnitStatus `json:"status"`
}

func (h *ToolsHandler) SetUnitStatus(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]

	var req setUnitStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.inventory.SetUnitStatus(r.Context(), serial, req.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
