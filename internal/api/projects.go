package api

import (
	"encoding/json"
	"net/http"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/service"
)

type ProjectsHandler struct {
	projects service.ProjectService
}

func NewProjectsHandler(projects service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.projects.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, p, http.StatusCreated)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, p, http.StatusOK)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var p domain.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}
	p.ID = id

	if err := h.projects.Update(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, p, http.StatusOK)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMsg(w, "invalid project id", http.StatusBadRequest)
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.ProjectStatus(q.Get("status"))
	if status != "" && !status.Valid() {
		writeErrorMsg(w, "invalid status filter", http.StatusBadRequest)
		return
	}

	ps, err := h.projects.List(r.Context(), q.Get("search"), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, ps, http.StatusOK)
}
