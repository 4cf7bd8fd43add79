package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/pipeline"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

type ProjectsHandler struct {
	store   store.Store
	svc     *pipeline.Service
	metrics *metrics.Recorder
	logger  *slog.Logger
}

func NewProjectsHandler(s store.Store, svc *pipeline.Service, m *metrics.Recorder, logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{store: s, svc: svc, metrics: m, logger: logger}
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type projectList struct {
	Projects   []*store.Project `json:"projects"`
	Pagination pagination       `json:"pagination"`
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, limit = intake.Pagination(page, limit)

	filter := store.ProjectFilter{Limit: limit, Offset: (page - 1) * limit}
	if s := q.Get("status"); s != "" {
		req := intake.StatusRequest{Status: s}
		if err := req.Validate(); err != nil {
			writeFailure(w, h.logger, h.metrics, err)
			return
		}
		status := store.ProjectStatus(s)
		filter.Status = &status
	}

	projects, total, err := h.store.ListProjects(r.Context(), filter)
	if err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	if projects == nil {
		projects = []*store.Project{}
	}
	writeData(w, http.StatusOK, "", projectList{
		Projects: projects,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProjectID(w, r, "id", h.metrics)
	if !ok {
		return
	}
	details, err := h.svc.ProjectDetails(r.Context(), id)
	if err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	writeData(w, http.StatusOK, "", details)
}

// Create stores a submission and scores it immediately.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req intake.SubmitProjectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}

	p, m := req.Records()
	sub, err := h.svc.SubmitProject(r.Context(), p, m)
	if err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	writeData(w, http.StatusCreated, "Resource created successfully", sub)
}

func (h *ProjectsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProjectID(w, r, "id", h.metrics)
	if !ok {
		return
	}
	var req intake.StatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}

	p, err := h.svc.UpdateStatus(r.Context(), id, store.ProjectStatus(req.Status))
	if err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	writeData(w, http.StatusOK, "Resource updated successfully", map[string]interface{}{"project": p})
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProjectID(w, r, "id", h.metrics)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(r.Context(), id); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	writeData(w, http.StatusOK, "Resource deleted successfully", nil)
}

func parseProjectID(w http.ResponseWriter, r *http.Request, param string, rec *metrics.Recorder) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		rec.ValidationFailed(param)
		writeError(w, http.StatusBadRequest, CodeValidation, "Invalid project id", param)
		return uuid.Nil, false
	}
	return id, true
}
