package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-code-gen/internal/utils"
	"github.com/MKhiriev/go-code-gen/models"
)

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := pageFromQuery(r)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	query := r.URL.Query()
	filter := models.TemplateFilter{
		Language:  query.Get("language"),
		Category:  query.Get("category"),
		Framework: query.Get("framework"),
		Page:      page,
	}

	templates, err := h.services.TemplateService.ListTemplates(ctx, filter)
	if err != nil {
		writeServiceError(w, r, err, "listing templates failed")
		return
	}

	utils.WriteJSON(w, templates, http.StatusOK)
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := pageFromQuery(r)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	projects, err := h.services.ProjectService.ListProjects(ctx, page)
	if err != nil {
		writeServiceError(w, r, err, "listing projects failed")
		return
	}

	utils.WriteJSON(w, projects, http.StatusOK)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, _ := utils.GetUserFromContext(ctx)

	var req models.CreateProjectRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	project, err := h.services.ProjectService.CreateProject(ctx, owner, req)
	if err != nil {
		writeServiceError(w, r, err, "project creation failed")
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.StatsService.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "computing stats failed")
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
