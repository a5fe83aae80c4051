package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/utils"
	"github.com/MKhiriev/go-code-gen/models"
)

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	owner, _ := utils.GetUserFromContext(ctx)

	var req models.GenerateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	code, err := h.services.GenerationService.Generate(ctx, owner, req)
	if err != nil {
		writeServiceError(w, r, err, "code generation failed")
		return
	}

	log.Info().
		Int64("code_id", code.ID).
		Str("language", code.Language).
		Int64("lines", code.LinesOfCode).
		Msg("code generated")
	utils.WriteJSON(w, models.NewGenerateResponse(code), http.StatusOK)
}

func (h *Handler) getGeneratedCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "codeID")
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	var viewer *models.User
	if user, ok := utils.GetUserFromContext(ctx); ok {
		viewer = &user
	}

	code, err := h.services.GenerationService.GetGeneratedCode(ctx, viewer, id)
	if err != nil {
		writeServiceError(w, r, err, "reading generated code failed")
		return
	}

	utils.WriteJSON(w, code, http.StatusOK)
}

func (h *Handler) listGeneratedCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, _ := utils.GetUserFromContext(ctx)

	page, err := pageFromQuery(r)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	codes, err := h.services.GenerationService.History(ctx, owner, page)
	if err != nil {
		writeServiceError(w, r, err, "listing generated codes failed")
		return
	}

	utils.WriteJSON(w, codes, http.StatusOK)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "codeID")
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	report, err := h.services.ValidationService.Validate(ctx, id)
	if err != nil {
		writeServiceError(w, r, err, "validation failed")
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}
