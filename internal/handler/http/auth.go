package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/utils"
	"github.com/MKhiriev/go-code-gen/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeServiceError(w, r, err, "user registration failed")
		return
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeServiceError(w, r, err, "user login failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, "creation of token failed")
		return
	}

	h.setSessionCookie(w, token.SignedString)

	log.Info().Int64("user_id", user.ID).Msg("user logged in")
	utils.WriteJSON(w, models.LoginResponse{Message: "Login successful", User: user.Summary()}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Message: "Logout successful"}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	var req models.UpdateProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	updated, err := h.services.UserService.UpdateProfile(ctx, user, req)
	if err != nil {
		writeServiceError(w, r, err, "profile update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	stats, err := h.services.UserService.UserStats(ctx, user.ID)
	if err != nil {
		writeServiceError(w, r, err, "computing user stats failed")
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
