package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/service"
	"github.com/MKhiriev/go-code-gen/internal/utils"
)

// authenticate resolves the session of the request, if any, and stores the
// account in the context. Requests without a usable token continue
// anonymously; [Handler.requireUser] rejects them where a session is needed.
//
// The access_token cookie is checked first, then an
// "Authorization: Bearer <token>" header.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString := sessionToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.ResolveUser(ctx, tokenString)
		switch {
		case err == nil:
			ctx = utils.WithUser(ctx, user)
			log.Debug().Int64("user_id", user.ID).Msg("session resolved")
		case errors.Is(err, service.ErrNotAuthenticated):
			log.Debug().Err(err).Msg("ignoring unusable session token")
		default:
			writeServiceError(w, r, err, "resolving session failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser answers 401 unless authenticate stored an account.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); !ok {
			logger.FromRequest(r).Warn().Str("uri", r.RequestURI).Msg("request without session")
			writeError(w, service.KindUnauthenticated, service.ErrNotAuthenticated.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return ""
	}
	return token
}
