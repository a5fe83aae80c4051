package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-code-gen/internal/metrics"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// operational endpoints, never compressed
	router.Get("/healthz", h.health)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(withGZip, h.authenticate)

		// generation is bounded by the provider client timeout only
		r.With(h.requireUser).Post("/api/generate", h.generate)

		r.Group(func(r chi.Router) {
			if h.settings.RequestTimeout > 0 {
				r.Use(middleware.Timeout(h.settings.RequestTimeout))
			}

			// routes without authorization
			r.Post("/api/register", h.register)
			r.Post("/api/login", h.login)
			r.Post("/api/logout", h.logout)
			r.Get("/api/version", h.getServerVersion)
			r.Get("/api/version/build", h.getVersionInfo)
			r.Get("/api/templates", h.listTemplates)
			r.Get("/api/projects", h.listProjects)
			r.Get("/api/stats", h.getStats)
			r.Post("/api/validate/{codeID}", h.validate)
			// owners only once a session is present
			r.Get("/api/generated-codes/{codeID}", h.getGeneratedCode)

			r.Group(func(r chi.Router) {
				r.Use(h.requireUser)

				r.Get("/api/generated-codes", h.listGeneratedCodes)
				r.Post("/api/projects", h.createProject)
				r.Get("/api/users/me", h.me)
				r.Get("/api/users/me/stats", h.userStats)
				r.Post("/api/user/update", h.updateProfile)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
