package http

import (
	"time"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/service"
)

// Settings tunes transport behaviour that does not belong to a service.
type Settings struct {
	// SessionTTL is the Max-Age of the session cookie.
	SessionTTL time.Duration
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
	// RequestTimeout bounds each API request; zero disables the limit.
	RequestTimeout time.Duration
}

// NewSettings derives transport settings from the server config.
func NewSettings(app config.App, server config.Server) Settings {
	return Settings{
		SessionTTL:     app.TokenDuration,
		CookieSecure:   server.CookieSecure,
		RequestTimeout: server.RequestTimeout,
	}
}

type Handler struct {
	services *service.Services
	settings Settings

	logger *logger.Logger
}

func NewHandler(services *service.Services, settings Settings, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		settings: settings,
		logger:   logger,
	}
}
