package http

import (
	"net/http"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/service"
	"github.com/MKhiriev/go-code-gen/internal/utils"
	"github.com/MKhiriev/go-code-gen/models"
)

var kindStatusMap = map[service.ErrorKind]int{
	service.KindInvalid:         http.StatusBadRequest,
	service.KindConflict:        http.StatusConflict,
	service.KindUnauthenticated: http.StatusUnauthorized,
	service.KindForbidden:       http.StatusForbidden,
	service.KindNotFound:        http.StatusNotFound,
	service.KindInternal:        http.StatusInternalServerError,
}

func statusFromKind(kind service.ErrorKind) int {
	if status, ok := kindStatusMap[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and answers with the status of its kind.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	kind := service.KindOf(err)
	log := logger.FromRequest(r)

	if kind == service.KindInternal {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Str("kind", kind.String()).Msg(msg)
	}

	writeError(w, kind, service.PublicMessage(err))
}

func writeError(w http.ResponseWriter, kind service.ErrorKind, message string) {
	if kind == service.KindUnauthenticated {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message, Kind: kind.String()}, statusFromKind(kind))
}

// writeBadRequest answers 400 for transport-level validation failures.
func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Warn().Err(err).Msg("rejecting malformed request")
	writeError(w, service.KindInvalid, err.Error())
}
