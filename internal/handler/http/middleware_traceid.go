package http

import (
	"net/http"

	"github.com/MKhiriev/go-code-gen/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// maxTraceIDLength caps client supplied trace ids before they reach the logs.
const maxTraceIDLength = 128

// withTraceID attaches a request scoped logger carrying trace_id. An
// incoming X-Trace-ID is reused, otherwise a new one is generated. The id is
// echoed in the response headers.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLength {
			traceID = utils.NewTraceID()
		}

		requestLogger := h.logger.WithTraceID(traceID)
		r = r.WithContext(requestLogger.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
