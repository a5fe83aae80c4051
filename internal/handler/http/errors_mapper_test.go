package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-code-gen/internal/service"
	"github.com/MKhiriev/go-code-gen/internal/store"
)

func TestStatusFromKind(t *testing.T) {
	tests := []struct {
		kind service.ErrorKind
		want int
	}{
		{service.KindInvalid, http.StatusBadRequest},
		{service.KindConflict, http.StatusConflict},
		{service.KindUnauthenticated, http.StatusUnauthorized},
		{service.KindForbidden, http.StatusForbidden},
		{service.KindNotFound, http.StatusNotFound},
		{service.KindInternal, http.StatusInternalServerError},
		{service.ErrorKind(99), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromKind(tt.kind), tt.kind.String())
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantBody       string
		wantAuthHeader bool
	}{
		{
			name:       "conflict keeps sentinel message",
			err:        fmt.Errorf("user creation ended with error: %w", store.ErrEmailAlreadyExists),
			wantStatus: http.StatusConflict,
			wantBody:   fmt.Sprintf(`{"error":%q,"kind":"conflict"}`, store.ErrEmailAlreadyExists.Error()),
		},
		{
			name:           "unauthenticated sets challenge",
			err:            service.ErrInvalidCredentials,
			wantStatus:     http.StatusUnauthorized,
			wantBody:       `{"error":"incorrect username or password","kind":"unauthenticated"}`,
			wantAuthHeader: true,
		},
		{
			name:       "internal hides details",
			err:        errors.New("pq: password authentication failed for user postgres"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error","kind":"internal"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "test")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			if tt.wantAuthHeader {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestWriteBadRequest(t *testing.T) {
	rr := httptest.NewRecorder()
	writeBadRequest(rr, httptest.NewRequest(http.MethodGet, "/", nil), ErrInvalidPathID)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid id in path","kind":"invalid"}`, rr.Body.String())
}
