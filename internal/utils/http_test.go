package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	type snippet struct {
		ID       int64    `json:"id"`
		Language string   `json:"language"`
		Tags     []string `json:"tags"`
	}

	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "object", data: map[string]string{"message": "Logout successful"}, status: http.StatusOK, wantBody: `{"message":"Logout successful"}`},
		{name: "created struct", data: snippet{ID: 7, Language: "python", Tags: []string{"api"}}, status: http.StatusCreated, wantBody: `{"id":7,"language":"python","tags":["api"]}`},
		{name: "empty list", data: []snippet{}, status: http.StatusOK, wantBody: `[]`},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: `null`},
		{name: "error body", data: map[string]string{"error": "not found"}, status: http.StatusNotFound, wantBody: `{"error":"not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)
			require.NoError(t, err)

			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, func() {}, http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDecodeJSON(t *testing.T) {
	type generateBody struct {
		Requirements string `json:"requirements"`
		Language     string `json:"language"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"requirements":"parse csv","language":"python"}`))

		var body generateBody
		require.NoError(t, DecodeJSON(r, &body))
		assert.Equal(t, generateBody{Requirements: "parse csv", Language: "python"}, body)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(""))

		var body generateBody
		assert.ErrorIs(t, DecodeJSON(r, &body), ErrEmptyBody)
	})

	t.Run("no body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/generate", http.NoBody)

		var body generateBody
		assert.ErrorIs(t, DecodeJSON(r, &body), ErrEmptyBody)
	})

	for _, payload := range []string{`{"requirements":`, `{"a":1} {"b":2}`, `[1,2`, `"text"`} {
		t.Run("malformed "+payload, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(payload))

			var body generateBody
			err := DecodeJSON(r, &body)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrEmptyBody)
		})
	}

	t.Run("oversized body", func(t *testing.T) {
		payload := `{"requirements":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(payload))

		var body generateBody
		assert.Error(t, DecodeJSON(r, &body))
	})
}
