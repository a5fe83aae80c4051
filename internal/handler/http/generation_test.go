package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-code-gen/internal/service"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

func storedCode() models.GeneratedCode {
	return models.GeneratedCode{
		ID:            11,
		Requirements:  "sum two numbers",
		GeneratedCode: "def add(a, b):\n    return a + b\n",
		Language:      "python",
		Framework:     "none",
		LinesOfCode:   2,
		Status:        models.StatusGenerated,
		UserID:        7,
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Version:       1,
	}
}

func TestGenerate_ReturnsResponseShape(t *testing.T) {
	h, m := newMockedHandler(t)
	user := alice()

	m.Generation.EXPECT().Generate(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.User, req models.GenerateRequest) (models.GeneratedCode, error) {
			assert.Equal(t, "sum two numbers", req.Requirements)
			assert.Equal(t, "python", req.Language)
			require.NotNil(t, req.ProjectID)
			assert.Equal(t, int64(3), *req.ProjectID)
			return storedCode(), nil
		})

	req := withSession(m, jsonRequest(http.MethodPost, "/api/generate",
		`{"requirements":"sum two numbers","language":"python","project_id":3}`), user)
	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"id": 11,
		"requirements": "sum two numbers",
		"generated_code": "def add(a, b):\n    return a + b\n",
		"language": "python",
		"framework": "none",
		"lines_of_code": 2,
		"status": "generated",
		"created_at": "2026-01-02T03:04:05Z"
	}`, rr.Body.String())
}

func TestGenerate_NotBoundByRequestTimeout(t *testing.T) {
	h, m := newMockedHandler(t)
	h.settings.RequestTimeout = 50 * time.Millisecond
	user := alice()

	m.Generation.EXPECT().Generate(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.User, _ models.GenerateRequest) (models.GeneratedCode, error) {
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
			time.Sleep(3 * h.settings.RequestTimeout)
			require.NoError(t, ctx.Err())
			return storedCode(), nil
		})

	req := withSession(m, jsonRequest(http.MethodPost, "/api/generate",
		`{"requirements":"sum two numbers","language":"python"}`), user)
	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"generated"`)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty requirements", err: service.ErrRequirementsRequired, wantStatus: http.StatusBadRequest},
		{name: "unknown project", err: fmt.Errorf("%w: id 99", service.ErrProjectNotFound), wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: fmt.Errorf("%w: boom", store.ErrExecutingStatement), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			m.Generation.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.GeneratedCode{}, tt.err)

			req := withSession(m, jsonRequest(http.MethodPost, "/api/generate", `{"requirements":"x"}`), alice())
			rr := serve(h, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestGetGeneratedCode_AnonymousViewer(t *testing.T) {
	h, m := newMockedHandler(t)

	m.Generation.EXPECT().GetGeneratedCode(gomock.Any(), (*models.User)(nil), int64(11)).Return(storedCode(), nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/generated-codes/11", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"user_id":7`)
	assert.NotContains(t, rr.Body.String(), `"version"`)
}

func TestGetGeneratedCode_AuthenticatedViewer(t *testing.T) {
	h, m := newMockedHandler(t)
	user := alice()

	m.Generation.EXPECT().GetGeneratedCode(gomock.Any(), gomock.Any(), int64(11)).
		DoAndReturn(func(_ context.Context, viewer *models.User, _ int64) (models.GeneratedCode, error) {
			require.NotNil(t, viewer)
			assert.Equal(t, user.ID, viewer.ID)
			return models.GeneratedCode{}, service.ErrAccessDenied
		})

	req := withSession(m, httptest.NewRequest(http.MethodGet, "/api/generated-codes/11", nil), user)
	rr := serve(h, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), `"kind":"forbidden"`)
}

func TestGetGeneratedCode_Errors(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		h, _ := newMockedHandler(t)
		rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/generated-codes/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing", func(t *testing.T) {
		h, m := newMockedHandler(t)
		m.Generation.EXPECT().GetGeneratedCode(gomock.Any(), gomock.Any(), int64(404)).Return(models.GeneratedCode{}, store.ErrGeneratedCodeNotFound)

		rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/generated-codes/404", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListGeneratedCodes_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage models.Page
	}{
		{name: "defaults", query: "", wantPage: models.Page{Skip: 0, Limit: models.DefaultPageLimit}},
		{name: "explicit", query: "?skip=10&limit=5", wantPage: models.Page{Skip: 10, Limit: 5}},
		{name: "only skip", query: "?skip=3", wantPage: models.Page{Skip: 3, Limit: models.DefaultPageLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			user := alice()
			m.Generation.EXPECT().History(gomock.Any(), user, tt.wantPage).Return([]models.GeneratedCode{storedCode()}, nil)

			req := withSession(m, httptest.NewRequest(http.MethodGet, "/api/generated-codes"+tt.query, nil), user)
			rr := serve(h, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"id":11`)
		})
	}
}

func TestListGeneratedCodes_InvalidQuery(t *testing.T) {
	h, m := newMockedHandler(t)

	req := withSession(m, httptest.NewRequest(http.MethodGet, "/api/generated-codes?limit=ten", nil), alice())
	rr := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidate(t *testing.T) {
	h, m := newMockedHandler(t)

	m.Validation.EXPECT().Validate(gomock.Any(), int64(11)).Return(models.ValidationReport{
		IsValid:     false,
		Errors:      models.StringList{"Syntax error: invalid syntax"},
		Warnings:    models.StringList{},
		Suggestions: models.StringList{"Add error handling for robustness"},
	}, nil)

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/validate/11", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"is_valid": false,
		"errors": ["Syntax error: invalid syntax"],
		"warnings": [],
		"suggestions": ["Add error handling for robustness"]
	}`, rr.Body.String())
}

func TestValidate_NotFound(t *testing.T) {
	h, m := newMockedHandler(t)
	m.Validation.EXPECT().Validate(gomock.Any(), int64(5)).Return(models.ValidationReport{}, fmt.Errorf("reading: %w", store.ErrGeneratedCodeNotFound))

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/validate/5", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"kind":"not_found"`)
}
