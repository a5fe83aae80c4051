package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-code-gen/models"
)

// pageFromQuery reads skip and limit. Missing values default to 0 and
// [models.DefaultPageLimit]; range checks are left to the services.
func pageFromQuery(r *http.Request) (models.Page, error) {
	page := models.Page{Limit: models.DefaultPageLimit}

	query := r.URL.Query()
	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: skip=%q", ErrInvalidQueryParam, raw)
		}
		page.Skip = skip
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: limit=%q", ErrInvalidQueryParam, raw)
		}
		page.Limit = limit
	}

	return page, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathID, name, raw)
	}
	return id, nil
}
