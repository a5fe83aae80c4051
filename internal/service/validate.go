package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/validators"
	"github.com/MKhiriev/go-code-gen/models"
)

var requestValidator = validators.NewRequestValidator()

// validateRequest runs the request validator and wraps its failure in
// sentinel so KindOf classifies it.
func validateRequest(ctx context.Context, sentinel error, req any, fields ...string) error {
	if err := requestValidator.Validate(ctx, req, fields...); err != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return nil
}

func validatePage(ctx context.Context, page models.Page) error {
	return validateRequest(ctx, ErrInvalidPagination, page)
}
