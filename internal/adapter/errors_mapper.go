package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var providerStatusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusTooManyRequests:     ErrRateLimited,
	http.StatusBadGateway:          ErrProviderUnavailable,
	http.StatusServiceUnavailable:  ErrProviderUnavailable,
	http.StatusGatewayTimeout:      ErrProviderUnavailable,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError returns nil for 2xx responses and a sentinel-wrapped error
// carrying the trimmed response body otherwise.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	return mapStatus(resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
}

func mapStatus(status int, body string) error {
	if sentinel, ok := providerStatusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, body)
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrInternalServerError, status, body)
	}

	if body == "" {
		body = http.StatusText(status)
	}
	return fmt.Errorf("http %d: %s", status, body)
}
