package adapter

import "errors"

var (
	ErrMissingAPIKey       = errors.New("provider api key is empty")
	ErrEmptyCompletion     = errors.New("provider returned an empty completion")
	ErrBadRequest          = errors.New("provider rejected the request")
	ErrUnauthorized        = errors.New("provider unauthorized")
	ErrForbidden           = errors.New("provider forbidden")
	ErrNotFound            = errors.New("provider model or endpoint not found")
	ErrRateLimited         = errors.New("provider rate limit exceeded")
	ErrProviderUnavailable = errors.New("provider temporarily unavailable")
	ErrInternalServerError = errors.New("provider internal server error")
)
