package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidAppConfigs indicates invalid token settings (negative duration).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates negative concurrency or queue size.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrUnknownProvider indicates a provider kind other than openai, genai or none.
	ErrUnknownProvider = errors.New("unknown generation provider")
	// ErrMissingProviderKey indicates a selected provider without an API key.
	ErrMissingProviderKey = errors.New("generation provider requires an api key")
)
