// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound clients of the external
// text-generation providers.
//
// The primary abstraction is [TextProvider], which decouples the generation
// engine from the provider protocol. The package ships an OpenAI Responses
// API client over resty ([NewOpenAIProvider]) and a Google Gemini client over
// the genai SDK ([NewGenAIProvider]).
//
// Non-2xx HTTP responses are mapped by mapHTTPError onto the sentinel values
// in errors.go so callers can use [errors.Is] regardless of the provider.
package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/text_provider_mock.go -package=mock

// TextProvider completes a single prompt.
type TextProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Complete sends prompt once and returns the raw model text. An empty
	// completion is reported as [ErrEmptyCompletion].
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewTextProvider builds the provider selected by cfg.Kind. It returns a nil
// provider and no error for [config.ProviderNone].
func NewTextProvider(ctx context.Context, cfg config.Provider, log *logger.Logger) (TextProvider, error) {
	switch cfg.Kind {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg, log)
	case config.ProviderGenAI:
		return NewGenAIProvider(ctx, cfg, log)
	case config.ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Kind)
	}
}
