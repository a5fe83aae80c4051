package adapter

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
)

type genAIProvider struct {
	client *genai.Client
	model  string

	logger *logger.Logger
}

// NewGenAIProvider constructs a [TextProvider] backed by the Gemini API.
// cfg.BaseURL, when set, overrides the API endpoint.
func NewGenAIProvider(ctx context.Context, cfg config.Provider, log *logger.Logger) (TextProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	log.Info().Str("func", "NewGenAIProvider").Str("model", cfg.Model).Msg("genai provider configured")

	return &genAIProvider{client: client, model: cfg.Model, logger: log}, nil
}

// Name implements [TextProvider].
func (p *genAIProvider) Name() string {
	return config.ProviderGenAI
}

// Complete implements [TextProvider].
func (p *genAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
