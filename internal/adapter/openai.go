package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
)

// defaultProviderTimeout matches the default of the official OpenAI clients.
const defaultProviderTimeout = 10 * time.Minute

const responsesPath = "/responses"

type openAIProvider struct {
	client *resty.Client
	model  string

	logger *logger.Logger
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Store bool   `json:"store"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// outputText concatenates every output_text part, the same text the official
// SDKs expose as response.output_text.
func (r responsesResponse) outputText() string {
	var b strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String()
}

// NewOpenAIProvider constructs a [TextProvider] calling the OpenAI Responses
// API at cfg.BaseURL with cfg.APIKey as bearer token.
//
// Returns an error if the key is empty or the base URL cannot be parsed.
func NewOpenAIProvider(cfg config.Provider, log *logger.Logger) (TextProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	log.Info().Str("func", "NewOpenAIProvider").Str("model", cfg.Model).Str("base_url", baseURL).Msg("openai provider configured")

	return &openAIProvider{client: client, model: cfg.Model, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Name implements [TextProvider].
func (p *openAIProvider) Name() string {
	return config.ProviderOpenAI
}

// Complete implements [TextProvider]. It POSTs prompt to /responses and
// returns the concatenated output text.
func (p *openAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	var result responsesResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(responsesRequest{Model: p.model, Input: prompt, Store: true}).
		SetResult(&result).
		Post(responsesPath)
	if err != nil {
		return "", fmt.Errorf("responses request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	text := result.outputText()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
