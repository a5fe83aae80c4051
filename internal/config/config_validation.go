// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"strings"
	"time"
)

// Defaults applied after all sources have been merged.
const (
	DefaultHTTPAddress    = "localhost:8000"
	DefaultDSN            = "codegen.db"
	DefaultTokenDuration  = 30 * time.Minute
	DefaultTokenSignKey   = "your-secret-key-change-in-production"
	DefaultRequestTimeout = 60 * time.Second
	DefaultVersion        = "1.0.0"

	DefaultOpenAIModel   = "gpt-5-nano"
	DefaultGenAIModel    = "gemini-2.5-flash"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	DefaultConcurrency = 2
	DefaultQueueSize   = 256
	DefaultQueueKey    = "codegen:validation"
)

// Provider kinds.
const (
	ProviderOpenAI = "openai"
	ProviderGenAI  = "genai"
	ProviderNone   = "none"
)

// InsecureTokenKey reports whether the session signing key is the built-in
// development default.
func (cfg *StructuredConfig) InsecureTokenKey() bool {
	return cfg.App.TokenSignKey == DefaultTokenSignKey
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.App.TokenSignKey == "" {
		cfg.App.TokenSignKey = DefaultTokenSignKey
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}

	cfg.Provider.Kind = strings.ToLower(strings.TrimSpace(cfg.Provider.Kind))
	if cfg.Provider.APIKey == "" {
		switch cfg.Provider.Kind {
		case ProviderGenAI:
			cfg.Provider.APIKey = os.Getenv("GEMINI_API_KEY")
		case "", ProviderOpenAI:
			cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.Provider.Kind == "" {
		cfg.Provider.Kind = ProviderNone
		if cfg.Provider.APIKey != "" {
			cfg.Provider.Kind = ProviderOpenAI
		}
	}
	if cfg.Provider.Model == "" {
		switch cfg.Provider.Kind {
		case ProviderOpenAI:
			cfg.Provider.Model = DefaultOpenAIModel
		case ProviderGenAI:
			cfg.Provider.Model = DefaultGenAIModel
		}
	}
	if cfg.Provider.Kind == ProviderOpenAI && cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = DefaultOpenAIBaseURL
	}

	if cfg.Workers.Concurrency == 0 {
		cfg.Workers.Concurrency = DefaultConcurrency
	}
	if cfg.Workers.QueueSize == 0 {
		cfg.Workers.QueueSize = DefaultQueueSize
	}
	if cfg.Workers.QueueKey == "" {
		cfg.Workers.QueueKey = DefaultQueueKey
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants. It runs after applyDefaults.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	switch cfg.Provider.Kind {
	case ProviderNone:
	case ProviderOpenAI, ProviderGenAI:
		if cfg.Provider.APIKey == "" {
			return ErrMissingProviderKey
		}
	default:
		return ErrUnknownProvider
	}

	if cfg.Workers.Concurrency < 0 || cfg.Workers.QueueSize < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
