// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-code-gen server. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses, timeouts and session cookie settings.
	Server Server `envPrefix:"SERVER_"`

	// Provider selects and configures the text-generation backend.
	Provider Provider `envPrefix:"PROVIDER_"`

	// Workers configures the deferred validation pool and its queue.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control token
// lifecycle and versioning.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the optional "iss" claim. When set it is also enforced
	// while resolving tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the session lifetime, shared by the token expiry and
	// the cookie Max-Age.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress enables the gRPC health server when non-empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CookieSecure sets the Secure attribute of the session cookie.
	// Env: SERVER_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is either a PostgreSQL URL ("postgres://...") or a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Provider configures the text-generation backend.
type Provider struct {
	// Kind is one of "openai", "genai" or "none". Empty means "openai" when an
	// API key is present and "none" otherwise.
	// Env: PROVIDER_KIND
	Kind string `env:"KIND"`

	// APIKey falls back to OPENAI_API_KEY or GEMINI_API_KEY depending on Kind.
	// Env: PROVIDER_API_KEY
	APIKey string `env:"API_KEY"`

	// Model is the provider model identifier.
	// Env: PROVIDER_MODEL
	Model string `env:"MODEL"`

	// BaseURL overrides the OpenAI endpoint root.
	// Env: PROVIDER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Timeout is the provider client timeout.
	// Env: PROVIDER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Workers holds configuration for the deferred validation pool.
type Workers struct {
	// Concurrency is the number of validation goroutines.
	// Env: WORKERS_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`

	// QueueSize is the buffer of the in-memory queue.
	// Env: WORKERS_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`

	// RedisAddr switches the queue to a Redis list when set. Accepts either
	// "host:port" or a redis:// URL.
	// Env: WORKERS_REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR"`

	// QueueKey is the Redis list key.
	// Env: WORKERS_QUEUE_KEY
	QueueKey string `env:"QUEUE_KEY"`
}

// GetStructuredConfig loads, merges, defaults and validates the server
// configuration (later sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
