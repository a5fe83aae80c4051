// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app is the composition root of the code generation server. It
// builds storage, the generation backend, the validation queue, services,
// transports and workers from one configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-code-gen/internal/adapter"
	"github.com/MKhiriev/go-code-gen/internal/codecheck"
	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/generator"
	"github.com/MKhiriev/go-code-gen/internal/handler"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/server"
	"github.com/MKhiriev/go-code-gen/internal/service"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/internal/workers"
	"github.com/MKhiriev/go-code-gen/models"
)

// newTextProvider is replaced in tests to run the stack against a scripted
// backend.
var newTextProvider = adapter.NewTextProvider

// App owns every long-lived resource of the process.
type App struct {
	db       *store.DB
	redis    *redis.Client
	services *service.Services
	handlers *handler.Handlers
	worker   *workers.ValidationWorker
	server   server.Server

	logger *logger.Logger
}

// New wires the application. Resources opened before a failing step are
// released before New returns.
func New(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (_ *App, err error) {
	a := &App{logger: log}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	if cfg.InsecureTokenKey() {
		log.Warn().Msg("APP_TOKEN_SIGN_KEY is not set, sessions are signed with the built-in development key")
	}

	a.db, err = store.NewConnect(ctx, cfg.Storage.DB, log.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err = a.db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}
	storages := store.NewStorages(a.db, log.WithComponent("store"))

	provider, err := newTextProvider(ctx, cfg.Provider, log.WithComponent("provider"))
	if err != nil {
		return nil, fmt.Errorf("error creating text provider: %w", err)
	}

	queue, err := a.newQueue(ctx, cfg.Workers)
	if err != nil {
		return nil, err
	}

	a.services, err = service.NewServices(service.Dependencies{
		Storages:  storages,
		Generator: generator.NewEngine(provider, log.WithComponent("generator")),
		Scanner:   codecheck.NewScanner(),
		Publisher: queue,
		Build:     build,
	}, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	seeded, err := a.services.TemplateService.SeedDemoTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("error seeding demo templates: %w", err)
	}
	log.Info().Bool("seeded", seeded).Msg("template library checked")

	a.worker, err = workers.NewValidationWorker(queue, a.services.ValidationService, cfg.Workers.Concurrency, log.WithComponent("validation-worker"))
	if err != nil {
		return nil, fmt.Errorf("error creating validation worker: %w", err)
	}

	a.handlers, err = handler.NewHandlers(a.services, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	a.server, err = server.NewServer(a.handlers, workers.NewWorkers(a.worker), cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return a, nil
}

// Run serves until a stop signal and then releases all resources.
func (a *App) Run() error {
	runErr := a.server.RunServer()
	return errors.Join(runErr, a.Close())
}

// Close releases the database and queue connections. Safe to call more than
// once.
func (a *App) Close() error {
	var errs []error

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis: %w", err))
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
		a.db = nil
	}

	return errors.Join(errs...)
}

// newQueue returns a Redis backed queue when an address is configured and
// an in-process one otherwise.
func (a *App) newQueue(ctx context.Context, cfg config.Workers) (workers.TaskQueue, error) {
	if cfg.RedisAddr == "" {
		a.logger.Info().Int("size", cfg.QueueSize).Msg("using in-memory validation queue")
		return workers.NewMemoryQueue(cfg.QueueSize), nil
	}

	client, err := workers.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	a.redis = client

	a.logger.Info().Str("key", cfg.QueueKey).Msg("using redis validation queue")
	return workers.NewRedisQueue(client, cfg.QueueKey, a.logger), nil
}
