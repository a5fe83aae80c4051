package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/app"
	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("codegen-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("provider", cfg.Provider.Kind).
		Str("model", cfg.Provider.Model).
		Int("workers", cfg.Workers.Concurrency).
		Msg("received configs")

	application, err := app.New(context.Background(), cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting application")
	}

	if err = application.Run(); err != nil {
		log.Error().Err(err).Msg("application stopped with errors")
	}
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
