//go:build wireinject
// +build wireinject

package main

import (
	"zai-console/config"
	"zai-console/internal/command"
	"zai-console/internal/cron"
	"zai-console/internal/database"
	"zai-console/internal/handler"
	"zai-console/internal/middleware"
	"zai-console/internal/router"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newHttpClient,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(command.ProviderSet))
}
