// Package di provides dependency injection configuration for the SteamWatch server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/steamwatch/steamwatch-server/internal/config"
	"github.com/steamwatch/steamwatch-server/internal/di/providers"
	"github.com/steamwatch/steamwatch-server/internal/logger"
	"github.com/steamwatch/steamwatch-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Persistence
	do.Provide(injector, providers.ProvideStore)

	// External collaborators
	do.Provide(injector, providers.ProvideSteamClient)
	do.Provide(injector, providers.ProvideMailer)

	// Business services
	do.Provide(injector, providers.ProvideTrackerService)

	// Workers
	do.Provide(injector, providers.ProvideTrackerJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SteamClientHandle](injector)
	_ = do.MustInvoke[*providers.MailerHandle](injector)
	_ = do.MustInvoke[*service.TrackerService](injector)
	_ = do.MustInvoke[*providers.TrackerJob](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
