// Package providers contains dependency injection providers for the SteamWatch server.
package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/steamwatch/steamwatch-server/internal/config"
	"github.com/steamwatch/steamwatch-server/internal/logger"
)

// shutdownTimeout bounds graceful shutdown of long-lived services.
const shutdownTimeout = 10 * time.Second

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting SteamWatch Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"database_path", cfg.Database.Path,
		"track_interval", cfg.Tracker.Interval,
	)

	return log, nil
}
