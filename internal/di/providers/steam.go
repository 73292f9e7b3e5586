package providers

import (
	"github.com/samber/do/v2"

	"github.com/steamwatch/steamwatch-server/internal/config"
	"github.com/steamwatch/steamwatch-server/internal/logger"
	"github.com/steamwatch/steamwatch-server/internal/steam"
)

// SteamClientHandle wraps the storefront client for lifecycle consistency.
type SteamClientHandle struct {
	*steam.Client
}

// ProvideSteamClient provides the Steam storefront client.
func ProvideSteamClient(i do.Injector) (*SteamClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := steam.NewClient(steam.Options{
		CountryCode: cfg.Steam.CountryCode,
		Language:    cfg.Steam.Language,
		Timeout:     cfg.Steam.Timeout,
	}, log.Logger)

	log.Info("Steam client ready",
		"country_code", cfg.Steam.CountryCode,
		"language", cfg.Steam.Language,
	)

	return &SteamClientHandle{Client: client}, nil
}
