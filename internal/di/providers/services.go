package providers

import (
	"github.com/samber/do/v2"

	"github.com/steamwatch/steamwatch-server/internal/config"
	"github.com/steamwatch/steamwatch-server/internal/logger"
	"github.com/steamwatch/steamwatch-server/internal/service"
)

// ProvideTrackerService provides the price tracking service.
func ProvideTrackerService(i do.Injector) (*service.TrackerService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	steamHandle := do.MustInvoke[*SteamClientHandle](i)
	mailerHandle := do.MustInvoke[*MailerHandle](i)

	return service.NewTrackerService(
		storeHandle.Store,
		steamHandle.Client,
		mailerHandle.Mailer,
		cfg.Tracker.AlertCooldown,
		log.Logger,
	), nil
}
