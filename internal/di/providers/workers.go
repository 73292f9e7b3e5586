package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/steamwatch/steamwatch-server/internal/config"
	"github.com/steamwatch/steamwatch-server/internal/logger"
	"github.com/steamwatch/steamwatch-server/internal/service"
)

// TrackerJob runs the periodic price tracking cycle.
type TrackerJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *TrackerJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideTrackerJob provides the interval-driven tracking cycle.
// The cycle is invoked in-process; POST /track/run wraps the same routine.
func ProvideTrackerJob(i do.Injector) (*TrackerJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tracker := do.MustInvoke[*service.TrackerService](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(cfg.Tracker.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats, err := tracker.RunCycle(ctx)
				if err != nil {
					log.Warn("Tracking cycle failed", "error", err)
					continue
				}
				log.Info("Tracking cycle complete",
					"tracked_games", stats.TrackedGames,
					"inserted", stats.Inserted,
					"alerted", stats.Alerted,
				)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Tracker job started", "interval", cfg.Tracker.Interval)

	return &TrackerJob{cancel: cancel}, nil
}
