// Package service contains the price tracking business logic.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/steamwatch/steamwatch-server/internal/domain"
	errs "github.com/steamwatch/steamwatch-server/internal/errors"
	"github.com/steamwatch/steamwatch-server/internal/mailer"
	"github.com/steamwatch/steamwatch-server/internal/steam"
	"github.com/steamwatch/steamwatch-server/internal/store"
)

// PricingSource fetches current pricing from the storefront.
type PricingSource interface {
	AppDetails(ctx context.Context, appID int64) (*steam.AppDetails, error)
}

// Notifier dispatches one discount notification.
type Notifier interface {
	SendDiscountAlert(email mailer.DiscountEmail) error
}

// TrackerService syncs tracked games against the storefront, records price
// snapshots, and fires discount alerts.
type TrackerService struct {
	store    *store.Store
	source   PricingSource
	notifier Notifier
	cooldown time.Duration
	logger   *slog.Logger
}

// NewTrackerService creates a tracker service.
func NewTrackerService(st *store.Store, source PricingSource, notifier Notifier, cooldown time.Duration, logger *slog.Logger) *TrackerService {
	return &TrackerService{
		store:    st,
		source:   source,
		notifier: notifier,
		cooldown: cooldown,
		logger:   logger,
	}
}

// LookupGame fetches current storefront data for one appid and upserts the
// game's name. No snapshot is recorded; this backs the on-demand GET path.
func (t *TrackerService) LookupGame(ctx context.Context, appID int64) (*domain.SyncResult, error) {
	details, err := t.fetch(ctx, appID)
	if err != nil {
		return nil, err
	}

	if err := t.store.UpsertGame(ctx, appID, details.Name); err != nil {
		return nil, err
	}

	return &domain.SyncResult{
		AppID:           appID,
		Name:            details.Name,
		PriceCents:      details.PriceCents,
		Currency:        details.Currency,
		DiscountPercent: details.DiscountPercent,
	}, nil
}

// SyncGame fetches current pricing for one game, upserts its name, and
// appends a snapshot when the (price, currency, discount) triple changed
// since the most recent one. Returns errs.ErrNotFound when the storefront
// no longer lists the appid; batch callers skip that without failing.
func (t *TrackerService) SyncGame(ctx context.Context, appID int64) (*domain.SyncResult, error) {
	details, err := t.fetch(ctx, appID)
	if err != nil {
		return nil, err
	}

	if err := t.store.UpsertGame(ctx, appID, details.Name); err != nil {
		return nil, err
	}

	latest, err := t.store.LatestSnapshot(ctx, appID)
	if err != nil {
		return nil, err
	}

	current := &domain.PriceSnapshot{
		AppID:           appID,
		PriceCents:      details.PriceCents,
		Currency:        details.Currency,
		DiscountPercent: details.DiscountPercent,
		RecordedAt:      time.Now(),
	}

	inserted := false
	if latest == nil || !latest.SameTriple(current) {
		if err := t.store.InsertSnapshot(ctx, current); err != nil {
			return nil, err
		}
		inserted = true
	}

	return &domain.SyncResult{
		AppID:            appID,
		Name:             details.Name,
		PriceCents:       details.PriceCents,
		Currency:         details.Currency,
		DiscountPercent:  details.DiscountPercent,
		SnapshotInserted: inserted,
	}, nil
}

// EvaluateAlerts fires every eligible subscription for a sync result and
// returns the number of notifications sent. A failed send is logged and
// skipped without stamping, so the remaining subscribers still get theirs.
func (t *TrackerService) EvaluateAlerts(ctx context.Context, result *domain.SyncResult) (int, error) {
	if !result.HasDiscount() {
		return 0, nil
	}

	now := time.Now()
	discount := *result.DiscountPercent

	alerts, err := t.store.EligibleAlerts(ctx, result.AppID, discount, now, t.cooldown)
	if err != nil {
		return 0, err
	}

	fired := 0
	for _, alert := range alerts {
		email := mailer.DiscountEmail{
			To:              alert.Email,
			GameName:        result.Name,
			AppID:           result.AppID,
			DiscountPercent: discount,
			PriceCents:      result.PriceCents,
			Currency:        result.Currency,
		}

		if err := t.notifier.SendDiscountAlert(email); err != nil {
			t.logger.Warn("discount alert send failed",
				"alert_id", alert.ID,
				"to", alert.Email,
				"appid", result.AppID,
				"error", err,
			)
			continue
		}

		if err := t.store.StampAlertTrigger(ctx, alert.ID, now); err != nil {
			t.logger.Warn("failed to stamp alert trigger",
				"alert_id", alert.ID,
				"error", err,
			)
			continue
		}
		fired++
	}

	return fired, nil
}

// RunCycle performs one full pass over all tracked games: sync each, then
// evaluate its alerts. A single game's failure is logged at that iteration
// and never aborts the remaining games.
func (t *TrackerService) RunCycle(ctx context.Context) (*domain.CycleStats, error) {
	ids, err := t.store.ListGameIDs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.CycleStats{TrackedGames: len(ids)}

	for _, appID := range ids {
		result, err := t.SyncGame(ctx, appID)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				// Game vanished upstream; not a failure.
				t.logger.Debug("game no longer listed, skipping", "appid", appID)
				continue
			}
			t.logger.Warn("sync failed, skipping game", "appid", appID, "error", err)
			continue
		}

		if result.SnapshotInserted {
			stats.Inserted++
		}

		fired, err := t.EvaluateAlerts(ctx, result)
		if err != nil {
			t.logger.Warn("alert evaluation failed", "appid", appID, "error", err)
			continue
		}
		stats.Alerted += fired
	}

	return stats, nil
}

// fetch wraps the pricing source call, mapping an unlisted app to a
// not-found error and anything else to an upstream failure.
func (t *TrackerService) fetch(ctx context.Context, appID int64) (*steam.AppDetails, error) {
	details, err := t.source.AppDetails(ctx, appID)
	if err != nil {
		if errs.Is(err, steam.ErrAppNotFound) {
			return nil, errs.NotFound("app not found on Steam")
		}
		return nil, errs.Upstream("steam fetch failed", err)
	}
	return details, nil
}
