package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/steamwatch/steamwatch-server/internal/domain"
	errs "github.com/steamwatch/steamwatch-server/internal/errors"
)

// alertColumns is the ordered list of columns selected in alert queries.
// Must match the scan order in scanAlert.
const alertColumns = `id, appid, email, min_discount_percent, active, latest_trigger, created_at`

// scanAlert scans a sql.Row (or sql.Rows via its Scan method) into a domain.DiscountAlert.
func scanAlert(scanner interface{ Scan(dest ...any) error }) (*domain.DiscountAlert, error) {
	var (
		a             domain.DiscountAlert
		active        int
		latestTrigger sql.NullString
		createdAt     string
	)

	err := scanner.Scan(&a.ID, &a.AppID, &a.Email, &a.MinDiscountPercent, &active, &latestTrigger, &createdAt)
	if err != nil {
		return nil, err
	}

	a.Active = active != 0
	if a.LatestTrigger, err = parseNullableTime(latestTrigger); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAlert inserts a discount alert subscription, or reactivates the
// existing row when the (appid, email, threshold) triple already exists.
// Returns errs.ErrNotFound when the game is not tracked.
func (s *Store) CreateAlert(ctx context.Context, appID int64, email string, minDiscountPercent int64, now time.Time) (*domain.DiscountAlert, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO discount_alerts (appid, email, min_discount_percent, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (appid, email, min_discount_percent) DO UPDATE SET active = 1
		RETURNING `+alertColumns,
		appID, domain.NormalizeEmail(email), minDiscountPercent, formatTime(now),
	)

	a, err := scanAlert(row)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return nil, errs.NotFound("game not tracked")
		}
		return nil, errs.Internal("create alert", err)
	}
	return a, nil
}

// ListAlertsByEmail returns all subscriptions for an email, newest first.
func (s *Store) ListAlertsByEmail(ctx context.Context, email string) ([]*domain.DiscountAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+alertColumns+`
		FROM discount_alerts
		WHERE email = ?
		ORDER BY created_at DESC, id DESC`,
		domain.NormalizeEmail(email),
	)
	if err != nil {
		return nil, errs.Internal("list alerts", err)
	}
	defer rows.Close()

	alerts := []*domain.DiscountAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errs.Internal("scan alert", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ListAlertsByGame returns all subscriptions for a game id.
func (s *Store) ListAlertsByGame(ctx context.Context, appID int64) ([]*domain.DiscountAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+alertColumns+`
		FROM discount_alerts
		WHERE appid = ?
		ORDER BY id ASC`,
		appID,
	)
	if err != nil {
		return nil, errs.Internal("list alerts by game", err)
	}
	defer rows.Close()

	alerts := []*domain.DiscountAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errs.Internal("scan alert", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// EligibleAlerts returns active subscriptions for a game whose threshold is
// met by the current discount and whose cooldown has elapsed.
func (s *Store) EligibleAlerts(ctx context.Context, appID, discountPercent int64, now time.Time, cooldown time.Duration) ([]*domain.DiscountAlert, error) {
	cutoff := formatTime(now.Add(-cooldown))
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+alertColumns+`
		FROM discount_alerts
		WHERE appid = ?
		  AND active = 1
		  AND min_discount_percent <= ?
		  AND (latest_trigger IS NULL OR latest_trigger < ?)
		ORDER BY id ASC`,
		appID, discountPercent, cutoff,
	)
	if err != nil {
		return nil, errs.Internal("eligible alerts", err)
	}
	defer rows.Close()

	alerts := []*domain.DiscountAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errs.Internal("scan alert", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// StampAlertTrigger records the time an alert last fired.
func (s *Store) StampAlertTrigger(ctx context.Context, alertID int64, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE discount_alerts SET latest_trigger = ? WHERE id = ?`,
		formatTime(now), alertID,
	)
	if err != nil {
		return errs.Internal("stamp alert trigger", err)
	}
	return nil
}

// DeactivateAlert clears the active flag; the row is retained.
// Returns errs.ErrNotFound if no alert has the given id.
func (s *Store) DeactivateAlert(ctx context.Context, alertID int64) (*domain.DiscountAlert, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE discount_alerts SET active = 0 WHERE id = ?
		RETURNING `+alertColumns,
		alertID,
	)

	a, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("alert not found")
	}
	if err != nil {
		return nil, errs.Internal("deactivate alert", err)
	}
	return a, nil
}
