package store

import (
	"context"
	"database/sql"

	"github.com/steamwatch/steamwatch-server/internal/domain"
	errs "github.com/steamwatch/steamwatch-server/internal/errors"
)

// InsertSnapshot appends a new price snapshot row.
func (s *Store) InsertSnapshot(ctx context.Context, snap *domain.PriceSnapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_history (appid, price_cents, currency, discount_percent, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		snap.AppID,
		nullableInt64(snap.PriceCents),
		nullableString(snap.Currency),
		nullableInt64(snap.DiscountPercent),
		formatTime(snap.RecordedAt),
	)
	if err != nil {
		return errs.Internal("insert snapshot", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for a game,
// or nil (without error) when no snapshot exists yet.
func (s *Store) LatestSnapshot(ctx context.Context, appID int64) (*domain.PriceSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT appid, price_cents, currency, discount_percent, recorded_at
		FROM price_history
		WHERE appid = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1`,
		appID,
	)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("latest snapshot", err)
	}
	return snap, nil
}

// SnapshotHistory returns snapshots for a game, newest first, capped at limit.
func (s *Store) SnapshotHistory(ctx context.Context, appID int64, limit int) ([]*domain.PriceSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT appid, price_cents, currency, discount_percent, recorded_at
		FROM price_history
		WHERE appid = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`,
		appID, limit,
	)
	if err != nil {
		return nil, errs.Internal("snapshot history", err)
	}
	defer rows.Close()

	history := []*domain.PriceSnapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, errs.Internal("scan snapshot", err)
		}
		history = append(history, snap)
	}
	return history, rows.Err()
}

// scanSnapshot scans a sql.Row (or sql.Rows via its Scan method) into a domain.PriceSnapshot.
func scanSnapshot(scanner interface{ Scan(dest ...any) error }) (*domain.PriceSnapshot, error) {
	var (
		snap       domain.PriceSnapshot
		price      sql.NullInt64
		currency   sql.NullString
		discount   sql.NullInt64
		recordedAt string
	)

	err := scanner.Scan(&snap.AppID, &price, &currency, &discount, &recordedAt)
	if err != nil {
		return nil, err
	}

	snap.PriceCents = int64Ptr(price)
	snap.Currency = stringPtr(currency)
	snap.DiscountPercent = int64Ptr(discount)
	if snap.RecordedAt, err = parseTime(recordedAt); err != nil {
		return nil, err
	}
	return &snap, nil
}
