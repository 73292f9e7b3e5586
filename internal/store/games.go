package store

import (
	"context"
	"database/sql"

	"github.com/steamwatch/steamwatch-server/internal/domain"
	errs "github.com/steamwatch/steamwatch-server/internal/errors"
)

// UpsertGame inserts a tracked game or updates its name on conflict.
// The thumbnail is left untouched; only the explicit add-game path writes it.
func (s *Store) UpsertGame(ctx context.Context, appID int64, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (appid, name)
		VALUES (?, ?)
		ON CONFLICT (appid) DO UPDATE SET name = excluded.name`,
		appID, name,
	)
	if err != nil {
		return errs.Internal("upsert game", err)
	}
	return nil
}

// UpsertGameWithThumbnail inserts or updates a game including its thumbnail.
// An existing thumbnail is never erased: a NULL incoming value keeps the old one.
func (s *Store) UpsertGameWithThumbnail(ctx context.Context, appID int64, name string, tinyImage *string) (*domain.TrackedGame, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO games (appid, name, tiny_image)
		VALUES (?, ?, ?)
		ON CONFLICT (appid) DO UPDATE SET
			name = excluded.name,
			tiny_image = COALESCE(excluded.tiny_image, games.tiny_image)
		RETURNING appid, name, tiny_image`,
		appID, name, nullableString(tinyImage),
	)

	var (
		g    domain.TrackedGame
		tiny sql.NullString
	)
	if err := row.Scan(&g.AppID, &g.Name, &tiny); err != nil {
		return nil, errs.Internal("upsert game with thumbnail", err)
	}
	g.TinyImage = stringPtr(tiny)
	return &g, nil
}

// ListGames returns all tracked games ordered by name ascending.
func (s *Store) ListGames(ctx context.Context) ([]*domain.TrackedGame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT appid, name, tiny_image FROM games ORDER BY name ASC`)
	if err != nil {
		return nil, errs.Internal("list games", err)
	}
	defer rows.Close()

	games := []*domain.TrackedGame{}
	for rows.Next() {
		var (
			g    domain.TrackedGame
			tiny sql.NullString
		)
		if err := rows.Scan(&g.AppID, &g.Name, &tiny); err != nil {
			return nil, errs.Internal("scan game", err)
		}
		g.TinyImage = stringPtr(tiny)
		games = append(games, &g)
	}
	return games, rows.Err()
}

// ListGameIDs returns all tracked appids in ascending order.
// The tracking cycle iterates this list.
func (s *Store) ListGameIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT appid FROM games ORDER BY appid ASC`)
	if err != nil {
		return nil, errs.Internal("list game ids", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errs.Internal("scan game id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListGamesWithLatestPrice returns every game joined with its most recent
// snapshot. Games without history carry NULL price fields.
func (s *Store) ListGamesWithLatestPrice(ctx context.Context) ([]*domain.GameWithLatestPrice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.appid, g.name, g.tiny_image,
		       ph.price_cents, ph.currency, ph.discount_percent, ph.recorded_at
		FROM games g
		LEFT JOIN price_history ph ON ph.id = (
			SELECT id FROM price_history
			WHERE appid = g.appid
			ORDER BY recorded_at DESC, id DESC
			LIMIT 1
		)
		ORDER BY g.appid ASC`)
	if err != nil {
		return nil, errs.Internal("list games with latest price", err)
	}
	defer rows.Close()

	games := []*domain.GameWithLatestPrice{}
	for rows.Next() {
		var (
			g          domain.GameWithLatestPrice
			tiny       sql.NullString
			price      sql.NullInt64
			currency   sql.NullString
			discount   sql.NullInt64
			recordedAt sql.NullString
		)
		if err := rows.Scan(&g.AppID, &g.Name, &tiny, &price, &currency, &discount, &recordedAt); err != nil {
			return nil, errs.Internal("scan game with latest price", err)
		}
		g.TinyImage = stringPtr(tiny)
		g.PriceCents = int64Ptr(price)
		g.Currency = stringPtr(currency)
		g.DiscountPercent = int64Ptr(discount)
		if g.RecordedAt, err = parseNullableTime(recordedAt); err != nil {
			return nil, errs.Internal("parse recorded_at", err)
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}

// DeleteGame removes a game; snapshots and alerts cascade via foreign keys.
// Returns errs.ErrNotFound if the game was not tracked.
func (s *Store) DeleteGame(ctx context.Context, appID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE appid = ?`, appID)
	if err != nil {
		return errs.Internal("delete game", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errs.Internal("delete game", err)
	}
	if affected == 0 {
		return errs.NotFound("game not found")
	}
	return nil
}
