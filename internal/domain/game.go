// Package domain defines the core types for tracked games, price history, and discount alerts.
package domain

import "time"

// TrackedGame is one Steam listing on the watch list.
// The Steam appid is the primary key; there is no internal surrogate ID.
type TrackedGame struct {
	AppID     int64   `json:"appid"`
	Name      string  `json:"name"`
	TinyImage *string `json:"tiny_image"` // Thumbnail URL, only set by the explicit add-game path
}

// PriceSnapshot is one recorded observation of a game's price state.
// Rows are append-only; a snapshot is written only when the
// (price, currency, discount) triple changed since the last one.
type PriceSnapshot struct {
	AppID           int64     `json:"appid,omitzero"`
	PriceCents      *int64    `json:"price_cents"`      // nil = free or unknown
	Currency        *string   `json:"currency"`         // nil when there is no price
	DiscountPercent *int64    `json:"discount_percent"` // nil when there is no price
	RecordedAt      time.Time `json:"recorded_at"`
}

// SameTriple reports whether the (price, currency, discount) triple matches
// the other snapshot exactly. Nil compares equal to nil only.
func (p *PriceSnapshot) SameTriple(o *PriceSnapshot) bool {
	return eqInt64Ptr(p.PriceCents, o.PriceCents) &&
		eqStringPtr(p.Currency, o.Currency) &&
		eqInt64Ptr(p.DiscountPercent, o.DiscountPercent)
}

// SyncResult is the normalized outcome of syncing one game against the storefront.
type SyncResult struct {
	AppID            int64   `json:"appid"`
	Name             string  `json:"name"`
	PriceCents       *int64  `json:"price_cents"`
	Currency         *string `json:"currency"`
	DiscountPercent  *int64  `json:"discount_percent"`
	SnapshotInserted bool    `json:"snapshot_inserted"`
}

// HasDiscount reports whether the sync saw a positive discount.
// Only positive discounts are eligible for alert evaluation.
func (r *SyncResult) HasDiscount() bool {
	return r.DiscountPercent != nil && *r.DiscountPercent > 0
}

// GameWithLatestPrice joins a tracked game with its most recent snapshot.
// The snapshot fields are nil when no snapshot has been recorded yet.
type GameWithLatestPrice struct {
	AppID           int64      `json:"appid"`
	Name            string     `json:"name"`
	TinyImage       *string    `json:"tiny_image"`
	PriceCents      *int64     `json:"price_cents"`
	Currency        *string    `json:"currency"`
	DiscountPercent *int64     `json:"discount_percent"`
	RecordedAt      *time.Time `json:"recorded_at"`
}

// CycleStats aggregates the counters of one full tracking cycle.
type CycleStats struct {
	TrackedGames int `json:"tracked_games"`
	Inserted     int `json:"inserted"`
	Alerted      int `json:"alerted"`
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
