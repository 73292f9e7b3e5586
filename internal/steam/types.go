// Package steam provides a client for the Steam storefront pricing and search APIs.
package steam

import "errors"

// ErrAppNotFound is returned when the storefront reports an appid as
// unknown or inactive for the configured region. It is distinct from
// transport or parse failures, which are returned as ordinary errors.
var ErrAppNotFound = errors.New("steam: app not found")

// AppDetails is the normalized subset of an appdetails response used downstream.
type AppDetails struct {
	AppID           int64   `json:"appid"`
	Name            string  `json:"name"`
	PriceCents      *int64  `json:"price_cents"`      // nil = free-to-play or unlisted price
	Currency        *string `json:"currency"`         // nil when there is no price
	DiscountPercent *int64  `json:"discount_percent"` // nil when there is no price
}

// SearchResult is one entry from a storefront free-text search.
type SearchResult struct {
	AppID     int64   `json:"appid"`
	Name      string  `json:"name"`
	TinyImage *string `json:"tiny_image"`
}

// appDetailsEntry is one per-appid entry of the raw appdetails response.
type appDetailsEntry struct {
	Success bool           `json:"success"`
	Data    appDetailsData `json:"data"`
}

// appDetailsData is the raw data payload of an appdetails entry.
type appDetailsData struct {
	Name          string         `json:"name"`
	PriceOverview *priceOverview `json:"price_overview"`
}

// priceOverview is the raw storefront price block. Absent for free games.
type priceOverview struct {
	Currency        string `json:"currency"`
	Initial         int64  `json:"initial"`
	Final           int64  `json:"final"`
	DiscountPercent int64  `json:"discount_percent"`
}

// storeSearchResponse is the raw storesearch response.
type storeSearchResponse struct {
	Total int               `json:"total"`
	Items []storeSearchItem `json:"items"`
}

// storeSearchItem is a single raw search result.
type storeSearchItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TinyImage string `json:"tiny_image"`
}
