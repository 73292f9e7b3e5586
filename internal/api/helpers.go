package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// parsePositiveInt parses a positive integer, returning 0 on anything invalid.
func parsePositiveInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// appIDQuery extracts a positive appid from the query string, 0 if invalid.
func appIDQuery(r *http.Request) int64 {
	return parsePositiveInt(r.URL.Query().Get("appid"))
}

// appIDParam extracts a positive appid from the URL path, 0 if invalid.
func appIDParam(r *http.Request) int64 {
	return parsePositiveInt(chi.URLParam(r, "appid"))
}

// idParam extracts a positive row id from the URL path, 0 if invalid.
func idParam(r *http.Request) int64 {
	return parsePositiveInt(chi.URLParam(r, "id"))
}

// historyLimit parses the limit query parameter, clamped to [1, 200].
// Missing, zero, or negative values fall back to the default of 20.
func historyLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultHistoryLimit
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return defaultHistoryLimit
	}
	if v > maxHistoryLimit {
		return maxHistoryLimit
	}
	return v
}
