package domain

import (
	"strings"
	"time"
)

// DiscountAlert is one subscription to a game's discount threshold.
// At most one row exists per (appid, email, threshold) triple; re-creating
// an identical subscription reactivates the existing row.
type DiscountAlert struct {
	ID                 int64      `json:"id"`
	AppID              int64      `json:"appid"`
	Email              string     `json:"email"`
	MinDiscountPercent int64      `json:"min_discount_percent"`
	Active             bool       `json:"active"`
	LatestTrigger      *time.Time `json:"latest_trigger"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Eligible reports whether this alert may fire for the given discount at
// the given evaluation time: active, threshold met, and cooldown elapsed.
func (a *DiscountAlert) Eligible(discountPercent int64, now time.Time, cooldown time.Duration) bool {
	if !a.Active || a.MinDiscountPercent > discountPercent {
		return false
	}
	if a.LatestTrigger == nil {
		return true
	}
	return now.Sub(*a.LatestTrigger) > cooldown
}

// NormalizeEmail canonicalizes a subscriber address: trimmed and case-folded.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
