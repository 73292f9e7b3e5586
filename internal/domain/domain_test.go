package domain

import (
	"testing"
	"time"
)

func strp(s string) *string { return &s }
func i64p(v int64) *int64   { return &v }

func TestSameTriple(t *testing.T) {
	cases := []struct {
		name string
		a, b PriceSnapshot
		want bool
	}{
		{
			"identical",
			PriceSnapshot{PriceCents: i64p(1999), Currency: strp("CAD"), DiscountPercent: i64p(20)},
			PriceSnapshot{PriceCents: i64p(1999), Currency: strp("CAD"), DiscountPercent: i64p(20)},
			true,
		},
		{
			"all nil",
			PriceSnapshot{},
			PriceSnapshot{},
			true,
		},
		{
			"price differs",
			PriceSnapshot{PriceCents: i64p(1999), Currency: strp("CAD"), DiscountPercent: i64p(20)},
			PriceSnapshot{PriceCents: i64p(1499), Currency: strp("CAD"), DiscountPercent: i64p(20)},
			false,
		},
		{
			"discount differs",
			PriceSnapshot{PriceCents: i64p(1999), Currency: strp("CAD"), DiscountPercent: i64p(20)},
			PriceSnapshot{PriceCents: i64p(1999), Currency: strp("CAD"), DiscountPercent: i64p(25)},
			false,
		},
		{
			"nil never equals zero",
			PriceSnapshot{PriceCents: i64p(0), Currency: strp("CAD"), DiscountPercent: i64p(0)},
			PriceSnapshot{},
			false,
		},
		{
			"currency nil vs set",
			PriceSnapshot{PriceCents: i64p(1999), DiscountPercent: i64p(20)},
			PriceSnapshot{PriceCents: i64p(1999), Currency: strp("CAD"), DiscountPercent: i64p(20)},
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.SameTriple(&tc.b); got != tc.want {
				t.Errorf("SameTriple = %v, want %v", got, tc.want)
			}
			// Symmetric.
			if got := tc.b.SameTriple(&tc.a); got != tc.want {
				t.Errorf("SameTriple reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasDiscount(t *testing.T) {
	r := SyncResult{}
	if r.HasDiscount() {
		t.Error("nil discount must not count")
	}
	r.DiscountPercent = i64p(0)
	if r.HasDiscount() {
		t.Error("zero discount must not count")
	}
	r.DiscountPercent = i64p(1)
	if !r.HasDiscount() {
		t.Error("positive discount must count")
	}
}

func TestAlertEligible(t *testing.T) {
	now := time.Now()
	cooldown := 24 * time.Hour

	alert := DiscountAlert{Active: true, MinDiscountPercent: 25}
	if !alert.Eligible(25, now, cooldown) {
		t.Error("threshold met exactly should be eligible")
	}
	if alert.Eligible(24, now, cooldown) {
		t.Error("below threshold must not be eligible")
	}

	inactive := alert
	inactive.Active = false
	if inactive.Eligible(50, now, cooldown) {
		t.Error("inactive alert must not be eligible")
	}

	recent := now.Add(-23 * time.Hour)
	alert.LatestTrigger = &recent
	if alert.Eligible(50, now, cooldown) {
		t.Error("inside cooldown must not be eligible")
	}

	stale := now.Add(-25 * time.Hour)
	alert.LatestTrigger = &stale
	if !alert.Eligible(50, now, cooldown) {
		t.Error("after cooldown should be eligible")
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  A@B.com ":     "a@b.com",
		"USER@DOMAIN.CA": "user@domain.ca",
		"plain@x.com":    "plain@x.com",
		"  ":             "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
