package store

import (
	"context"
	"testing"
	"time"

	"github.com/steamwatch/steamwatch-server/internal/domain"
)

func TestLatestSnapshotEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertGame(ctx, 1, "game"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	snap, err := s.LatestSnapshot(ctx, 1)
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil for game without history, got %+v", snap)
	}
}

func TestLatestSnapshotOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertGame(ctx, 1, "game"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	prices := []int64{1000, 800, 600}
	for i, p := range prices {
		snap := &domain.PriceSnapshot{
			AppID:      1,
			PriceCents: i64p(p),
			Currency:   strp("CAD"),
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.InsertSnapshot(ctx, snap); err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
	}

	latest, err := s.LatestSnapshot(ctx, 1)
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if latest == nil || latest.PriceCents == nil || *latest.PriceCents != 600 {
		t.Errorf("expected latest price 600, got %+v", latest)
	}
}

func TestSnapshotNullFieldsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertGame(ctx, 1, "free game"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A free game has no price triple at all.
	snap := &domain.PriceSnapshot{AppID: 1, RecordedAt: time.Now()}
	if err := s.InsertSnapshot(ctx, snap); err != nil {
		t.Fatalf("insert snapshot: %v", err)
	}

	latest, err := s.LatestSnapshot(ctx, 1)
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if latest.PriceCents != nil || latest.Currency != nil || latest.DiscountPercent != nil {
		t.Errorf("expected all-NULL triple, got %+v", latest)
	}
	if !latest.SameTriple(snap) {
		t.Errorf("all-NULL triples should compare equal")
	}
}

func TestSnapshotHistoryNewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertGame(ctx, 1, "game"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i := range 10 {
		snap := &domain.PriceSnapshot{
			AppID:      1,
			PriceCents: i64p(int64(1000 - i)),
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.InsertSnapshot(ctx, snap); err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
	}

	history, err := s.SnapshotHistory(ctx, 1, 3)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(history))
	}
	// Newest first.
	if *history[0].PriceCents != 991 || *history[2].PriceCents != 993 {
		t.Errorf("unexpected ordering: %d, %d", *history[0].PriceCents, *history[2].PriceCents)
	}
}
