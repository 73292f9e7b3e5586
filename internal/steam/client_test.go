package steam

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClient(Options{BaseURL: srv.URL}, logger)
}

func TestAppDetailsPriced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/appdetails" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("appids"); got != "730" {
			t.Errorf("unexpected appids %q", got)
		}
		if got := r.URL.Query().Get("cc"); got != "ca" {
			t.Errorf("unexpected cc %q", got)
		}
		w.Write([]byte(`{"730":{"success":true,"data":{"name":"Counter-Strike 2","price_overview":{"currency":"CAD","initial":2500,"final":1999,"discount_percent":20}}}}`))
	})

	details, err := c.AppDetails(context.Background(), 730)
	if err != nil {
		t.Fatalf("app details: %v", err)
	}
	if details.Name != "Counter-Strike 2" {
		t.Errorf("unexpected name %q", details.Name)
	}
	if details.PriceCents == nil || *details.PriceCents != 1999 {
		t.Errorf("unexpected price %v", details.PriceCents)
	}
	if details.Currency == nil || *details.Currency != "CAD" {
		t.Errorf("unexpected currency %v", details.Currency)
	}
	if details.DiscountPercent == nil || *details.DiscountPercent != 20 {
		t.Errorf("unexpected discount %v", details.DiscountPercent)
	}
}

func TestAppDetailsFreeGame(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"570":{"success":true,"data":{"name":"Dota 2"}}}`))
	})

	details, err := c.AppDetails(context.Background(), 570)
	if err != nil {
		t.Fatalf("app details: %v", err)
	}
	if details.PriceCents != nil || details.Currency != nil || details.DiscountPercent != nil {
		t.Errorf("expected nil price fields for free game, got %+v", details)
	}
}

func TestAppDetailsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"999":{"success":false}}`))
	})

	_, err := c.AppDetails(context.Background(), 999)
	if !errors.Is(err, ErrAppNotFound) {
		t.Errorf("expected ErrAppNotFound, got %v", err)
	}
}

func TestAppDetailsMissingEntry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.AppDetails(context.Background(), 123)
	if !errors.Is(err, ErrAppNotFound) {
		t.Errorf("expected ErrAppNotFound, got %v", err)
	}
}

func TestAppDetailsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.AppDetails(context.Background(), 730)
	if err == nil {
		t.Fatal("expected error on 502")
	}
	if errors.Is(err, ErrAppNotFound) {
		t.Errorf("transport failure must not look like an unlisted app: %v", err)
	}
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/storesearch/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("term"); got != "portal" {
			t.Errorf("unexpected term %q", got)
		}
		w.Write([]byte(`{"total":2,"items":[{"id":400,"name":"Portal","tiny_image":"https://img/400.jpg"},{"id":620,"name":"Portal 2","tiny_image":""}]}`))
	})

	results, err := c.Search(context.Background(), "  portal  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].AppID != 400 || results[0].Name != "Portal" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[0].TinyImage == nil || *results[0].TinyImage != "https://img/400.jpg" {
		t.Errorf("expected thumbnail, got %v", results[0].TinyImage)
	}
	if results[1].TinyImage != nil {
		t.Errorf("expected nil thumbnail for empty string, got %v", results[1].TinyImage)
	}
}

func TestSearchEmptyTermSkipsNetwork(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(`{"total":0,"items":[]}`))
	})

	results, err := c.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", results)
	}
	if called {
		t.Error("empty term must not hit the network")
	}
}

func TestClientDefaults(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := NewClient(Options{}, logger)

	if c.baseURL != defaultBaseURL {
		t.Errorf("unexpected base URL %q", c.baseURL)
	}
	if c.countryCode != "ca" || c.language != "en" {
		t.Errorf("unexpected defaults cc=%q l=%q", c.countryCode, c.language)
	}
}
