package steam

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://store.steampowered.com"

// Client provides access to the Steam storefront API.
type Client struct {
	baseURL     string
	countryCode string
	language    string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// Options configures a Client.
type Options struct {
	// BaseURL overrides the storefront endpoint, used in tests.
	BaseURL string
	// CountryCode selects the storefront currency (default: ca).
	CountryCode string
	// Language selects the storefront locale (default: en).
	Language string
	// Timeout is the per-request deadline (default: 15s). A slow upstream
	// call becomes an ordinary fetch error instead of stalling a batch.
	Timeout time.Duration
}

// NewClient creates a new Steam storefront client.
// Requests are rate limited to stay well under the storefront's
// undocumented throttling (roughly 200 requests per 5 minutes).
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.CountryCode == "" {
		opts.CountryCode = "ca"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL:     opts.BaseURL,
		countryCode: opts.CountryCode,
		language:    opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		// ~1 request per 2 seconds sustained, burst of 5.
		rateLimiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
		logger:      logger,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// AppDetails looks up one storefront listing by appid.
// Returns ErrAppNotFound when the storefront reports the appid unknown or
// inactive for the configured region.
func (c *Client) AppDetails(ctx context.Context, appID int64) (*AppDetails, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("appids", strconv.FormatInt(appID, 10))
	params.Set("cc", c.countryCode)
	params.Set("l", c.language)

	detailsURL := c.baseURL + "/api/appdetails?" + params.Encode()

	c.logger.Debug("fetching app details", "appid", appID, "url", detailsURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("appdetails request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("appdetails failed: status %d", resp.StatusCode)
	}

	// The response is keyed by the requested appid.
	var payload map[string]appDetailsEntry
	if err := json.UnmarshalRead(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	entry, ok := payload[strconv.FormatInt(appID, 10)]
	if !ok || !entry.Success {
		return nil, ErrAppNotFound
	}

	details := &AppDetails{
		AppID: appID,
		Name:  entry.Data.Name,
	}
	if po := entry.Data.PriceOverview; po != nil {
		price := po.Final
		currency := po.Currency
		discount := po.DiscountPercent
		details.PriceCents = &price
		details.Currency = &currency
		details.DiscountPercent = &discount
	}

	return details, nil
}
