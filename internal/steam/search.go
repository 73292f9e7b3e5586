package steam

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Search runs a free-text storefront search.
// An empty (post-trim) term returns an empty slice without a network call.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []SearchResult{}, nil
	}

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("cc", c.countryCode)
	params.Set("l", c.language)

	searchURL := c.baseURL + "/api/storesearch/?" + params.Encode()

	c.logger.Debug("searching storefront", "term", term, "url", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var payload storeSearchResponse
	if err := json.UnmarshalRead(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		r := SearchResult{
			AppID: item.ID,
			Name:  item.Name,
		}
		if item.TinyImage != "" {
			tiny := item.TinyImage
			r.TinyImage = &tiny
		}
		results = append(results, r)
	}

	return results, nil
}
