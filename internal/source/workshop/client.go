// Package workshop reads mod dependencies from Steam Workshop item pages.
package workshop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"a3mm/internal/domain"
)

const (
	// DefaultBaseURL is the Workshop item page endpoint
	DefaultBaseURL = "https://steamcommunity.com/sharedfiles/filedetails/"

	maxPageSize = 8 << 20
)

// Client fetches Workshop item pages
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Workshop client. An empty baseURL uses DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// ItemURL returns the Workshop page URL for a mod
func (c *Client) ItemURL(id string) string {
	return c.baseURL + "?id=" + url.QueryEscape(id)
}

// FetchDependencies returns the required items listed on a mod's Workshop
// page, in page order. A page without a required items section yields an
// empty result.
func (c *Client) FetchDependencies(ctx context.Context, id string) (deps []domain.Dependency, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ItemURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching workshop page %s: %w", domain.ErrNetwork, id, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: workshop page %s returned status %d", domain.ErrNetwork, id, resp.StatusCode)
	}

	deps, err = ParseRequiredItems(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading workshop page %s: %w", domain.ErrNetwork, id, err)
	}
	return deps, nil
}
