// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches raw result payloads from bibliographic backends.
// It issues exactly one request per call and returns the unparsed body;
// extraction is the parse package's job. Retry and backoff policy live with
// the caller, never here.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/citefetch/pkg/types"
)

// Backend endpoints. Declared as vars so tests can substitute an httptest
// server.
var (
	dblpAPIBase = "https://dblp.org/search/publ/api"
	scholarBase = "https://scholar.google.com/scholar"
)

// ErrSourceUnavailable marks a transport failure or non-2xx response from a
// backend. It is fatal to the session; callers decide whether to retry.
var ErrSourceUnavailable = errors.New("source unavailable")

// Payload is one unparsed backend response. The Kind records which backend
// produced the body and therefore which parse strategy applies.
type Payload struct {
	Kind types.BackendKind
	Body string
}

// Client fetches search payloads over HTTP.
type Client struct {
	HTTP *http.Client
}

// Fetch queries the configured backend with a free-text query and returns
// the raw response body. The query is percent-encoded; an empty query is an
// error before any request is made.
func (c *Client) Fetch(ctx context.Context, query string, cfg types.FetchConfig) (Payload, error) {
	if query == "" {
		return Payload{}, fmt.Errorf("empty query")
	}

	reqURL, err := buildURL(query, cfg)
	if err != nil {
		return Payload{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %s request: %v", ErrSourceUnavailable, cfg.Backend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Payload{}, fmt.Errorf("%w: %s returned HTTP %d", ErrSourceUnavailable, cfg.Backend, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: reading %s response: %v", ErrSourceUnavailable, cfg.Backend, err)
	}

	return Payload{Kind: cfg.Backend, Body: string(body)}, nil
}

// buildURL fills the backend's fixed request template.
func buildURL(query string, cfg types.FetchConfig) (string, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	switch cfg.Backend {
	case types.BackendDBLP:
		params := url.Values{
			"q":      {query},
			"format": {"xml"},
			"h":      {fmt.Sprintf("%d", maxResults)},
		}
		return dblpAPIBase + "?" + params.Encode(), nil
	case types.BackendScholar:
		params := url.Values{
			"q":  {query},
			"hl": {"en"},
		}
		return scholarBase + "?" + params.Encode(), nil
	}
	return "", fmt.Errorf("unknown backend %q", cfg.Backend)
}
