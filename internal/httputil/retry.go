// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for callers of the fetch pipeline.
// The pipeline itself never retries; backoff policy is wired in here, at the
// transport level, by the CLI when the user asks for it.
package httputil

import (
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// RetryTransport is an http.RoundTripper that retries GET requests on
// HTTP 429 (Too Many Requests) with exponential backoff. The delay starts
// at RetryBaseDelay and doubles each attempt: 10 s, 20 s, 40 s, 80 s, 160 s.
//
// Only bodyless requests are safe to replay, which covers every request the
// fetch pipeline makes. When MaxRetries is 0 the default (5) is used. On
// each 429 the response body is drained and closed before sleeping. If the
// request context is cancelled during a backoff wait the transport returns
// the context error. After exhausting retries the last 429 response is
// returned so the caller can inspect it.
type RetryTransport struct {
	Base       http.RoundTripper
	MaxRetries int
}

// NewRetryClient wraps client's transport with 429 retry behavior.
func NewRetryClient(client *http.Client, maxRetries int) *http.Client {
	wrapped := *client
	wrapped.Transport = &RetryTransport{Base: client.Transport, MaxRetries: maxRetries}
	return &wrapped
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	maxRetries := t.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		resp, err := base.RoundTrip(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries or unreplayable request — return the 429 as-is.
		if attempt >= maxRetries || req.Body != nil {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
