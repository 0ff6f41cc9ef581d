// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse extracts raw publication records from backend payloads.
// Each backend has its own strategy: the DBLP API returns a structured XML
// tree, the scholar page is scraped with CSS selectors. Both strategies are
// pure: the same payload always yields the same record sequence, in source
// order.
package parse

import (
	"errors"
	"fmt"

	"github.com/pdiddy/citefetch/internal/source"
	"github.com/pdiddy/citefetch/pkg/types"
)

// ErrMalformedPayload marks a structured payload that cannot be parsed at
// all. It is fatal to the session. Scrape payloads never produce it: missing
// nodes in HTML simply yield zero records.
var ErrMalformedPayload = errors.New("malformed payload")

// Parse extracts raw records from a payload using the strategy matching its
// backend kind. Zero usable hits is an empty slice, not an error.
func Parse(p source.Payload) ([]types.RawRecord, error) {
	switch p.Kind {
	case types.BackendDBLP:
		return parseDBLP(p.Body)
	case types.BackendScholar:
		return parseScholar(p.Body)
	}
	return nil, fmt.Errorf("no parse strategy for backend %q", p.Kind)
}
