// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences fetch, parse, normalize, and rank into one
// search session, then resolves an externally supplied selection back to
// canonical records and renders citation entries for it. A Session holds no
// cross-session state; every Run starts empty.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/citefetch/internal/bibtex"
	"github.com/pdiddy/citefetch/internal/normalize"
	"github.com/pdiddy/citefetch/internal/parse"
	"github.com/pdiddy/citefetch/internal/rank"
	"github.com/pdiddy/citefetch/internal/source"
	"github.com/pdiddy/citefetch/pkg/types"
)

// Session is one query's worth of pipeline state. The DisplayItem list and
// the Publication slice it references stay fixed between Run and Resolve;
// nothing re-ranks a live session.
type Session struct {
	Client *source.Client
	Cfg    types.FetchConfig

	pubs  []types.Publication
	items []types.DisplayItem
}

// NewSession creates a session bound to one backend configuration. The
// backend kind arrives through cfg from the caller; the pipeline never reads
// it from ambient state.
func NewSession(client *source.Client, cfg types.FetchConfig) *Session {
	return &Session{Client: client, Cfg: cfg}
}

// Run executes fetch, parse, normalize, and rank for one query and returns
// the DisplayItem list for the selection UI. An empty list with a nil error
// means no usable results; fetch and structured-parse failures abort the
// session.
func (s *Session) Run(ctx context.Context, query string) ([]types.DisplayItem, error) {
	s.pubs, s.items = nil, nil

	payload, err := s.Client.Fetch(ctx, query, s.Cfg)
	if err != nil {
		return nil, err
	}

	raw, err := parse.Parse(payload)
	if err != nil {
		return nil, err
	}

	s.pubs = normalize.Normalize(raw)
	s.items = rank.Rank(s.pubs)
	return s.items, nil
}

// Items returns the DisplayItem list from the last Run.
func (s *Session) Items() []types.DisplayItem {
	return s.items
}

// Publications returns the canonical records from the last Run, in
// normalization order. Refs on DisplayItems index into this slice.
func (s *Session) Publications() []types.Publication {
	return s.pubs
}

// Resolve maps selection refs back to their Publications, preserving
// selection order. A ref that does not identify a record in this session is
// an error; selections never silently skip.
func (s *Session) Resolve(refs []int) ([]types.Publication, error) {
	pubs := make([]types.Publication, 0, len(refs))
	for _, ref := range refs {
		if ref < 0 || ref >= len(s.pubs) {
			return nil, fmt.Errorf("selection ref %d does not resolve to a record", ref)
		}
		pubs = append(pubs, s.pubs[ref])
	}
	return pubs, nil
}

// Render resolves refs and concatenates one citation entry per selection,
// in selection order. An empty selection renders to an empty string.
func (s *Session) Render(refs []int) (string, error) {
	pubs, err := s.Resolve(refs)
	if err != nil {
		return "", err
	}

	var out string
	for _, p := range pubs {
		out += bibtex.Entry(p)
	}
	return out, nil
}
