// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citefetch/internal/bibtex"
	"github.com/pdiddy/citefetch/internal/normalize"
	"github.com/pdiddy/citefetch/internal/parse"
	"github.com/pdiddy/citefetch/internal/rank"
	"github.com/pdiddy/citefetch/internal/source"
	"github.com/pdiddy/citefetch/pkg/types"
)

// PaperRef identifies one paper to look up in batch mode.
type PaperRef struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author,omitempty"`
}

// Query joins title and author into one free-text query.
func (p PaperRef) Query() string {
	return strings.TrimSpace(strings.TrimSpace(p.Title) + " " + strings.TrimSpace(p.Author))
}

// BatchResult summarizes a batch lookup run.
type BatchResult struct {
	Resolved int
	Missed   int

	// Entries holds one block per input paper, in input order: a citation
	// entry for resolved papers, a placeholder comment for the rest.
	Entries []string
}

// Output concatenates all entry blocks.
func (r BatchResult) Output() string {
	return strings.Join(r.Entries, "")
}

// Lookup resolves a list of papers sequentially, emitting the best-ranked
// match for each as a citation entry. Papers are fetched one at a time so
// progress can be reported per paper; the limiter paces consecutive
// requests. A paper that cannot be fetched, parsed, or matched degrades to a
// placeholder comment and never aborts its siblings. Per-paper status goes
// to w.
func Lookup(ctx context.Context, client *source.Client, papers []PaperRef, cfg types.BatchConfig, w io.Writer) (BatchResult, error) {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), 1)

	var result BatchResult
	for _, paper := range papers {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		entry, err := lookupOne(ctx, client, paper, cfg.FetchConfig)
		if err != nil {
			fmt.Fprintf(w, "no match: %s (%v)\n", paper.Title, err)
			result.Entries = append(result.Entries, placeholder(paper))
			result.Missed++
			continue
		}

		fmt.Fprintf(w, "resolved: %s\n", paper.Title)
		result.Entries = append(result.Entries, entry)
		result.Resolved++
	}
	return result, nil
}

// lookupOne runs the fetch-parse-normalize-rank pipeline for one paper and
// renders the top-ranked match.
func lookupOne(ctx context.Context, client *source.Client, paper PaperRef, cfg types.FetchConfig) (string, error) {
	payload, err := client.Fetch(ctx, paper.Query(), cfg)
	if err != nil {
		return "", err
	}

	raw, err := parse.Parse(payload)
	if err != nil {
		return "", err
	}

	pubs := normalize.Normalize(raw)
	for _, item := range rank.Rank(pubs) {
		if item.Separator {
			continue
		}
		return bibtex.Entry(pubs[item.Ref]), nil
	}
	return "", fmt.Errorf("no usable results")
}

// placeholder is the comment block emitted for an unresolvable paper.
func placeholder(p PaperRef) string {
	return fmt.Sprintf("%% citefetch: no match for %q\n\n", p.Title)
}
