// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw parser records into canonical Publications.
// It owns author-name cleanup and the required-field policy: records missing
// a title, an author, or a four-digit year are dropped here, so every
// Publication leaving this package satisfies the pipeline invariants.
package normalize

import (
	"strings"

	"github.com/pdiddy/citefetch/pkg/types"
)

// Normalize cleans each raw record and drops the ones failing the canonical
// invariants. Dropping is silent: a defective record is a property of the
// source data, not an error. Record order is preserved.
func Normalize(raw []types.RawRecord) []types.Publication {
	var pubs []types.Publication
	for _, r := range raw {
		p, ok := normalizeRecord(r)
		if !ok {
			continue
		}
		pubs = append(pubs, p)
	}
	return pubs
}

func normalizeRecord(r types.RawRecord) (types.Publication, bool) {
	p := types.Publication{
		Title: strings.TrimSpace(r.Title),
		Year:  strings.TrimSpace(r.Year),
		Venue: strings.TrimSpace(r.Venue),
		Pages: strings.TrimSpace(r.Pages),
		DOI:   strings.TrimSpace(r.DOI),
		Type:  strings.TrimSpace(r.Type),
	}

	for _, a := range r.Authors {
		name := CleanAuthor(a)
		if name == "" {
			continue
		}
		p.Authors = append(p.Authors, name)
	}

	if !Valid(p) {
		return types.Publication{}, false
	}
	return p, true
}

// Valid reports whether a Publication satisfies the canonical invariants:
// non-empty title, at least one author, four-digit year. Records built
// outside this package (for example loaded from a saved session file) must
// pass this gate before entering the ranker.
func Valid(p types.Publication) bool {
	return p.Title != "" && len(p.Authors) >= 1 && validYear(p.Year)
}

// CleanAuthor trims an author name and strips a trailing disambiguation
// token when the final whitespace-separated token is purely numeric
// ("Wei Wang 0017" becomes "Wei Wang"). Single-token names pass through
// unchanged; stripping is idempotent because the surviving last token is a
// name, not a number.
func CleanAuthor(name string) string {
	fields := strings.Fields(name)
	if len(fields) > 1 && isNumeric(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// AbbreviateAuthors renders an author list for display. When the plain
// ", "-joined list exceeds maxLen, every author after the first collapses to
// "initial. last-name" form. The underlying Publication is never touched;
// this is a display-time projection only.
func AbbreviateAuthors(authors []string, maxLen int) string {
	joined := strings.Join(authors, ", ")
	if len(joined) <= maxLen {
		return joined
	}

	short := make([]string, len(authors))
	for i, a := range authors {
		if i == 0 {
			short[i] = a
			continue
		}
		short[i] = abbreviate(a)
	}
	return strings.Join(short, ", ")
}

// abbreviate reduces "Noam Shazeer" to "N. Shazeer". Single-token names are
// returned as-is.
func abbreviate(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	initial := []rune(fields[0])[:1]
	return string(initial) + ". " + fields[len(fields)-1]
}

func validYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
