// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex serializes canonical Publications into citation entries.
// Synthesis is pure and total over any Publication satisfying the pipeline
// invariants: same record in, byte-identical block out.
package bibtex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/citefetch/pkg/types"
)

// Key derives the citation key: the lowercased surname of the first author
// with the year appended, no separator ("vaswani2017"). Normalization has
// already stripped any numeric disambiguation suffix, so the last token of
// the first author is a surname.
func Key(p types.Publication) string {
	fields := strings.Fields(p.Authors[0])
	surname := fields[len(fields)-1]
	return strings.ToLower(surname) + p.Year
}

// Entry renders one citation block terminated by a blank line. Journal
// publications open with @article, everything else with @inproceedings.
// Field order is fixed; venue, pages, and doi are omitted when empty.
func Entry(p types.Publication) string {
	entryType := "inproceedings"
	if strings.Contains(strings.ToLower(p.Type), "journal") {
		entryType = "article"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, Key(p))
	fmt.Fprintf(&b, "  title = {%s},\n", p.Title)
	fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(p.Authors, " and "))
	fmt.Fprintf(&b, "  year = {%s},\n", p.Year)
	if p.Venue != "" {
		fmt.Fprintf(&b, "  venue = {%s},\n", p.Venue)
	}
	if p.Pages != "" {
		fmt.Fprintf(&b, "  pages = {%s},\n", p.Pages)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", p.DOI)
	}
	b.WriteString("}\n\n")
	return b.String()
}
