// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders canonical Publications for a flat selection list.
// Publications are partitioned into three fixed categories, sorted inside
// each category, and projected into DisplayItems with display-only
// truncation. The records themselves are never modified.
package rank

import (
	"sort"
	"strings"

	"github.com/pdiddy/citefetch/internal/normalize"
	"github.com/pdiddy/citefetch/pkg/types"
)

// Category headings, emitted in this fixed order.
const (
	CategoryConference = "Conference and Workshop Papers"
	CategoryJournal    = "Journal Articles"
	CategoryOther      = "Other Articles"
)

// Display limits. When title+venue exceed combinedLimit, the label shows the
// first titleLimit characters of the title plus an ellipsis and the venue is
// cut to venueLimit. Author lines longer than authorLimit abbreviate all but
// the first name.
const (
	combinedLimit = 75
	titleLimit    = 60
	venueLimit    = 15
	authorLimit   = 80
)

// Category maps a backend-supplied type tag to one of the three fixed
// headings, by case-insensitive substring. An empty or unrecognized tag is
// "Other Articles".
func Category(typeTag string) string {
	tag := strings.ToLower(typeTag)
	switch {
	case strings.Contains(tag, "conference"):
		return CategoryConference
	case strings.Contains(tag, "journal"):
		return CategoryJournal
	}
	return CategoryOther
}

// Rank partitions publications by category, sorts each bucket by year
// descending then title ascending, and returns the flat DisplayItem list
// with a separator heading before each non-empty category. Title ordering is
// case-sensitive byte-wise comparison, so the output is deterministic for
// identical input. Each selectable item carries the Ref of its Publication
// in pubs; selection resolution goes through Ref, not list position.
func Rank(pubs []types.Publication) []types.DisplayItem {
	buckets := map[string][]int{}
	for i, p := range pubs {
		c := Category(p.Type)
		buckets[c] = append(buckets[c], i)
	}

	var items []types.DisplayItem
	for _, category := range []string{CategoryConference, CategoryJournal, CategoryOther} {
		refs := buckets[category]
		if len(refs) == 0 {
			continue
		}

		sort.Slice(refs, func(a, b int) bool {
			pa, pb := pubs[refs[a]], pubs[refs[b]]
			if pa.Year != pb.Year {
				return pa.Year > pb.Year
			}
			return pa.Title < pb.Title
		})

		items = append(items, types.DisplayItem{
			Label:     category,
			Separator: true,
			Ref:       -1,
		})
		for _, ref := range refs {
			items = append(items, render(pubs[ref], ref))
		}
	}
	return items
}

// render projects one Publication into a DisplayItem.
func render(p types.Publication, ref int) types.DisplayItem {
	title, venue := p.Title, p.Venue
	if len(title)+len(venue) > combinedLimit {
		title = truncateRunes(title, titleLimit) + "..."
		venue = truncateRunes(venue, venueLimit)
	}

	detail := p.Year
	if venue != "" {
		detail = venue + " " + p.Year
	}

	return types.DisplayItem{
		Label:       title,
		Description: normalize.AbbreviateAuthors(p.Authors, authorLimit),
		Detail:      detail,
		Ref:         ref,
	}
}

// truncateRunes cuts s to at most max characters, never splitting a
// multi-byte rune.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
