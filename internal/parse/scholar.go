// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/citefetch/pkg/types"
)

// reYear matches the first run of four consecutive digits in a result byline.
var reYear = regexp.MustCompile(`[0-9]{4}`)

// parseScholar scrapes result blocks from a scholar search page. The byline
// under each title has the form "authors - venue - year - host"; it is split
// on the dash and the parts are kept untrimmed, since whitespace cleanup is
// normalization's job. Blocks missing a title, authors, or a four-digit year
// are dropped silently. A page with no recognizable blocks yields zero
// records, never an error.
func parseScholar(body string) ([]types.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		// goquery's tokenizer recovers from almost anything; treat a hard
		// failure the same as a page with no result blocks.
		return nil, nil
	}

	var records []types.RawRecord
	doc.Find("div.gs_ri").Each(func(_ int, s *goquery.Selection) {
		title := s.Find("h3.gs_rt a").First().Text()
		if title == "" {
			// Title may sit outside an anchor for citation-only entries.
			title = strings.TrimSpace(s.Find("h3.gs_rt").First().Text())
		}

		byline := s.Find("div.gs_a").First().Text()
		year := reYear.FindString(byline)

		parts := strings.Split(byline, "-")
		var authors []string
		if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
			authors = strings.Split(parts[0], ",")
		}
		venue := ""
		if len(parts) >= 3 {
			venue = parts[1]
		}

		if strings.TrimSpace(title) == "" || len(authors) == 0 || year == "" {
			return
		}

		r := types.RawRecord{
			Title:   title,
			Authors: authors,
			Year:    year,
			Venue:   venue,
		}

		// The cited-by link is the closest thing the page offers to a
		// stable reference.
		s.Find("div.gs_fl a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, ok := a.Attr("href")
			if !ok || !strings.Contains(href, "cites=") {
				return true
			}
			if strings.HasPrefix(href, "/") {
				href = "https://scholar.google.com" + href
			}
			r.DOI = href
			return false
		})

		records = append(records, r)
	})
	return records, nil
}
