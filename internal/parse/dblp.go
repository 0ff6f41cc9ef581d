// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pdiddy/citefetch/pkg/types"
)

// DBLP publication search XML structures. Author elements carry the display
// name as character data; homonymous authors get a numeric disambiguation
// suffix appended to the name ("Wei Wang 0017"). The suffix is kept here and
// stripped during normalization.
type dblpResult struct {
	Hits dblpHits `xml:"hits"`
}

type dblpHits struct {
	Total int       `xml:"total,attr"`
	Hits  []dblpHit `xml:"hit"`
}

type dblpHit struct {
	Info dblpInfo `xml:"info"`
}

type dblpInfo struct {
	Title   string       `xml:"title"`
	Authors []dblpAuthor `xml:"authors>author"`
	Year    string       `xml:"year"`
	Venue   string       `xml:"venue"`
	Pages   string       `xml:"pages"`
	DOI     string       `xml:"doi"`
	Type    string       `xml:"type"`
}

type dblpAuthor struct {
	PID  string `xml:"pid,attr"`
	Name string `xml:",chardata"`
}

// parseDBLP decodes the DBLP search response. A zero hit count or an absent
// hit list yields an empty slice; a hit missing a required field (title,
// authors, year) is skipped. Only an XML decode failure is an error.
func parseDBLP(body string) ([]types.RawRecord, error) {
	var result dblpResult
	if err := xml.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("%w: decoding dblp response: %v", ErrMalformedPayload, err)
	}

	// The hit list itself is the emptiness test; the total attribute is
	// advisory and may be absent from otherwise well-formed payloads.
	if len(result.Hits.Hits) == 0 {
		return nil, nil
	}

	var records []types.RawRecord
	for _, hit := range result.Hits.Hits {
		info := hit.Info
		if strings.TrimSpace(info.Title) == "" || len(info.Authors) == 0 || info.Year == "" {
			continue
		}

		r := types.RawRecord{
			Title: info.Title,
			Year:  info.Year,
			Venue: info.Venue,
			Pages: info.Pages,
			DOI:   info.DOI,
			Type:  info.Type,
		}
		for _, a := range info.Authors {
			if a.Name == "" {
				continue
			}
			r.Authors = append(r.Authors, a.Name)
		}
		if len(r.Authors) == 0 {
			continue
		}

		records = append(records, r)
	}
	return records, nil
}
