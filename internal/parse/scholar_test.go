// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/pdiddy/citefetch/pkg/types"
)

const scholarFixture = `<html><body>
<div class="gs_r gs_or gs_scl">
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="https://example.org/paper1">Gradient-Based Learning Applied to Document Recognition</a></h3>
    <div class="gs_a">J. Smith, A. Lee - ICML - 2020 - example.org</div>
    <div class="gs_fl"><a href="/scholar?cites=5843442479030720738">Cited by 412</a></div>
  </div>
</div>
<div class="gs_r gs_or gs_scl">
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="https://example.org/paper2">An Undated Manuscript</a></h3>
    <div class="gs_a">B. Jones - somewhere</div>
  </div>
</div>
<div class="gs_r gs_or gs_scl">
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="https://example.org/paper3">A Two-Part Byline</a></h3>
    <div class="gs_a">C. Brown - 2019</div>
  </div>
</div>
</body></html>`

func TestParseScholar(t *testing.T) {
	records, err := Parse(payload(types.BackendScholar, scholarFixture))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (yearless block skipped)", len(records))
	}

	first := records[0]
	if first.Title != "Gradient-Based Learning Applied to Document Recognition" {
		t.Errorf("title = %q", first.Title)
	}
	// The parser keeps byline segments untrimmed; cleanup happens in
	// normalization.
	if len(first.Authors) != 2 || first.Authors[0] != "J. Smith" || first.Authors[1] != " A. Lee " {
		t.Errorf("authors = %q, want pre-trim segments", first.Authors)
	}
	if first.Venue != " ICML " {
		t.Errorf("venue = %q, want pre-trim segment", first.Venue)
	}
	if first.Year != "2020" {
		t.Errorf("year = %q, want 2020", first.Year)
	}
	if first.DOI != "https://scholar.google.com/scholar?cites=5843442479030720738" {
		t.Errorf("doi ref = %q, want absolute cited-by link", first.DOI)
	}

	second := records[1]
	if second.Title != "A Two-Part Byline" || second.Venue != "" || second.Year != "2019" {
		t.Errorf("two-part byline parsed as %+v, want empty venue", second)
	}
	if second.DOI != "" {
		t.Errorf("doi ref = %q, want empty without cited-by link", second.DOI)
	}
}

func TestParseScholarNoBlocks(t *testing.T) {
	bodies := []string{
		"",
		"<html><body><p>No results match your search.</p></body></html>",
		"<div class><<< not really html",
	}
	for _, body := range bodies {
		records, err := Parse(payload(types.BackendScholar, body))
		if err != nil {
			t.Errorf("Parse(%.20q) error = %v, scrape strategy never errors", body, err)
		}
		if len(records) != 0 {
			t.Errorf("Parse(%.20q) = %d records, want 0", body, len(records))
		}
	}
}

func TestParseScholarEmptyTitleSkipped(t *testing.T) {
	body := `<div class="gs_ri"><h3 class="gs_rt"></h3><div class="gs_a">X. Yu - V - 2021</div></div>`
	records, err := Parse(payload(types.BackendScholar, body))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len(records) = %d, want 0 for titleless block", len(records))
	}
}
