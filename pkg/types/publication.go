// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citefetch pipeline.
package types

// RawRecord is the tagged intermediate form a payload parser produces for one
// search hit, before normalization. Each backend parser fills the fields it
// can read; required-field validation happens at the parser boundary and in
// normalization, never downstream.
type RawRecord struct {
	// Title is the hit title exactly as the source provided it.
	Title string

	// Authors lists author display names in source order. Structured sources
	// may attach a numeric disambiguation suffix ("Ashish Vaswani 0001");
	// the suffix survives parsing and is stripped during normalization.
	Authors []string

	// Year is the publication year string, expected to be four digits.
	Year string

	// Venue is the conference or journal name, empty when unknown.
	Venue string

	// Pages is the page range, empty when unknown.
	Pages string

	// DOI is a DOI or DOI-like reference URL, empty when unknown.
	DOI string

	// Type is the backend-supplied category label (e.g. "Journal Articles"),
	// empty when the backend provides none.
	Type string
}

// Publication is the canonical record produced by normalization. Every
// Publication satisfies: Title non-empty, at least one author, Year a
// four-digit string. Records failing these are dropped during normalization.
type Publication struct {
	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`
	Year    string   `json:"year" yaml:"year"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	Pages   string   `json:"pages,omitempty" yaml:"pages,omitempty"`
	DOI     string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
}

// DisplayItem is the session-scoped projection of a Publication for a flat
// selection list. Items are never persisted; they exist for one search
// session only.
type DisplayItem struct {
	// Label is the rendered title, possibly truncated for display.
	Label string

	// Description is the rendered author line, possibly abbreviated.
	Description string

	// Detail is the rendered venue and year line.
	Detail string

	// Separator marks a non-selectable category heading.
	Separator bool

	// Ref is a stable identifier resolving the item back to its Publication.
	// It is assigned at creation time; selection resolution uses Ref, never
	// the item's position in the list. Separator items carry Ref -1.
	Ref int
}
