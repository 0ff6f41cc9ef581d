package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/citefetch/pkg/types"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		n       int
		want    []int
		wantErr bool
	}{
		{"single", "2", 5, []int{2}, false},
		{"list", "1,3", 5, []int{1, 3}, false},
		{"range", "2-4", 5, []int{2, 3, 4}, false},
		{"mixed keeps order", "3,1-2", 5, []int{3, 1, 2}, false},
		{"all", "all", 3, []int{1, 2, 3}, false},
		{"all case-insensitive", "ALL", 2, []int{1, 2}, false},
		{"out of range", "6", 5, nil, true},
		{"zero", "0", 5, nil, true},
		{"backwards range", "4-2", 5, nil, true},
		{"garbage", "x", 5, nil, true},
		{"empty", "", 5, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(tt.expr, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSelection(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSelection(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestPrintItems(t *testing.T) {
	items := []types.DisplayItem{
		{Label: "Conference and Workshop Papers", Separator: true, Ref: -1},
		{Label: "Paper A", Description: "A. One", Detail: "ICML 2020", Ref: 4},
		{Label: "Other Articles", Separator: true, Ref: -1},
		{Label: "Paper B", Ref: 1},
	}

	var buf bytes.Buffer
	refs := printItems(&buf, items)

	if !reflect.DeepEqual(refs, []int{4, 1}) {
		t.Errorf("refs = %v, want item refs in display order", refs)
	}

	out := buf.String()
	for _, want := range []string{"Conference and Workshop Papers", "[1] Paper A", "A. One", "ICML 2020", "[2] Paper B"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[3]") {
		t.Errorf("separators must not be numbered:\n%s", out)
	}
}
