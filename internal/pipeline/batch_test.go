// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/citefetch/pkg/types"
)

func batchCfg() types.BatchConfig {
	return types.BatchConfig{
		FetchConfig:       testFetchCfg(),
		RequestsPerSecond: 1000, // keep the limiter out of the test's way
	}
}

func TestLookupBatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		switch {
		case strings.Contains(q, "unreachable"):
			w.WriteHeader(http.StatusServiceUnavailable)
		case strings.Contains(q, "unknown"):
			w.Write([]byte(`<result><hits total="0"></hits></result>`))
		default:
			w.Write([]byte(dblpResponse))
		}
	}))
	defer ts.Close()

	papers := []PaperRef{
		{Title: "Attention Is All You Need", Author: "Vaswani"},
		{Title: "totally unknown paper"},
		{Title: "unreachable paper"},
	}

	var progress bytes.Buffer
	result, err := Lookup(context.Background(), testClient(ts), papers, batchCfg(), &progress)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if result.Resolved != 1 || result.Missed != 2 {
		t.Fatalf("resolved/missed = %d/%d, want 1/2", result.Resolved, result.Missed)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("len(entries) = %d, want one block per paper", len(result.Entries))
	}

	if !strings.HasPrefix(result.Entries[0], "@inproceedings{vaswani2017,") {
		t.Errorf("entries[0] = %q, want the top-ranked match", result.Entries[0])
	}
	for i := 1; i < 3; i++ {
		if !strings.HasPrefix(result.Entries[i], "% citefetch: no match for ") {
			t.Errorf("entries[%d] = %q, want placeholder comment", i, result.Entries[i])
		}
	}

	out := result.Output()
	if strings.Index(out, "vaswani2017") > strings.Index(out, "unknown paper") {
		t.Error("output does not preserve input order")
	}

	if !strings.Contains(progress.String(), "resolved: Attention Is All You Need") {
		t.Errorf("progress = %q, want per-paper status lines", progress.String())
	}
	if !strings.Contains(progress.String(), "no match: unreachable paper") {
		t.Errorf("progress = %q, want failure status line", progress.String())
	}
}

func TestLookupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := batchCfg()
	cfg.RequestsPerSecond = 0.001 // force a limiter wait so cancellation lands there

	papers := []PaperRef{{Title: "a"}, {Title: "b"}}
	_, err := Lookup(ctx, nil, papers, cfg, os.Stderr)
	if err == nil {
		t.Fatal("Lookup() with cancelled context should fail")
	}
}

func TestPaperRefQuery(t *testing.T) {
	tests := []struct {
		name string
		ref  PaperRef
		want string
	}{
		{"title only", PaperRef{Title: "Attention Is All You Need"}, "Attention Is All You Need"},
		{"title and author", PaperRef{Title: "Attention", Author: "Vaswani"}, "Attention Vaswani"},
		{"untrimmed", PaperRef{Title: " Attention ", Author: " Vaswani "}, "Attention Vaswani"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Query(); got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadPaperList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.yaml")
	content := `papers:
  - title: Attention Is All You Need
    author: Vaswani
  - title: Long Short-Term Memory
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	papers, err := ReadPaperList(path)
	if err != nil {
		t.Fatalf("ReadPaperList() error = %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}
	if papers[0].Author != "Vaswani" || papers[1].Title != "Long Short-Term Memory" {
		t.Errorf("papers = %+v", papers)
	}
}

func TestReadPaperListEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.yaml")
	if err := os.WriteFile(path, []byte("papers: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPaperList(path); err == nil {
		t.Fatal("ReadPaperList() on empty list should fail")
	}
}
