package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citefetch/internal/normalize"
	"github.com/pdiddy/citefetch/internal/rank"
	"github.com/pdiddy/citefetch/pkg/types"
)

// SessionFile is the on-disk representation of a search session's query and
// canonical records. A saved session can be reloaded and re-rendered without
// re-querying the backend.
type SessionFile struct {
	Query   string              `yaml:"query"`
	Backend types.BackendKind   `yaml:"backend"`
	Results []types.Publication `yaml:"results"`
	Summary SessionSummary      `yaml:"summary"`
}

// SessionSummary stores result statistics and a timestamp.
type SessionSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteSessionFile saves a session's query and records to a YAML file.
func WriteSessionFile(path, query string, s *Session) error {
	sf := SessionFile{
		Query:   query,
		Backend: s.Cfg.Backend,
		Results: s.Publications(),
		Summary: SessionSummary{
			Total:     len(s.Publications()),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling session file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSessionFile loads a previously saved session from disk and rebuilds a
// Session over its records, ready for Resolve and Render.
func ReadSessionFile(path string, cfg types.FetchConfig) (*SessionFile, *Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading session file: %w", err)
	}
	var sf SessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("parsing session file: %w", err)
	}

	// Saved records may have been hand-edited; re-check the canonical
	// invariants before anything ranks or renders them.
	for i, p := range sf.Results {
		if !normalize.Valid(p) {
			return nil, nil, fmt.Errorf("session file %s: record %d (%q) is missing a required field", path, i+1, p.Title)
		}
	}

	s := NewSession(nil, cfg)
	s.pubs = sf.Results
	s.items = rank.Rank(s.pubs)
	return &sf, s, nil
}

// PaperList is the batch-mode input file: a list of papers to resolve.
type PaperList struct {
	Papers []PaperRef `yaml:"papers"`
}

// ReadPaperList loads a batch paper list from a YAML file.
func ReadPaperList(path string) ([]PaperRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading paper list: %w", err)
	}
	var pl PaperList
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("parsing paper list: %w", err)
	}
	if len(pl.Papers) == 0 {
		return nil, fmt.Errorf("paper list %s contains no papers", path)
	}
	return pl.Papers, nil
}
