package types

import (
	"fmt"
	"time"
)

// BackendKind selects which bibliographic source a session targets. It is
// resolved by the CLI from configuration and passed explicitly into the
// pipeline; no stage reads it from ambient state.
type BackendKind string

const (
	// BackendDBLP targets the DBLP publication search API (XML).
	BackendDBLP BackendKind = "dblp"

	// BackendScholar targets the scholar search-engine results page (HTML).
	BackendScholar BackendKind = "scholar"
)

// ParseBackendKind validates a backend name from flags or config.
func ParseBackendKind(s string) (BackendKind, error) {
	switch BackendKind(s) {
	case BackendDBLP, BackendScholar:
		return BackendKind(s), nil
	}
	return "", fmt.Errorf("unknown backend %q (expected %q or %q)", s, BackendDBLP, BackendScholar)
}

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citefetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for one search session.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the bibliographic source for this session.
	Backend BackendKind `json:"backend" yaml:"backend"`

	// MaxResults is the maximum number of hits requested from the backend
	// (default 20). Only the structured backend honors it server-side.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// BatchConfig holds settings for multi-paper batch lookups.
type BatchConfig struct {
	FetchConfig `yaml:",inline"`

	// RequestsPerSecond caps the fetch rate across consecutive papers
	// (default 1). Lookups wait on the limiter between papers.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}
