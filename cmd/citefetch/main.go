// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citefetch CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citefetch/internal/httputil"
	"github.com/pdiddy/citefetch/internal/source"
	"github.com/pdiddy/citefetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "citefetch/0.1"
	defaultMaxResults = 20
	defaultBackend    = string(types.BackendDBLP)
)

// rootCmd is the base command for the citefetch CLI.
var rootCmd = &cobra.Command{
	Use:   "citefetch",
	Short: "Look up papers and emit BibTeX entries",
	Long: `citefetch resolves free-text title/author queries against a bibliographic
backend (the DBLP XML API or a scholar search page), normalizes the results
into one record shape, and renders BibTeX entries for the records you select.

Use "cite" for an interactive single-query session and "batch" to resolve a
whole paper list in one run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citefetch.yaml or ~/.config/citefetch/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "bibliographic backend: dblp or scholar (default dblp)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.PersistentFlags().Int("max-results", 0, "maximum number of hits to request (default 20)")
	rootCmd.PersistentFlags().Bool("retry", false, "retry rate-limited requests with backoff")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citefetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citefetch"))
		}
	}

	viper.SetEnvPrefix("CITEFETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// fetchConfig resolves the session configuration from flags with config-file
// fallback. The resolved value is passed explicitly into the pipeline; no
// stage below the CLI touches viper.
func fetchConfig(cmd *cobra.Command) (types.FetchConfig, error) {
	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("backend")
	}
	if backend == "" {
		backend = defaultBackend
	}
	kind, err := types.ParseBackendKind(backend)
	if err != nil {
		return types.FetchConfig{}, err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("max_results")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		Backend:    kind,
		MaxResults: maxResults,
	}, nil
}

// newClient builds the HTTP client for a session. Retry policy is a caller
// decision, so it attaches here and never inside the fetch path.
func newClient(cmd *cobra.Command, cfg types.FetchConfig) *source.Client {
	client := &http.Client{Timeout: cfg.Timeout}
	if retry, _ := cmd.Flags().GetBool("retry"); retry {
		client = httputil.NewRetryClient(client, 0)
	}
	return &source.Client{HTTP: client}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
