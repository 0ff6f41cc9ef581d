package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citefetch/internal/pipeline"
	"github.com/pdiddy/citefetch/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <paper-list.yaml>",
	Short: "Resolve a list of papers and emit one BibTeX entry per paper",
	Long: `Batch reads a YAML paper list and resolves each paper sequentially,
emitting the best-ranked match as a BibTeX entry. Papers that cannot be
resolved degrade to a placeholder comment line; they never abort the rest
of the batch.

The paper list has the form:

  papers:
    - title: Attention Is All You Need
      author: Vaswani
    - title: Deep Residual Learning for Image Recognition`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("output", "", "append entries to this file instead of stdout")
	batchCmd.Flags().Float64("rate", 0, "maximum requests per second (default 1)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := fetchConfig(cmd)
	if err != nil {
		return err
	}

	rps, _ := cmd.Flags().GetFloat64("rate")
	if rps == 0 {
		rps = viper.GetFloat64("requests_per_second")
	}
	bcfg := types.BatchConfig{
		FetchConfig:       cfg,
		RequestsPerSecond: rps,
	}

	papers, err := pipeline.ReadPaperList(args[0])
	if err != nil {
		return err
	}

	result, err := pipeline.Lookup(cmd.Context(), newClient(cmd, cfg), papers, bcfg, os.Stderr)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, result.Output()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d resolved, %d missed\n", result.Resolved, result.Missed)
	return nil
}
