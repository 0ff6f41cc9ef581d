package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citefetch/internal/pipeline"
	"github.com/pdiddy/citefetch/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite [query...]",
	Short: "Search for a paper and emit BibTeX for the selected results",
	Long: `Cite runs one search session: it queries the configured backend with the
free-text query, shows the results grouped by publication category, and
renders a BibTeX entry for each selected result.

Selection is interactive by default; pass --select "1,3-5" or --select all
to choose non-interactively, or --first to take the top-ranked result. An
empty selection ends the session without output.`,
	RunE: runCite,
}

func init() {
	citeCmd.Flags().String("select", "", `non-interactive selection, e.g. "1,3-5" or "all"`)
	citeCmd.Flags().Bool("first", false, "select the top-ranked result")
	citeCmd.Flags().String("output", "", "append entries to this file instead of stdout")
	citeCmd.Flags().String("save", "", "save the session's records to a YAML file")
	citeCmd.Flags().String("load", "", "re-open a saved session instead of querying")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	cfg, err := fetchConfig(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	loadPath, _ := cmd.Flags().GetString("load")

	var sess *pipeline.Session
	var items []types.DisplayItem
	if loadPath != "" {
		var sf *pipeline.SessionFile
		sf, sess, err = pipeline.ReadSessionFile(loadPath, cfg)
		if err != nil {
			return err
		}
		query = sf.Query
		items = sess.Items()
	} else {
		if query == "" {
			return fmt.Errorf("provide a title/author query, e.g.: citefetch cite attention is all you need")
		}
		sess = pipeline.NewSession(newClient(cmd, cfg), cfg)
		items, err = sess.Run(cmd.Context(), query)
		if err != nil {
			return err
		}
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" && loadPath == "" {
		if err := pipeline.WriteSessionFile(savePath, query, sess); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved session to %s\n", savePath)
	}

	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No results found.")
		return nil
	}

	// The picker goes to stderr so stdout carries only citation entries.
	refs := printItems(os.Stderr, items)

	selected, err := selectRefs(cmd, refs)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return nil
	}

	text, err := sess.Render(selected)
	if err != nil {
		return err
	}
	return writeOutput(cmd, text)
}

// printItems renders the grouped list and returns the ref for each numbered
// entry, in display order.
func printItems(w io.Writer, items []types.DisplayItem) []int {
	var refs []int
	for _, item := range items {
		if item.Separator {
			fmt.Fprintf(w, "%s\n", item.Label)
			continue
		}
		refs = append(refs, item.Ref)
		fmt.Fprintf(w, "  [%d] %s\n", len(refs), item.Label)
		if item.Description != "" {
			fmt.Fprintf(w, "      %s\n", item.Description)
		}
		if item.Detail != "" {
			fmt.Fprintf(w, "      %s\n", item.Detail)
		}
	}
	return refs
}

// selectRefs determines the selected refs from flags, or interactively when
// neither --first nor --select is given.
func selectRefs(cmd *cobra.Command, refs []int) ([]int, error) {
	if first, _ := cmd.Flags().GetBool("first"); first {
		return refs[:1], nil
	}

	expr, _ := cmd.Flags().GetString("select")
	if expr == "" {
		fmt.Fprintf(os.Stderr, "Select entries (e.g. 1,3-5 or all, empty to cancel): ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		expr = strings.TrimSpace(line)
		if expr == "" {
			return nil, nil
		}
	}

	nums, err := parseSelection(expr, len(refs))
	if err != nil {
		return nil, err
	}
	selected := make([]int, 0, len(nums))
	for _, n := range nums {
		selected = append(selected, refs[n-1])
	}
	return selected, nil
}

// parseSelection expands a selection expression ("all", "2", "1,3-5") into
// 1-based entry numbers, preserving the order given.
func parseSelection(expr string, n int) ([]int, error) {
	if strings.EqualFold(strings.TrimSpace(expr), "all") {
		nums := make([]int, n)
		for i := range nums {
			nums[i] = i + 1
		}
		return nums, nil
	}

	var nums []int
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi := part, part
		if idx := strings.Index(part, "-"); idx >= 0 {
			lo, hi = strings.TrimSpace(part[:idx]), strings.TrimSpace(part[idx+1:])
		}
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		if from > to || from < 1 || to > n {
			return nil, fmt.Errorf("selection %q out of range 1-%d", part, n)
		}
		for i := from; i <= to; i++ {
			nums = append(nums, i)
		}
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("empty selection %q", expr)
	}
	return nums, nil
}

// writeOutput appends text to --output, or writes it to stdout.
func writeOutput(cmd *cobra.Command, text string) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.WriteString(f, text); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
