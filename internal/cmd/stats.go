// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStatsCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file...]",
		Short: "Report how well the tokens of the input deduplicate",
		Long: `Intern every token of the named files (standard input when none are given,
or for "-") and print a summary table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := p.build(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), p.cfg.Width, r)
		},
	}
}

func writeStats(w io.Writer, width string, r result) error {
	ratio := 0.0
	if r.stats.Strings > 0 {
		ratio = float64(r.tokens) / float64(r.stats.Strings)
	}

	rows := [][]string{
		{"width", width},
		{"tokens", humanize.Comma(int64(r.tokens))},
		{"unique strings", humanize.Comma(int64(r.stats.Strings))},
		{"hits", humanize.Comma(int64(r.stats.Hits))},
		{"stored bytes", humanize.Bytes(uint64(r.stats.Bytes))},
		{"arena chunks", strconv.Itoa(r.stats.Chunks)},
		{"tokens per string", fmt.Sprintf("%.2f", ratio)},
	}

	return writeTable(w, []string{"Metric", "Value"}, rows)
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}

	table := tablewriter.NewWriter(w)
	table.Header(cols...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
