// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alex60217101990/istr/internal/config"
	"github.com/alex60217101990/istr/v1/intern/snapshot"
)

func newDumpCommand(p *params) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump [file...]",
		Short: "Write a snapshot of the interned tokens",
		Long: `Intern every token of the named files and write the distinct strings in
identifier order. The snapshot can be restored with "istr lookup".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := snapshot.ParseFormat(p.cfg.Format)
			if err != nil {
				return err
			}

			r, err := p.build(cmd.Context(), args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := snapshot.Encode(w, r.snapshot(), format); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			p.log.WithField("output", output).Debug("Snapshot written.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of standard output")

	// Only the format flag maps to a config key.
	formatFlags := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	formatFlags.String(config.KeyFormat, "json", "snapshot format (json, yaml)")
	cmd.Flags().AddFlagSet(formatFlags)
	mustBind(p.v, formatFlags)

	return cmd
}
