// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alex60217101990/istr/internal/config"
	"github.com/alex60217101990/istr/v1/intern"
	"github.com/alex60217101990/istr/v1/intern/snapshot"
)

func newLookupCommand(p *params) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <snapshot> <string...>",
		Short: "Resolve strings against a snapshot",
		Long: `Restore a snapshot written by "istr dump" and print the identifier each
string had when the snapshot was taken, or "-" if it was never interned.

The identifier width recorded in the snapshot takes precedence over --width.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := snapshot.Decode(bs)
			if err != nil {
				return err
			}

			width := p.cfg.Width
			if doc.Repr != "" {
				if width, err = widthOf(doc.Repr); err != nil {
					return err
				}
			}

			var rows [][]string
			switch width {
			case config.Width16:
				rows, err = lookupWith[uint16](p, doc, args[1:])
			case config.Width32:
				rows, err = lookupWith[uint32](p, doc, args[1:])
			case config.Width64:
				rows, err = lookupWith[uint64](p, doc, args[1:])
			default:
				rows, err = lookupWith[uint](p, doc, args[1:])
			}
			if err != nil {
				return err
			}

			return writeTable(cmd.OutOrStdout(), []string{"String", "Identifier"}, rows)
		},
	}
}

func widthOf(repr string) (string, error) {
	switch repr {
	case "uint16":
		return config.Width16, nil
	case "uint32":
		return config.Width32, nil
	case "uint64":
		return config.Width64, nil
	case "uint":
		return config.WidthNative, nil
	default:
		return "", fmt.Errorf("snapshot has unknown identifier type %q", repr)
	}
}

func lookupWith[R intern.Repr](p *params, doc snapshot.Document, queries []string) ([][]string, error) {
	in, err := snapshot.Restore[R](doc, p.internOpts()...)
	if err != nil {
		return nil, err
	}

	p.log.WithField("strings", in.Len()).Debug("Snapshot restored.")

	rows := make([][]string, 0, len(queries))
	for _, q := range queries {
		id, ok := in.GetInterned(q)
		if !ok {
			rows = append(rows, []string{q, "-"})
			continue
		}
		rows = append(rows, []string{q, strconv.FormatUint(uint64(id.Raw()), 10)})
	}

	return rows, nil
}
