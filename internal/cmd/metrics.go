// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"

	"github.com/alex60217101990/istr/v1/intern/metrics"
)

func newMetricsCommand(p *params) *cobra.Command {
	var goMetrics bool

	cmd := &cobra.Command{
		Use:   "metrics [file...]",
		Short: "Print the interner metrics gathered for the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := p.build(cmd.Context(), args)
			if err != nil {
				return err
			}

			if goMetrics {
				reg := gometrics.NewRegistry()
				if err := metrics.RegisterGauges(reg, "istr", r.source); err != nil {
					return err
				}
				gometrics.WriteOnce(reg, cmd.OutOrStdout())
				return nil
			}

			reg, err := r.registry()
			if err != nil {
				return err
			}

			families, err := reg.Gather()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(families))
			for _, mf := range families {
				rows = append(rows, []string{
					mf.GetName(),
					strings.ToLower(mf.GetType().String()),
					strconv.FormatFloat(sampleValue(mf), 'f', -1, 64),
				})
			}

			return writeTable(cmd.OutOrStdout(), []string{"Name", "Type", "Value"}, rows)
		},
	}

	cmd.Flags().BoolVar(&goMetrics, "go-metrics", false, "print go-metrics gauges instead of Prometheus families")

	return cmd
}

func sampleValue(mf *dto.MetricFamily) float64 {
	if len(mf.GetMetric()) == 0 {
		return 0
	}
	m := mf.GetMetric()[0]
	switch mf.GetType() {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	default:
		return m.GetGauge().GetValue()
	}
}
