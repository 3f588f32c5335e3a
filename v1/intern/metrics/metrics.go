// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics exports interner statistics to Prometheus and go-metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/alex60217101990/istr/v1/intern"
)

// Source is anything reporting interner statistics. Both intern.Interner and
// intern.SyncInterner qualify; only the latter may be read while other
// goroutines intern.
type Source interface {
	Stats() intern.Stats
}

type stat struct {
	name      string
	help      string
	valueType prometheus.ValueType
	value     func(intern.Stats) float64
}

var stats = []stat{
	{
		name:      "strings",
		help:      "Number of distinct strings interned.",
		valueType: prometheus.GaugeValue,
		value:     func(s intern.Stats) float64 { return float64(s.Strings) },
	},
	{
		name:      "bytes",
		help:      "Bytes of string data held by the arena.",
		valueType: prometheus.GaugeValue,
		value:     func(s intern.Stats) float64 { return float64(s.Bytes) },
	},
	{
		name:      "chunks",
		help:      "Arena chunks allocated.",
		valueType: prometheus.GaugeValue,
		value:     func(s intern.Stats) float64 { return float64(s.Chunks) },
	},
	{
		name:      "hits_total",
		help:      "Interning calls answered with an existing identifier.",
		valueType: prometheus.CounterValue,
		value:     func(s intern.Stats) float64 { return float64(s.Hits) },
	},
	{
		name:      "misses_total",
		help:      "Interning calls that stored a new string.",
		valueType: prometheus.CounterValue,
		value:     func(s intern.Stats) float64 { return float64(s.Misses) },
	},
	{
		name:      "exhausted_total",
		help:      "Interning calls refused because no identifier was left.",
		valueType: prometheus.CounterValue,
		value:     func(s intern.Stats) float64 { return float64(s.Exhausted) },
	},
}

type collector struct {
	src   Source
	descs []*prometheus.Desc
}

// NewCollector returns a Prometheus collector reading src on every scrape.
// Metric names are prefixed with namespace.
func NewCollector(namespace string, src Source) prometheus.Collector {
	c := &collector{src: src, descs: make([]*prometheus.Desc, len(stats))}
	for i, s := range stats {
		c.descs[i] = prometheus.NewDesc(prometheus.BuildFQName(namespace, "", s.name), s.help, nil, nil)
	}
	return c
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.src.Stats()
	for i, s := range stats {
		ch <- prometheus.MustNewConstMetric(c.descs[i], s.valueType, s.value(snapshot))
	}
}

// RegisterGauges registers one functional gauge per statistic in reg, named
// prefix + "." + statistic.
func RegisterGauges(reg gometrics.Registry, prefix string, src Source) error {
	for _, s := range stats {
		value := s.value
		g := gometrics.NewFunctionalGauge(func() int64 {
			return int64(value(src.Stats()))
		})
		if err := reg.Register(prefix+"."+s.name, g); err != nil {
			return err
		}
	}
	return nil
}
