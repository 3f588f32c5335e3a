// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/alex60217101990/istr/internal/config"
	"github.com/alex60217101990/istr/internal/corpus"
	"github.com/alex60217101990/istr/v1/intern"
	"github.com/alex60217101990/istr/v1/intern/metrics"
	"github.com/alex60217101990/istr/v1/intern/snapshot"
)

// result is the width-independent view of an interner built from input.
type result struct {
	tokens   int
	stats    intern.Stats
	source   metrics.Source
	snapshot func() snapshot.Document
}

func (p *params) internOpts() []intern.Opt {
	opts := []intern.Opt{intern.WithChunkSize(p.cfg.ChunkSize)}
	if p.cfg.Seed != 0 {
		opts = append(opts, intern.WithSeed(p.cfg.Seed))
	}
	return opts
}

// build interns the tokens of paths using the configured identifier width.
func (p *params) build(ctx context.Context, paths []string) (result, error) {
	if len(paths) == 0 {
		paths = []string{corpus.Stdin}
	}

	switch p.cfg.Width {
	case config.Width16:
		return buildWith[uint16](ctx, p, paths)
	case config.Width32:
		return buildWith[uint32](ctx, p, paths)
	case config.Width64:
		return buildWith[uint64](ctx, p, paths)
	default:
		return buildWith[uint](ctx, p, paths)
	}
}

func buildWith[R intern.Repr](ctx context.Context, p *params, paths []string) (result, error) {
	in := intern.NewSyncWithRepr[R](p.internOpts()...)

	mode := corpus.Words
	if p.cfg.Mode == config.ModeLines {
		mode = corpus.Lines
	}

	var refused atomic.Int64
	counts, err := corpus.Read(ctx, paths, corpus.Options{Mode: mode, Stdin: p.stdin}, func(_ string, token []byte) {
		if _, ok := in.TryInternBytes(token); !ok {
			refused.Add(1)
		}
	})
	if err != nil {
		return result{}, err
	}

	var total int
	for i, n := range counts {
		total += n
		p.log.WithFields(logrus.Fields{"path": paths[i], "tokens": n}).Debug("Read input.")
	}

	if n := refused.Load(); n > 0 {
		return result{}, fmt.Errorf("width %s: %d tokens refused: %w", p.cfg.Width, n, &intern.Error{
			Code:    intern.ExhaustedErr,
			Message: "too many interned strings",
		})
	}

	st := in.Stats()
	p.log.WithFields(logrus.Fields{
		"tokens":  total,
		"strings": st.Strings,
		"bytes":   st.Bytes,
	}).Info("Interned input.")

	return result{
		tokens:   total,
		stats:    st,
		source:   in,
		snapshot: func() snapshot.Document { return snapshot.Take[R](in) },
	}, nil
}

// registry returns a Prometheus registry exporting r's interner.
func (r result) registry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector("istr", r.source)); err != nil {
		return nil, err
	}
	return reg, nil
}
