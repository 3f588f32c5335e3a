// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package corpus reads token streams from files for interning.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Mode selects how input is split into tokens.
type Mode int

const (
	Words Mode = iota // whitespace separated words
	Lines             // whole lines, without the line terminator
)

// Stdin is the path that reads standard input.
const Stdin = "-"

// maxToken bounds the length of a single token.
const maxToken = 1 << 20

// Sink receives tokens. The slice is only valid for the duration of the call
// and must be safe to call from several goroutines at once.
type Sink func(path string, token []byte)

// Options tunes Read.
type Options struct {
	Mode Mode

	// Concurrency bounds how many files are read at once; zero or less
	// means no limit.
	Concurrency int

	// Stdin replaces os.Stdin for the "-" path.
	Stdin io.Reader
}

// Read streams the tokens of every path into sink, reading files
// concurrently. It returns the number of tokens read per path, in the order
// of paths, and stops at the first error.
func Read(ctx context.Context, paths []string, opts Options, sink Sink) ([]int, error) {
	counts := make([]int, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			n, err := readPath(ctx, path, opts, sink)
			counts[i] = n
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return counts, nil
}

func readPath(ctx context.Context, path string, opts Options, sink Sink) (int, error) {
	if path == Stdin {
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		return scan(ctx, path, r, opts.Mode, sink)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return scan(ctx, path, f, opts.Mode, sink)
}

func scan(ctx context.Context, path string, r io.Reader, mode Mode, sink Sink) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxToken)

	switch mode {
	case Words:
		scanner.Split(bufio.ScanWords)
	case Lines:
		scanner.Split(bufio.ScanLines)
	default:
		return 0, fmt.Errorf("unknown mode %d", mode)
	}

	var n int
	for scanner.Scan() {
		// Check for cancellation periodically rather than per token.
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		sink(path, scanner.Bytes())
		n++
	}

	return n, scanner.Err()
}
