// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package arena implements append-only byte storage for interned strings.
//
// Bytes are written into fixed-capacity chunks. A chunk is never grown past
// the capacity it was allocated with, so strings handed out by Get stay valid
// for the lifetime of the Arena, including across later pushes.
//
// Each stored string is addressed by a slot index assigned in insertion
// order (0, 1, 2, ...).
//
// An Arena is not safe for concurrent use.
package arena

import "unsafe"

const (
	// DefaultChunkSize is the capacity of a freshly allocated chunk.
	DefaultChunkSize = 4096

	// MinChunkSize is the smallest accepted chunk capacity.
	MinChunkSize = 64
)

// Arena stores string bytes in non-relocating chunks.
type Arena struct {
	// chunks holds every allocated chunk. The slice of headers may be
	// reallocated as it grows; the backing arrays never are.
	chunks [][]byte

	// cur is the index of the chunk receiving short strings, -1 before the
	// first allocation.
	cur int

	// slots maps a slot index to the location of its bytes.
	slots []slot

	// size is the number of stored bytes across all slots.
	size int

	chunkSize int
}

type slot struct {
	chunk  int32
	offset int32
	length int
}

// Opt is a configuration option for the arena.
type Opt func(*Arena)

// WithChunkSize sets the capacity of each chunk. Values below MinChunkSize
// are raised to MinChunkSize.
func WithChunkSize(n int) Opt {
	return func(a *Arena) {
		a.chunkSize = max(n, MinChunkSize)
	}
}

// New creates an empty arena. No chunk is allocated until the first push.
func New(opts ...Opt) *Arena {
	a := &Arena{
		cur:       -1,
		chunkSize: DefaultChunkSize,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// PushStr copies s into the arena and returns its slot index.
func (a *Arena) PushStr(s string) int {
	return a.push(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// PushBytes copies b into the arena and returns its slot index.
func (a *Arena) PushBytes(b []byte) int {
	return a.push(b)
}

func (a *Arena) push(b []byte) int {
	idx := len(a.slots)
	n := len(b)

	if n == 0 {
		a.slots = append(a.slots, slot{chunk: -1})
		return idx
	}

	// Oversized strings get a chunk of their own; the active chunk stays
	// current so that later short strings can still fill it.
	if n > a.chunkSize {
		chunk := make([]byte, n)
		copy(chunk, b)
		a.chunks = append(a.chunks, chunk)
		a.slots = append(a.slots, slot{chunk: int32(len(a.chunks) - 1), length: n})
		a.size += n
		return idx
	}

	if a.cur == -1 || cap(a.chunks[a.cur])-len(a.chunks[a.cur]) < n {
		a.extend()
	}

	chunk := a.chunks[a.cur]
	off := len(chunk)
	// Appending within capacity never moves the backing array.
	a.chunks[a.cur] = append(chunk, b...)
	a.slots = append(a.slots, slot{chunk: int32(a.cur), offset: int32(off), length: n})
	a.size += n

	return idx
}

// extend allocates a new active chunk.
func (a *Arena) extend() {
	a.chunks = append(a.chunks, make([]byte, 0, a.chunkSize))
	a.cur = len(a.chunks) - 1
}

// Get returns the string stored at idx. The result aliases arena memory and
// must not be modified through unsafe conversions.
func (a *Arena) Get(idx int) (string, bool) {
	if idx < 0 || idx >= len(a.slots) {
		return "", false
	}

	s := a.slots[idx]
	if s.length == 0 {
		return "", true
	}

	b := a.chunks[s.chunk][s.offset:]
	return unsafe.String(unsafe.SliceData(b), s.length), true
}

// Len returns the number of stored strings.
func (a *Arena) Len() int {
	return len(a.slots)
}

// Size returns the number of stored bytes.
func (a *Arena) Size() int {
	return a.size
}

// Chunks returns the number of allocated chunks.
func (a *Arena) Chunks() int {
	return len(a.chunks)
}
