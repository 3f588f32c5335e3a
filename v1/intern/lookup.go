// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/swiss"
)

// metadata is one occupied lookup slot. The string itself lives in the
// arena; only its identifier and hash are kept here.
type metadata[R Repr] struct {
	interned Istr[R]
	hash     uint64

	// next is the position in lookup.entries of the previous entry with the
	// same hash, -1 at the end of the chain.
	next int
}

// lookup maps string hashes to identifiers. Since distinct strings may share
// a hash, every probe confirms a candidate with an equality callback that
// dereferences it through the arena.
type lookup[R Repr] struct {
	seed   uint64
	digest *xxhash.Digest

	// heads maps a hash to the position of the newest entry carrying it.
	heads   *swiss.Map[uint64, int]
	entries []metadata[R]

	busy bool
}

func newLookup[R Repr](seed uint64, capacity int) lookup[R] {
	return lookup[R]{
		seed:    seed,
		digest:  xxhash.NewWithSeed(seed),
		heads:   swiss.New[uint64, int](capacity),
		entries: make([]metadata[R], 0, capacity),
	}
}

// acquire claims exclusive access for the duration of one operation.
func (l *lookup[R]) acquire() {
	if l.busy {
		panic(errReentrant)
	}
	l.busy = true
}

func (l *lookup[R]) release() {
	l.busy = false
}

func (l *lookup[R]) hashString(s string) uint64 {
	l.digest.ResetWithSeed(l.seed)
	_, _ = l.digest.WriteString(s)
	return l.digest.Sum64()
}

func (l *lookup[R]) hashBytes(b []byte) uint64 {
	l.digest.ResetWithSeed(l.seed)
	_, _ = l.digest.Write(b)
	return l.digest.Sum64()
}

// find returns the identifier in the chain for hash accepted by eq.
func (l *lookup[R]) find(hash uint64, eq func(Istr[R]) bool) (Istr[R], bool) {
	pos, ok := l.heads.Get(hash)
	if !ok {
		return Istr[R]{}, false
	}

	for pos != -1 {
		m := &l.entries[pos]
		if eq(m.interned) {
			return m.interned, true
		}
		pos = m.next
	}

	return Istr[R]{}, false
}

// entry is the result of a find-or-reserve probe: either an occupied match
// or a vacancy for hash that insert fills.
type entry[R Repr] struct {
	l        *lookup[R]
	hash     uint64
	interned Istr[R]
	occupied bool
}

func (l *lookup[R]) entry(hash uint64, eq func(Istr[R]) bool) entry[R] {
	interned, ok := l.find(hash, eq)
	return entry[R]{l: l, hash: hash, interned: interned, occupied: ok}
}

// insert records interned under the entry's hash. It must only be called on
// a vacant entry, before any other change to the lookup.
func (e entry[R]) insert(interned Istr[R]) {
	l := e.l

	next, ok := l.heads.Get(e.hash)
	if !ok {
		next = -1
	}

	l.entries = append(l.entries, metadata[R]{interned: interned, hash: e.hash, next: next})
	l.heads.Put(e.hash, len(l.entries)-1)
}

func (l *lookup[R]) len() int {
	return len(l.entries)
}
