// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package intern implements string interning with compact identifiers.
//
// An Interner stores each distinct string once and hands out an Istr for it.
// Equal strings always receive the same Istr, so identifier equality is
// string equality and costs a single integer comparison.
//
// The interner provides:
//   - Append-only, non-relocating string storage (see package arena)
//   - A hash index holding only hashes and identifiers
//   - Identifiers backed by uint16, uint32, uint64 or uint, with the zero
//     value reserved to mean "absent"
//
// An Interner is not safe for concurrent use. Every operation claims
// exclusive access to the interner's state and panics if it finds another
// operation already in progress. Use SyncInterner to share one between
// goroutines.
package intern

import (
	"iter"
	"math/rand/v2"
	"unsafe"

	"github.com/alex60217101990/istr/v1/intern/arena"
)

// Interner stores interned strings.
type Interner[R Repr] struct {
	lookup lookup[R]
	arena  *arena.Arena

	hits      uint64
	misses    uint64
	exhausted uint64
}

// Stats describes the contents and activity of an interner.
type Stats struct {
	Strings   int    // distinct strings stored
	Bytes     int    // bytes stored in the arena
	Chunks    int    // arena chunks allocated
	Hits      uint64 // interning calls answered by an existing identifier
	Misses    uint64 // interning calls that stored a new string
	Exhausted uint64 // interning calls refused for lack of identifiers
}

type options struct {
	seed      uint64
	seeded    bool
	chunkSize int
	capacity  int
}

// Opt is a configuration option for an interner.
type Opt func(*options)

// WithSeed fixes the hash seed. By default every interner draws a random one.
func WithSeed(seed uint64) Opt {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithChunkSize sets the arena chunk capacity in bytes.
func WithChunkSize(n int) Opt {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithCapacity sizes the lookup for n strings up front.
func WithCapacity(n int) Opt {
	return func(o *options) {
		o.capacity = max(n, 0)
	}
}

// New creates an interner using the default pointer-width identifier.
func New(opts ...Opt) *Interner[uint] {
	return NewWithRepr[uint](opts...)
}

// NewWithRepr creates an interner whose identifiers are backed by R.
func NewWithRepr[R Repr](opts ...Opt) *Interner[R] {
	o := options{chunkSize: arena.DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.seeded {
		o.seed = rand.Uint64()
	}

	return &Interner[R]{
		lookup: newLookup[R](o.seed, o.capacity),
		arena:  arena.New(arena.WithChunkSize(o.chunkSize)),
	}
}

// Intern returns the identifier for s, storing s if it has not been seen
// before. Strings are only stored once, no matter how many times they are
// interned.
//
// Intern panics with an ExhaustedErr *Error if s is new and no identifier is
// left in R. An interner backed by uint32 holds up to 1<<32 - 1 strings.
func (i *Interner[R]) Intern(s string) Istr[R] {
	id, ok := i.TryIntern(s)
	if !ok {
		panic(errExhausted)
	}
	return id
}

// TryIntern is like Intern but reports false instead of panicking when the
// identifiers are exhausted. A refused call leaves the interner unchanged.
func (i *Interner[R]) TryIntern(s string) (Istr[R], bool) {
	i.lookup.acquire()
	defer i.lookup.release()

	e := i.lookup.entry(i.lookup.hashString(s), i.matches(s))
	if e.occupied {
		i.hits++
		return e.interned, true
	}

	return i.insert(e, func() int { return i.arena.PushStr(s) })
}

// InternBytes is Intern for a byte slice. b is copied when stored, and is not
// retained otherwise, so callers may reuse it.
func (i *Interner[R]) InternBytes(b []byte) Istr[R] {
	id, ok := i.TryInternBytes(b)
	if !ok {
		panic(errExhausted)
	}
	return id
}

// TryInternBytes is TryIntern for a byte slice.
func (i *Interner[R]) TryInternBytes(b []byte) (Istr[R], bool) {
	i.lookup.acquire()
	defer i.lookup.release()

	// The view only lives for this probe; the arena copies on insert.
	s := unsafe.String(unsafe.SliceData(b), len(b))

	e := i.lookup.entry(i.lookup.hashBytes(b), i.matches(s))
	if e.occupied {
		i.hits++
		return e.interned, true
	}

	return i.insert(e, func() int { return i.arena.PushBytes(b) })
}

// insert mints the next identifier, then stores the string and fills e.
// Nothing is stored if the identifier cannot be represented.
func (i *Interner[R]) insert(e entry[R], push func() int) (Istr[R], bool) {
	repr, ok := fromIndex[R](i.arena.Len())
	if !ok {
		i.exhausted++
		return Istr[R]{}, false
	}

	if idx := push(); idx != toIndex(repr) {
		panic("intern: arena and lookup out of step")
	}

	id := Istr[R]{repr: repr}
	e.insert(id)
	i.misses++

	return id, true
}

func (i *Interner[R]) matches(s string) func(Istr[R]) bool {
	return func(id Istr[R]) bool {
		stored, ok := i.arena.Get(toIndex(id.repr))
		return ok && stored == s
	}
}

// GetInterned returns the identifier of s if s has been interned.
func (i *Interner[R]) GetInterned(s string) (Istr[R], bool) {
	i.lookup.acquire()
	defer i.lookup.release()

	return i.lookup.find(i.lookup.hashString(s), i.matches(s))
}

// GetStr returns the string identified by id.
//
// If id was created by another interner the result is an arbitrary string or
// false. The absent identifier always reports false.
func (i *Interner[R]) GetStr(id Istr[R]) (string, bool) {
	return i.arena.Get(toIndex(id.repr))
}

// MustGetStr is like GetStr but panics with a NotFoundErr *Error when id does
// not resolve. Use it where id is known to come from this interner.
func (i *Interner[R]) MustGetStr(id Istr[R]) string {
	s, ok := i.GetStr(id)
	if !ok {
		panic(errNotFound)
	}
	return s
}

// Len returns the number of distinct strings interned.
func (i *Interner[R]) Len() int {
	return i.arena.Len()
}

// All yields every identifier with its string, in the order the strings were
// first interned. The interner must not be modified during iteration.
func (i *Interner[R]) All() iter.Seq2[Istr[R], string] {
	return func(yield func(Istr[R], string) bool) {
		for idx := range i.arena.Len() {
			s, _ := i.arena.Get(idx)
			repr, _ := fromIndex[R](idx)
			if !yield(Istr[R]{repr: repr}, s) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the interner's counters.
func (i *Interner[R]) Stats() Stats {
	return Stats{
		Strings:   i.arena.Len(),
		Bytes:     i.arena.Size(),
		Chunks:    i.arena.Chunks(),
		Hits:      i.hits,
		Misses:    i.misses,
		Exhausted: i.exhausted,
	}
}
