// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"iter"
	"sync"
)

// SyncInterner is an Interner that is safe for concurrent use.
type SyncInterner[R Repr] struct {
	// mu guards in. Lookups take the write lock too: hashing goes through
	// state shared by every probe.
	mu sync.RWMutex
	in *Interner[R]
}

// NewSync creates a SyncInterner using the default pointer-width identifier.
func NewSync(opts ...Opt) *SyncInterner[uint] {
	return NewSyncWithRepr[uint](opts...)
}

// NewSyncWithRepr creates a SyncInterner whose identifiers are backed by R.
func NewSyncWithRepr[R Repr](opts ...Opt) *SyncInterner[R] {
	return &SyncInterner[R]{in: NewWithRepr[R](opts...)}
}

// Intern is the concurrent form of Interner.Intern.
func (s *SyncInterner[R]) Intern(str string) Istr[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.Intern(str)
}

// TryIntern is the concurrent form of Interner.TryIntern.
func (s *SyncInterner[R]) TryIntern(str string) (Istr[R], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.TryIntern(str)
}

// InternBytes is the concurrent form of Interner.InternBytes.
func (s *SyncInterner[R]) InternBytes(b []byte) Istr[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.InternBytes(b)
}

// TryInternBytes is the concurrent form of Interner.TryInternBytes.
func (s *SyncInterner[R]) TryInternBytes(b []byte) (Istr[R], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.TryInternBytes(b)
}

// GetInterned is the concurrent form of Interner.GetInterned.
func (s *SyncInterner[R]) GetInterned(str string) (Istr[R], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.GetInterned(str)
}

// GetStr is the concurrent form of Interner.GetStr.
func (s *SyncInterner[R]) GetStr(id Istr[R]) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.GetStr(id)
}

// MustGetStr is the concurrent form of Interner.MustGetStr.
func (s *SyncInterner[R]) MustGetStr(id Istr[R]) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.MustGetStr(id)
}

// Len returns the number of distinct strings interned.
func (s *SyncInterner[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Len()
}

// Stats returns a snapshot of the interner's counters.
func (s *SyncInterner[R]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Stats()
}

// All yields every identifier with its string in insertion order. The read
// lock is held for the whole iteration, so the loop body must not intern.
func (s *SyncInterner[R]) All() iter.Seq2[Istr[R], string] {
	return func(yield func(Istr[R], string) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for id, str := range s.in.All() {
			if !yield(id, str) {
				return
			}
		}
	}
}
