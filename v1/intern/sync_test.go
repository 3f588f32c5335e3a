// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"strconv"
	"sync"
	"testing"

	"github.com/fortytw2/leaktest"
)

func TestSyncInternerConcurrent(t *testing.T) {
	defer leaktest.Check(t)()

	interner := NewSyncWithRepr[uint32]()

	const workers = 8
	const words = 500

	results := make([][]Istr[uint32], workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]Istr[uint32], words)
			for n := range words {
				// Alternate string and byte entry points between workers.
				s := "word" + strconv.Itoa(n)
				if w%2 == 0 {
					ids[n] = interner.Intern(s)
				} else {
					ids[n] = interner.InternBytes([]byte(s))
				}
				if got := interner.MustGetStr(ids[n]); got != s {
					t.Errorf("MustGetStr(%v) = %q, expected %q", ids[n], got, s)
					return
				}
			}
			results[w] = ids
		}()
	}
	wg.Wait()

	if interner.Len() != words {
		t.Fatalf("Len() = %d, expected %d", interner.Len(), words)
	}

	for w := 1; w < workers; w++ {
		for n := range words {
			if results[w][n] != results[0][n] {
				t.Fatalf("worker %d got %v for word %d, worker 0 got %v", w, results[w][n], n, results[0][n])
			}
		}
	}

	st := interner.Stats()
	if st.Misses != words || st.Hits != workers*words-words {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestSyncInternerLookups(t *testing.T) {
	interner := NewSync(WithSeed(3))

	id, ok := interner.TryIntern("x")
	if !ok {
		t.Fatal("TryIntern failed")
	}

	if got, ok := interner.GetInterned("x"); !ok || got != id {
		t.Fatalf("GetInterned(\"x\") = (%v, %v)", got, ok)
	}
	if _, ok := interner.GetInterned("y"); ok {
		t.Fatal("GetInterned(\"y\") should miss")
	}
	if s, ok := interner.GetStr(id); !ok || s != "x" {
		t.Fatalf("GetStr(%v) = (%q, %v)", id, s, ok)
	}
	if b, ok := interner.TryInternBytes([]byte("x")); !ok || b != id {
		t.Fatalf("TryInternBytes(\"x\") = (%v, %v)", b, ok)
	}

	var all []string
	for _, s := range interner.All() {
		all = append(all, s)
	}
	if len(all) != 1 || all[0] != "x" {
		t.Fatalf("All() = %v", all)
	}
}
