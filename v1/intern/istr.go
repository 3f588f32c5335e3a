// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"bytes"
	"fmt"
	"strconv"
)

// Istr identifies an interned string. It is cheap to copy and to compare:
// internally it is a single integer holding the string's slot index plus one.
//
// The zero value is the absent identifier. No interner ever mints it, so an
// optional identifier needs no storage beyond R itself.
//
// An Istr is only meaningful relative to the interner that created it.
// Comparing identifiers from different interners gives nonsensical results.
type Istr[R Repr] struct {
	repr R
}

// ID is the default, pointer-width identifier.
type ID = Istr[uint]

// FromRaw rebuilds an identifier from a value previously returned by Raw.
func FromRaw[R Repr](r R) Istr[R] {
	return Istr[R]{repr: r}
}

// IsZero reports whether id is the absent identifier.
func (id Istr[R]) IsZero() bool {
	return id.repr == 0
}

// Index returns the slot index of id, or false for the absent identifier.
func (id Istr[R]) Index() (int, bool) {
	idx := toIndex(id.repr)
	return idx, idx >= 0
}

// Raw returns the underlying integer, zero for the absent identifier.
func (id Istr[R]) Raw() R {
	return id.repr
}

func (id Istr[R]) String() string {
	if id.IsZero() {
		return "istr(none)"
	}
	return fmt.Sprintf("istr(%d)", id.repr)
}

// MarshalJSON encodes id as its bare integer, or null when absent.
func (id Istr[R]) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendUint(nil, uint64(id.repr), 10), nil
}

// UnmarshalJSON decodes an integer or null. Values that do not fit in R are
// rejected.
func (id *Istr[R]) UnmarshalJSON(bs []byte) error {
	bs = bytes.TrimSpace(bs)
	if bytes.Equal(bs, []byte("null")) {
		id.repr = 0
		return nil
	}

	n, err := strconv.ParseUint(string(bs), 10, 64)
	if err != nil {
		return fmt.Errorf("istr: invalid identifier %s: %w", bs, err)
	}

	if n > uint64(^R(0)) {
		return fmt.Errorf("istr: identifier %d overflows %T", n, R(0))
	}

	id.repr = R(n)
	return nil
}
