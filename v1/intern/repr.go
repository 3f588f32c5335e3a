// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

// Repr is the set of integer types an Istr can be backed by.
//
// uint is pointer-width and the default. uint32 and uint64 fix the size of
// an identifier, and uint16 suits small tables. The set is closed: the types
// are listed without approximation so no other type can satisfy it.
type Repr interface {
	uint16 | uint32 | uint64 | uint
}

// fromIndex converts a slot index to its stored form, index+1. It reports
// false if the result does not fit in R.
func fromIndex[R Repr](index int) (R, bool) {
	if index < 0 || uint64(index) >= uint64(^R(0)) {
		return 0, false
	}
	return R(index) + 1, true
}

// toIndex is the inverse of fromIndex. The zero value, and values too large
// for an int, map to negative indexes that resolve to nothing.
func toIndex[R Repr](r R) int {
	return int(r) - 1
}
