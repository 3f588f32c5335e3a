// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"sigs.k8s.io/yaml"
)

func TestFromIndexBounds(t *testing.T) {
	if r, ok := fromIndex[uint16](0); !ok || r != 1 {
		t.Fatalf("fromIndex(0) = (%d, %v), expected (1, true)", r, ok)
	}
	if r, ok := fromIndex[uint16](math.MaxUint16 - 1); !ok || r != math.MaxUint16 {
		t.Fatalf("fromIndex(MaxUint16-1) = (%d, %v), expected (%d, true)", r, ok, math.MaxUint16)
	}
	if _, ok := fromIndex[uint16](math.MaxUint16); ok {
		t.Fatal("expected MaxUint16 not to fit in uint16")
	}
	if _, ok := fromIndex[uint32](math.MaxUint32); ok {
		t.Fatal("expected MaxUint32 not to fit in uint32")
	}
	if _, ok := fromIndex[uint64](math.MaxInt); !ok {
		t.Fatal("expected MaxInt to fit in uint64")
	}
	if _, ok := fromIndex[uint](-1); ok {
		t.Fatal("expected negative indexes to be rejected")
	}
}

func TestToIndexInvertsFromIndex(t *testing.T) {
	for _, idx := range []int{0, 1, 2, 1000, math.MaxUint16 - 1} {
		r, ok := fromIndex[uint32](idx)
		if !ok {
			t.Fatalf("fromIndex(%d) failed", idx)
		}
		if got := toIndex(r); got != idx {
			t.Fatalf("toIndex(fromIndex(%d)) = %d", idx, got)
		}
	}

	if got := toIndex[uint32](0); got >= 0 {
		t.Fatalf("toIndex(0) = %d, expected a negative index", got)
	}
}

func TestIstrZero(t *testing.T) {
	var id Istr[uint32]

	if !id.IsZero() {
		t.Fatal("expected zero value to be absent")
	}
	if idx, ok := id.Index(); ok {
		t.Fatalf("zero identifier has index %d", idx)
	}
	if id.String() != "istr(none)" {
		t.Fatalf("String() = %q", id.String())
	}
	if got := FromRaw[uint32](3).String(); got != "istr(3)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestIstrJSON(t *testing.T) {
	interner := NewWithRepr[uint32]()
	a := interner.Intern("a")
	b := interner.Intern("b")

	type record struct {
		Name  Istr[uint32]   `json:"name"`
		Names []Istr[uint32] `json:"names"`
		Owner Istr[uint32]   `json:"owner"`
	}

	bs, err := json.Marshal(record{Name: b, Names: []Istr[uint32]{a, b}})
	if err != nil {
		t.Fatal(err)
	}

	if string(bs) != `{"name":2,"names":[1,2],"owner":null}` {
		t.Fatalf("unexpected encoding %s", bs)
	}

	var back record
	if err := json.Unmarshal(bs, &back); err != nil {
		t.Fatal(err)
	}

	want := record{Name: b, Names: []Istr[uint32]{a, b}}
	if diff := cmp.Diff(want, back, cmp.AllowUnexported(Istr[uint32]{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if got := interner.MustGetStr(back.Names[0]); got != "a" {
		t.Fatalf("decoded identifier resolves to %q", got)
	}
}

func TestIstrUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "overflow", input: `70000`},
		{name: "negative", input: `-1`},
		{name: "string", input: `"1"`},
		{name: "float", input: `1.5`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var id Istr[uint16]
			if err := json.Unmarshal([]byte(tc.input), &id); err == nil {
				t.Fatalf("expected error decoding %s, got %v", tc.input, id)
			}
		})
	}
}

func TestIstrYAML(t *testing.T) {
	id := FromRaw[uint64](42)

	bs, err := yaml.Marshal(map[string]Istr[uint64]{"id": id})
	if err != nil {
		t.Fatal(err)
	}

	if string(bs) != "id: 42\n" {
		t.Fatalf("unexpected encoding %q", bs)
	}

	var back map[string]Istr[uint64]
	if err := yaml.Unmarshal(bs, &back); err != nil {
		t.Fatal(err)
	}
	if back["id"] != id {
		t.Fatalf("decoded %v, expected %v", back["id"], id)
	}
}
