// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alex60217101990/istr/v1/intern"
)

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src := intern.NewWithRepr[uint32]()
			words := []string{"fn", "main", "", "fn", "x: y", "ünï", "- dash", "main"}

			ids := make([]intern.Istr[uint32], len(words))
			for i, w := range words {
				ids[i] = src.Intern(w)
			}

			// Identifiers are persisted elsewhere as bare integers.
			persisted, err := json.Marshal(ids)
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := Encode(&buf, Take[uint32](src), format); err != nil {
				t.Fatal(err)
			}

			doc, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatal(err)
			}

			if doc.Repr != "uint32" {
				t.Fatalf("Repr = %q, expected uint32", doc.Repr)
			}

			restored, err := Restore[uint32](doc)
			if err != nil {
				t.Fatal(err)
			}

			var back []intern.Istr[uint32]
			if err := json.Unmarshal(persisted, &back); err != nil {
				t.Fatal(err)
			}

			got := make([]string, len(back))
			for i, id := range back {
				got[i] = restored.MustGetStr(id)
			}

			if diff := cmp.Diff(words, got); diff != "" {
				t.Fatalf("restored strings differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTakeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Take[uint](intern.New()), FormatJSON); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), `"strings": []`) {
		t.Fatalf("expected an empty list, got %s", buf.String())
	}
}

func TestTakeFromSyncInterner(t *testing.T) {
	src := intern.NewSync()
	src.Intern("a")
	src.Intern("b")

	doc := Take[uint](src)
	if diff := cmp.Diff([]string{"a", "b"}, doc.Strings); diff != "" {
		t.Fatalf("unexpected strings (-want +got):\n%s", diff)
	}
}

func TestRestoreRejectsDuplicates(t *testing.T) {
	_, err := Restore[uint](Document{Version: Version, Strings: []string{"a", "b", "a"}})
	if err == nil || !strings.Contains(err.Error(), "duplicates string 0") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRestoreRejectsOverflow(t *testing.T) {
	doc := Document{Version: Version, Strings: make([]string, math.MaxUint16+1)}
	for i := range doc.Strings {
		doc.Strings[i] = strconv.Itoa(i)
	}

	_, err := Restore[uint16](doc)
	if !intern.IsExhausted(err) {
		t.Fatalf("expected exhaustion error, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "version", input: `{"version": 2, "strings": []}`},
		{name: "missing version", input: `{"strings": []}`},
		{name: "garbage", input: `[[[`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Fatalf("ParseFormat(YAML) = (%q, %v)", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
	if err := Encode(&bytes.Buffer{}, Document{}, "xml"); err == nil {
		t.Fatal("expected Encode to reject unknown format")
	}
}
