// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package snapshot persists the contents of an interner so that identifiers
// stored elsewhere as bare integers can be resolved again later.
//
// A snapshot lists strings in slot order. Restoring it replays the strings
// into a fresh interner, which reassigns every string the identifier it had
// when the snapshot was taken.
package snapshot

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/alex60217101990/istr/v1/intern"
	"github.com/alex60217101990/istr/v1/util"
)

// Version is the current document version.
const Version = 1

// Format selects the encoding written by Encode.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown snapshot format %q", s)
	}
}

// Document is the persisted form of an interner.
type Document struct {
	Version int      `json:"version"`
	Repr    string   `json:"repr,omitempty"`
	Strings []string `json:"strings"`
}

// Source is anything that can enumerate its strings in slot order.
type Source[R intern.Repr] interface {
	All() iter.Seq2[intern.Istr[R], string]
}

// Take captures the strings of src.
func Take[R intern.Repr](src Source[R]) Document {
	doc := Document{
		Version: Version,
		Repr:    fmt.Sprintf("%T", R(0)),
		Strings: []string{},
	}

	for _, s := range src.All() {
		doc.Strings = append(doc.Strings, s)
	}

	return doc
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		return util.MarshalJSONIndent(w, doc)
	case FormatYAML:
		return util.MarshalYAML(w, doc)
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
}

// Decode parses a JSON or YAML document.
func Decode(bs []byte) (Document, error) {
	var doc Document
	if err := util.Unmarshal(bs, &doc); err != nil {
		return Document{}, fmt.Errorf("decode snapshot: %w", err)
	}

	if doc.Version != Version {
		return Document{}, fmt.Errorf("decode snapshot: unsupported version %d", doc.Version)
	}

	return doc, nil
}

// Restore replays doc into a new interner backed by R.
//
// It fails if the document repeats a string, since the replay could not then
// reproduce the original slot order, or if R cannot hold every string.
func Restore[R intern.Repr](doc Document, opts ...intern.Opt) (*intern.Interner[R], error) {
	in := intern.NewWithRepr[R](append([]intern.Opt{intern.WithCapacity(len(doc.Strings))}, opts...)...)

	for i, s := range doc.Strings {
		id, ok := in.TryIntern(s)
		if !ok {
			return nil, fmt.Errorf("restore snapshot: string %d: %w", i, &intern.Error{
				Code:    intern.ExhaustedErr,
				Message: fmt.Sprintf("%T cannot hold %d strings", R(0), len(doc.Strings)),
			})
		}

		if idx, _ := id.Index(); idx != i {
			return nil, fmt.Errorf("restore snapshot: string %d duplicates string %d (%q)", i, idx, s)
		}
	}

	return in, nil
}
