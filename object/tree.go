// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// Package object implements the in-memory tree model adapter: a building
// visitor that materializes a concrete tree from a Producer's events, and a
// wrapping producer that turns a concrete tree back into canonical events.
package object

import (
	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

// File is a concrete object file: a byte buffer.
type File []byte

// Link is a concrete reference to another object, by fingerprint.
type Link = fingerprint.Fingerprint

type dictEntry struct {
	kind  objtree.Kind
	child interface{}
}

// Dict is a concrete object dictionary: a name-keyed, insertion-ordered
// mapping. It does not enforce name uniqueness or validity itself --
// those are hashing-protocol concerns (see objtree.Consumer.VisitEntry) --
// it preserves only the mapping semantics, per SPEC_FULL.md §4.4.
type Dict struct {
	order   []string
	entries map[string]dictEntry
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{entries: make(map[string]dictEntry)}
}

// Set adds or overwrites the named entry. child must be a File, *Dict, or
// fingerprint.Fingerprint consistent with kind.
func (d *Dict) Set(name string, kind objtree.Kind, child interface{}) {
	if _, exists := d.entries[name]; !exists {
		d.order = append(d.order, name)
	}
	d.entries[name] = dictEntry{kind: kind, child: child}
}

// Get returns the named entry, if present.
func (d *Dict) Get(name string) (objtree.Kind, interface{}, bool) {
	e, ok := d.entries[name]
	if !ok {
		return 0, nil, false
	}
	return e.kind, e.child, true
}

// Names returns the entry names in insertion order.
func (d *Dict) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.order)
}
