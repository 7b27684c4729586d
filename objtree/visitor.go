// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// Package objtree implements the canonical hashing protocol and the
// visitor contract that bridges arbitrary concrete representations
// (filesystem directory, JSON document, in-memory tree) to it.
package objtree

import (
	"fmt"
	"unicode/utf8"
)

// Kind identifies the type of a dictionary entry's child.
type Kind byte

const (
	// KindSubordinate ('s') marks a child that is a File, by structure.
	KindSubordinate Kind = 's'
	// KindTable ('t') marks a child that is a Dictionary.
	KindTable Kind = 't'
	// KindLink ('l') marks a child that is a fingerprint.Fingerprint
	// reference to some other object.
	KindLink Kind = 'l'
)

func (k Kind) String() string {
	return string(k)
}

// Producer emits exactly one of the two canonical event sequences (file or
// dictionary) to the given Consumer. Producers and consumers are both
// driven by this same event contract: a producer is given to Compute to
// obtain its fingerprint, or to any other Consumer (an encoder) to obtain
// some other representation of the same tree.
type Producer interface {
	Visit(c Consumer) error
}

// ProducerFunc adapts a plain function to the Producer interface.
type ProducerFunc func(c Consumer) error

// Visit calls f(c).
func (f ProducerFunc) Visit(c Consumer) error { return f(c) }

// Consumer reacts to the events emitted by a Producer. A walk is a
// synchronous depth-first traversal: a Consumer must see either
//
//	EnterFile(sz); VisitData(chunk)*; LeaveFile()
//
// or
//
//	EnterDict(); VisitEntry(name, kind, child)*; LeaveDict()
//
// exactly once per node. For a KindLink entry, child is a
// fingerprint.Fingerprint, consumed as an opaque reference with no
// recursion. For KindSubordinate/KindTable entries, child is itself a
// Producer; the Consumer is expected to recursively drive a fresh
// sub-consumer over it to obtain the child's digest.
type Consumer interface {
	EnterFile(sz int64) error
	VisitData(chunk []byte) error
	LeaveFile() error

	EnterDict() error
	VisitEntry(name string, kind Kind, child interface{}) error
	LeaveDict() error
}

// ValidateName checks that name is non-empty and contains no code points
// with a value of 31 or below (no C0 controls). It is shared by every
// adapter that needs to validate a name before handing it to a Consumer.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("%w: name %q is not valid UTF-8", ErrInvalidName, name)
		}
		if r <= 31 {
			return fmt.Errorf("%w: name %q contains control character %U", ErrInvalidName, name, r)
		}
		i += size
	}
	return nil
}

// Visit is a convenience wrapper equal to p.Visit(c), except that a nil
// producer is rejected with ErrProtocol instead of panicking.
func Visit(p Producer, c Consumer) error {
	if p == nil {
		return fmt.Errorf("%w: nil producer", ErrProtocol)
	}
	return p.Visit(c)
}
