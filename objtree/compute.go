// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package objtree

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"

	"github.com/structured-commons/tools/fingerprint"
)

type nodeMode int

const (
	modeUnset nodeMode = iota
	modeFile
	modeDict
)

type entryRecord struct {
	name string
	kind Kind
	fp   [fingerprint.Size]byte
}

// computeConsumer is the Consumer implementation of the canonical hashing
// protocol: it reacts to exactly one file or dictionary event sequence and
// produces a fingerprint.Fingerprint.
type computeConsumer struct {
	verbose bool

	mode nodeMode

	// file state
	declared   int64
	written    int64
	fileHasher interface {
		Write([]byte) (int, error)
		Sum([]byte) []byte
	}

	// dict state
	entries []entryRecord
	seen    map[string]struct{}

	result fingerprint.Fingerprint
	done   bool
}

// newComputeConsumer creates a fresh Consumer for computing one node's
// fingerprint. A new instance is always used per node, including one per
// dictionary entry that requires recursion, matching the "fresh
// sub-visitor" requirement of the visitor contract.
func newComputeConsumer(verbose bool) *computeConsumer {
	return &computeConsumer{verbose: verbose}
}

// Compute computes the fingerprint of an abstract tree rooted at p.
func Compute(p Producer) (fingerprint.Fingerprint, error) {
	return ComputeVerbose(p, false)
}

// ComputeVerbose is Compute with optional tracing to the package logger,
// matching the `verbose` flag of the original tool's compute_visitor.
func ComputeVerbose(p Producer, verbose bool) (fingerprint.Fingerprint, error) {
	c := newComputeConsumer(verbose)
	if err := Visit(p, c); err != nil {
		return fingerprint.Fingerprint{}, err
	}
	return c.result, nil
}

func (c *computeConsumer) EnterFile(sz int64) error {
	if c.mode != modeUnset {
		return fmt.Errorf("%w: EnterFile called twice on one node", ErrProtocol)
	}
	c.mode = modeFile
	c.declared = sz
	h := sha256.New()
	h.Write([]byte{'s'})
	h.Write([]byte(strconv.FormatInt(sz, 10)))
	h.Write([]byte{0})
	c.fileHasher = h
	return nil
}

func (c *computeConsumer) VisitData(chunk []byte) error {
	if c.mode != modeFile {
		return fmt.Errorf("%w: VisitData outside a file node", ErrProtocol)
	}
	c.written += int64(len(chunk))
	c.fileHasher.Write(chunk)
	return nil
}

func (c *computeConsumer) LeaveFile() error {
	if c.mode != modeFile {
		return fmt.Errorf("%w: LeaveFile outside a file node", ErrProtocol)
	}
	if c.written != c.declared {
		return fmt.Errorf("%w: declared %d bytes, received %d", ErrSizeMismatch, c.declared, c.written)
	}
	sum := c.fileHasher.Sum(nil)
	fp, err := fingerprint.FromBytes(sum)
	if err != nil {
		return err
	}
	c.result = fp
	c.done = true
	if c.verbose {
		log.Debugf("file, sz %d (%s)", c.declared, fp.Compact())
	}
	return nil
}

func (c *computeConsumer) EnterDict() error {
	if c.mode != modeUnset {
		return fmt.Errorf("%w: EnterDict called twice on one node", ErrProtocol)
	}
	c.mode = modeDict
	c.seen = make(map[string]struct{})
	if c.verbose {
		log.Debug("dictionary, entering")
	}
	return nil
}

func (c *computeConsumer) VisitEntry(name string, kind Kind, child interface{}) error {
	if c.mode != modeDict {
		return fmt.Errorf("%w: VisitEntry outside a dictionary node", ErrProtocol)
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	if _, dup := c.seen[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	c.seen[name] = struct{}{}

	var childFP fingerprint.Fingerprint
	switch kind {
	case KindLink:
		f, ok := child.(fingerprint.Fingerprint)
		if !ok {
			return fmt.Errorf("%w: link entry %q must carry a fingerprint.Fingerprint", ErrWrongKind, name)
		}
		childFP = f
		if c.verbose {
			log.Debugf("entry %q: fingerprint (%s)", name, f.Compact())
		}
	case KindSubordinate, KindTable:
		p, ok := child.(Producer)
		if !ok {
			return fmt.Errorf("%w: entry %q of kind %s must carry an objtree.Producer", ErrWrongKind, name, kind)
		}
		sub := newComputeConsumer(c.verbose)
		if err := Visit(p, sub); err != nil {
			return err
		}
		childFP = sub.result
	default:
		return fmt.Errorf("%w: unknown entry kind %q", ErrWrongKind, kind)
	}

	c.entries = append(c.entries, entryRecord{name: name, kind: kind, fp: childFP})
	return nil
}

func (c *computeConsumer) LeaveDict() error {
	if c.mode != modeDict {
		return fmt.Errorf("%w: LeaveDict outside a dictionary node", ErrProtocol)
	}
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].name < c.entries[j].name
	})

	var buf []byte
	for _, e := range c.entries {
		buf = append(buf, byte(e.kind))
		buf = append(buf, ':')
		buf = append(buf, []byte(e.name)...)
		buf = append(buf, 0)
		buf = append(buf, e.fp[:]...)
	}

	h := sha256.New()
	h.Write([]byte{'t'})
	h.Write([]byte(strconv.Itoa(len(buf))))
	h.Write([]byte{0})
	h.Write(buf)

	fp, err := fingerprint.FromBytes(h.Sum(nil))
	if err != nil {
		return err
	}
	c.result = fp
	c.done = true
	if c.verbose {
		log.Debugf("leaving dictionary (%s)", fp.Compact())
	}
	return nil
}
