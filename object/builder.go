// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package object

import (
	"fmt"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

type builderMode int

const (
	builderUnset builderMode = iota
	builderFile
	builderDict
)

// Builder is the building objtree.Consumer: it consumes a Producer's
// events and materializes a concrete File or *Dict. A fresh Builder is
// used per node, including one per dictionary entry that requires
// recursion, matching the "fresh sub-visitor" requirement of the visitor
// contract.
type Builder struct {
	mode builderMode

	declared int64
	buf      []byte

	dict *Dict

	result interface{}
}

// NewBuilder returns a Builder ready to consume one node's events.
func NewBuilder() *Builder {
	return &Builder{}
}

// Value returns the materialized File or *Dict once the consumer has seen
// a complete event sequence. It is nil before that.
func (b *Builder) Value() interface{} {
	return b.result
}

func (b *Builder) EnterFile(sz int64) error {
	if b.mode != builderUnset {
		return fmt.Errorf("%w: EnterFile called twice on one node", objtree.ErrProtocol)
	}
	b.mode = builderFile
	b.declared = sz
	b.buf = make([]byte, 0, sz)
	return nil
}

func (b *Builder) VisitData(chunk []byte) error {
	if b.mode != builderFile {
		return fmt.Errorf("%w: VisitData outside a file node", objtree.ErrProtocol)
	}
	b.buf = append(b.buf, chunk...)
	return nil
}

func (b *Builder) LeaveFile() error {
	if b.mode != builderFile {
		return fmt.Errorf("%w: LeaveFile outside a file node", objtree.ErrProtocol)
	}
	if int64(len(b.buf)) != b.declared {
		return fmt.Errorf("%w: declared %d bytes, received %d", objtree.ErrSizeMismatch, b.declared, len(b.buf))
	}
	b.result = File(b.buf)
	return nil
}

func (b *Builder) EnterDict() error {
	if b.mode != builderUnset {
		return fmt.Errorf("%w: EnterDict called twice on one node", objtree.ErrProtocol)
	}
	b.mode = builderDict
	b.dict = NewDict()
	return nil
}

func (b *Builder) VisitEntry(name string, kind objtree.Kind, child interface{}) error {
	if b.mode != builderDict {
		return fmt.Errorf("%w: VisitEntry outside a dictionary node", objtree.ErrProtocol)
	}
	switch kind {
	case objtree.KindLink:
		f, ok := child.(fingerprint.Fingerprint)
		if !ok {
			return fmt.Errorf("%w: link entry %q must carry a fingerprint.Fingerprint", objtree.ErrWrongKind, name)
		}
		b.dict.Set(name, kind, f)
	case objtree.KindSubordinate, objtree.KindTable:
		p, ok := child.(objtree.Producer)
		if !ok {
			return fmt.Errorf("%w: entry %q of kind %s must carry an objtree.Producer", objtree.ErrWrongKind, name, kind)
		}
		sub := NewBuilder()
		if err := p.Visit(sub); err != nil {
			return err
		}
		b.dict.Set(name, kind, sub.Value())
	default:
		return fmt.Errorf("%w: unknown entry kind %q", objtree.ErrWrongKind, kind)
	}
	return nil
}

func (b *Builder) LeaveDict() error {
	if b.mode != builderDict {
		return fmt.Errorf("%w: LeaveDict outside a dictionary node", objtree.ErrProtocol)
	}
	b.result = b.dict
	return nil
}

// Build drives a fresh Builder over p and returns the materialized tree.
func Build(p objtree.Producer) (interface{}, error) {
	b := NewBuilder()
	if err := p.Visit(b); err != nil {
		return nil, err
	}
	return b.Value(), nil
}
