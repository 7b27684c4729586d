// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// Package objarchive serializes a Structured Commons object tree to a
// single Snappy-framed binary stream and reads it back, per SPEC_FULL.md
// §4.7. It replaces the pickle-based archive format the spec's Open
// Question excluded: instead of a language-specific serializer, the wire
// format is a small recursive, self-describing binary layout, unconditionally
// wrapped in Snappy framing via snappy.NewBufferedWriter/NewReader.
//
// Wire format (before Snappy framing): a node is one of
//
//	tagFile byte, size uvarint, size raw bytes
//	tagDict byte, (entry)*, tagEnd byte
//
// where an entry is
//
//	tagEntry byte, namelen uvarint, name bytes, kind byte, child
//
// and child is a nested node for kind 's'/'t', or 32 raw bytes (the
// fingerprint) for kind 'l'.
package objarchive

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/object"
	"github.com/structured-commons/tools/objtree"
)

const (
	tagFile  byte = 0x01
	tagDict  byte = 0x02
	tagEntry byte = 0x01
	tagEnd   byte = 0x00
)

// Encode drives p and writes a Snappy-compressed archive of its tree to w.
func Encode(p objtree.Producer, w io.Writer) error {
	log.Debug("encoding tree to a Snappy-framed archive")
	sw := snappy.NewBufferedWriter(w)
	bw := bufio.NewWriter(sw)
	c := &writer{w: bw}
	if err := p.Visit(c); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("objarchive: %w", err)
	}
	return sw.Close()
}

// Decode reads a Snappy-compressed archive from r, as written by Encode,
// and returns an objtree.Producer for the tree it describes.
func Decode(r io.Reader) (objtree.Producer, error) {
	log.Debug("decoding a Snappy-framed archive")
	br := bufio.NewReader(snappy.NewReader(r))
	v, err := decodeNode(br)
	if err != nil {
		return nil, err
	}
	return object.Wrap(v), nil
}

type writer struct {
	w    *bufio.Writer
	mode writeMode

	declared int64
	written  int64
}

type writeMode int

const (
	writeUnset writeMode = iota
	writeFile
	writeDict
)

func (a *writer) EnterFile(sz int64) error {
	if a.mode != writeUnset {
		return fmt.Errorf("%w: EnterFile called twice on one node", objtree.ErrProtocol)
	}
	a.mode = writeFile
	a.declared = sz
	if err := a.w.WriteByte(tagFile); err != nil {
		return err
	}
	return writeUvarint(a.w, uint64(sz))
}

func (a *writer) VisitData(chunk []byte) error {
	if a.mode != writeFile {
		return fmt.Errorf("%w: VisitData outside a file node", objtree.ErrProtocol)
	}
	a.written += int64(len(chunk))
	_, err := a.w.Write(chunk)
	return err
}

func (a *writer) LeaveFile() error {
	if a.mode != writeFile {
		return fmt.Errorf("%w: LeaveFile outside a file node", objtree.ErrProtocol)
	}
	if a.written != a.declared {
		return fmt.Errorf("%w: declared %d bytes, wrote %d", objtree.ErrSizeMismatch, a.declared, a.written)
	}
	return nil
}

func (a *writer) EnterDict() error {
	if a.mode != writeUnset {
		return fmt.Errorf("%w: EnterDict called twice on one node", objtree.ErrProtocol)
	}
	a.mode = writeDict
	return a.w.WriteByte(tagDict)
}

func (a *writer) VisitEntry(name string, kind objtree.Kind, child interface{}) error {
	if a.mode != writeDict {
		return fmt.Errorf("%w: VisitEntry outside a dictionary node", objtree.ErrProtocol)
	}
	if err := a.w.WriteByte(tagEntry); err != nil {
		return err
	}
	if err := writeUvarint(a.w, uint64(len(name))); err != nil {
		return err
	}
	if _, err := a.w.WriteString(name); err != nil {
		return err
	}
	if err := a.w.WriteByte(byte(kind)); err != nil {
		return err
	}

	if kind == objtree.KindLink {
		fp, ok := child.(fingerprint.Fingerprint)
		if !ok {
			return fmt.Errorf("%w: link entry %q must carry a fingerprint.Fingerprint", objtree.ErrWrongKind, name)
		}
		_, err := a.w.Write(fp.Binary())
		return err
	}

	p, ok := child.(objtree.Producer)
	if !ok {
		return fmt.Errorf("%w: entry %q must carry an objtree.Producer", objtree.ErrWrongKind, name)
	}
	sub := &writer{w: a.w}
	return p.Visit(sub)
}

func (a *writer) LeaveDict() error {
	if a.mode != writeDict {
		return fmt.Errorf("%w: LeaveDict outside a dictionary node", objtree.ErrProtocol)
	}
	return a.w.WriteByte(tagEnd)
}

func writeUvarint(w io.ByteWriter, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	for _, b := range buf[:n] {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

func decodeNode(r *bufio.Reader) (interface{}, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("objarchive: %w", err)
	}
	switch tag {
	case tagFile:
		sz, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		data := make([]byte, sz)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		return object.File(data), nil

	case tagDict:
		out := make(map[string]interface{})
		for {
			marker, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("objarchive: %w", err)
			}
			if marker == tagEnd {
				return out, nil
			}
			if marker != tagEntry {
				return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, marker)
			}
			name, _, child, err := decodeEntry(r)
			if err != nil {
				return nil, err
			}
			if err := objtree.ValidateName(name); err != nil {
				return nil, err
			}
			if _, exists := out[name]; exists {
				return nil, fmt.Errorf("%w: %q", objtree.ErrDuplicateName, name)
			}
			out[name] = child
		}

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}
}

func decodeEntry(r *bufio.Reader) (name string, kind objtree.Kind, child interface{}, err error) {
	namelen, err := binary.ReadUvarint(r)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	nameBuf := make([]byte, namelen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return "", 0, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	kindByte, err := r.ReadByte()
	if err != nil {
		return "", 0, nil, fmt.Errorf("objarchive: %w", err)
	}
	kind = objtree.Kind(kindByte)

	switch kind {
	case objtree.KindLink:
		raw := make([]byte, fingerprint.Size)
		if _, err := io.ReadFull(r, raw); err != nil {
			return "", 0, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		fp, err := fingerprint.FromBytes(raw)
		if err != nil {
			return "", 0, nil, err
		}
		return string(nameBuf), kind, fp, nil
	case objtree.KindSubordinate, objtree.KindTable:
		v, err := decodeNode(r)
		if err != nil {
			return "", 0, nil, err
		}
		return string(nameBuf), kind, v, nil
	default:
		return "", 0, nil, fmt.Errorf("%w: kind 0x%02x", ErrUnknownTag, kindByte)
	}
}
