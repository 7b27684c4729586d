// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// Package jsonobject maps a JSON document to and from the Structured
// Commons abstract object tree, per SPEC_FULL.md §4.6/§6.3. It is
// grounded on sc/js.py's pyjson_visitor/pyjson_wrap pair, translated into
// the objtree.Consumer/Producer idiom used throughout this module.
//
// A File is represented either as a plain JSON string, one code point per
// byte (text mode), or as a one-element array holding the urlsafe-base64
// encoding of its bytes (base64 mode). A Dictionary is a JSON object. A
// Link is a one-element array holding the fingerprint's compact string
// form, distinguished from a base64 file by its "fp:" prefix.
package jsonobject

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/structured-commons/tools/objtree"
)

// Encode drives p and returns the JSON-marshalable value describing its
// tree. useBase64 selects base64 mode for file content; otherwise text
// mode is used (suitable only for files whose bytes are all below 0x100,
// which holds for any real byte slice, encoded one code point per byte).
func Encode(p objtree.Producer, useBase64 bool) (interface{}, error) {
	c := &encoder{base64: useBase64}
	if err := p.Visit(c); err != nil {
		return nil, err
	}
	return c.value, nil
}

// Write drives p and writes its JSON encoding to w.
func Write(w io.Writer, p objtree.Producer, useBase64 bool) error {
	log.Debugf("encoding tree to JSON, base64=%v", useBase64)
	v, err := Encode(p, useBase64)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

type encoderMode int

const (
	encodeUnset encoderMode = iota
	encodeFile
	encodeDict
)

type encoder struct {
	base64 bool
	mode   encoderMode

	declared int64
	raw      []byte // base64 mode accumulator
	runes    []rune // text mode accumulator

	dict map[string]interface{}

	value interface{}
}

func (e *encoder) EnterFile(sz int64) error {
	if e.mode != encodeUnset {
		return fmt.Errorf("%w: EnterFile called twice on one node", objtree.ErrProtocol)
	}
	e.mode = encodeFile
	e.declared = sz
	if e.base64 {
		e.raw = make([]byte, 0, sz)
	} else {
		e.runes = make([]rune, 0, sz)
	}
	return nil
}

func (e *encoder) VisitData(chunk []byte) error {
	if e.mode != encodeFile {
		return fmt.Errorf("%w: VisitData outside a file node", objtree.ErrProtocol)
	}
	if e.base64 {
		e.raw = append(e.raw, chunk...)
		return nil
	}
	for _, b := range chunk {
		e.runes = append(e.runes, rune(b))
	}
	return nil
}

func (e *encoder) LeaveFile() error {
	if e.mode != encodeFile {
		return fmt.Errorf("%w: LeaveFile outside a file node", objtree.ErrProtocol)
	}
	var got int64
	if e.base64 {
		got = int64(len(e.raw))
	} else {
		got = int64(len(e.runes))
	}
	if got != e.declared {
		return fmt.Errorf("%w: declared %d bytes, received %d", objtree.ErrSizeMismatch, e.declared, got)
	}
	if e.base64 {
		e.value = []string{base64.URLEncoding.EncodeToString(e.raw)}
	} else {
		e.value = string(e.runes)
	}
	return nil
}

func (e *encoder) EnterDict() error {
	if e.mode != encodeUnset {
		return fmt.Errorf("%w: EnterDict called twice on one node", objtree.ErrProtocol)
	}
	e.mode = encodeDict
	e.dict = make(map[string]interface{})
	return nil
}

func (e *encoder) VisitEntry(name string, kind objtree.Kind, child interface{}) error {
	if e.mode != encodeDict {
		return fmt.Errorf("%w: VisitEntry outside a dictionary node", objtree.ErrProtocol)
	}
	if _, exists := e.dict[name]; exists {
		return fmt.Errorf("%w: %q", objtree.ErrDuplicateName, name)
	}

	if kind == objtree.KindLink {
		fp, ok := child.(interface{ Compact() string })
		if !ok {
			return fmt.Errorf("%w: link entry %q must carry a fingerprint.Fingerprint", objtree.ErrWrongKind, name)
		}
		e.dict[name] = []string{fp.Compact()}
		return nil
	}

	p, ok := child.(objtree.Producer)
	if !ok {
		return fmt.Errorf("%w: entry %q must carry an objtree.Producer", objtree.ErrWrongKind, name)
	}
	sub := &encoder{base64: e.base64}
	if err := p.Visit(sub); err != nil {
		return err
	}
	e.dict[name] = sub.value
	return nil
}

func (e *encoder) LeaveDict() error {
	if e.mode != encodeDict {
		return fmt.Errorf("%w: LeaveDict outside a dictionary node", objtree.ErrProtocol)
	}
	e.value = e.dict
	return nil
}
