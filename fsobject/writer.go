// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fsobject

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

// WriteTree drives p and writes the resulting directory or file at root,
// which must not already exist. Verbose logs one line per file and link,
// and two per directory (on entry and on leave), to the package logger,
// mirroring encode_visitor's verbose trace.
func WriteTree(root string, p objtree.Producer, verbose bool) error {
	if _, err := os.Stat(root); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, root)
	}
	c := &writeConsumer{path: root, verbose: verbose}
	return p.Visit(c)
}

type writeMode int

const (
	writeUnset writeMode = iota
	writeFile
	writeDict
)

type writeConsumer struct {
	path    string
	verbose bool

	mode writeMode
	f    *os.File
}

func (w *writeConsumer) EnterFile(sz int64) error {
	if w.mode != writeUnset {
		return fmt.Errorf("%w: EnterFile called twice on one node", objtree.ErrProtocol)
	}
	w.mode = writeFile
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("fsobject: %w", err)
	}
	w.f = f
	if w.verbose {
		log.Debugf("file %q, sz %d", w.path, sz)
	}
	return nil
}

func (w *writeConsumer) VisitData(chunk []byte) error {
	if w.mode != writeFile {
		return fmt.Errorf("%w: VisitData outside a file node", objtree.ErrProtocol)
	}
	if _, err := w.f.Write(chunk); err != nil {
		return fmt.Errorf("fsobject: writing %s: %w", w.path, err)
	}
	return nil
}

func (w *writeConsumer) LeaveFile() error {
	if w.mode != writeFile {
		return fmt.Errorf("%w: LeaveFile outside a file node", objtree.ErrProtocol)
	}
	return w.f.Close()
}

func (w *writeConsumer) EnterDict() error {
	if w.mode != writeUnset {
		return fmt.Errorf("%w: EnterDict called twice on one node", objtree.ErrProtocol)
	}
	w.mode = writeDict
	if err := os.Mkdir(w.path, 0o755); err != nil {
		return fmt.Errorf("fsobject: %w", err)
	}
	if w.verbose {
		log.Debugf("dir %q", w.path)
	}
	return nil
}

func (w *writeConsumer) VisitEntry(name string, kind objtree.Kind, child interface{}) error {
	if w.mode != writeDict {
		return fmt.Errorf("%w: VisitEntry outside a dictionary node", objtree.ErrProtocol)
	}

	if kind == objtree.KindLink {
		fp, ok := child.(fingerprint.Fingerprint)
		if !ok {
			return fmt.Errorf("%w: link entry %q must carry a fingerprint.Fingerprint", objtree.ErrWrongKind, name)
		}
		fpath := filepath.Join(w.path, quoteName("\x00"+name))
		if w.verbose {
			log.Debugf("reference %q", fpath)
		}
		return os.WriteFile(fpath, fp.Binary(), 0o644)
	}

	p, ok := child.(objtree.Producer)
	if !ok {
		return fmt.Errorf("%w: entry %q must carry an objtree.Producer", objtree.ErrWrongKind, name)
	}
	fsName := quoteName(name)
	fpath := filepath.Join(w.path, fsName)
	sub := &writeConsumer{path: fpath, verbose: w.verbose}
	return p.Visit(sub)
}

func (w *writeConsumer) LeaveDict() error {
	if w.mode != writeDict {
		return fmt.Errorf("%w: LeaveDict outside a dictionary node", objtree.ErrProtocol)
	}
	if w.verbose {
		log.Debugf("end dir %q", w.path)
	}
	return nil
}
