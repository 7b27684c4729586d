// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// Package fsobject maps a filesystem directory tree to and from the
// Structured Commons abstract object tree, per SPEC_FULL.md §4.5/§6.2.
package fsobject

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	pb "gopkg.in/cheggaaa/pb.v1"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

const readChunkSize = 8192

// Dir returns an objtree.Producer rooted at path, a file or directory.
// ignore is a list of shell glob patterns (matched with filepath.Match)
// applied to raw filesystem entry names; matching entries are skipped
// entirely, mirroring fs_wrap's ignorelist in the original tool.
func Dir(path string, ignore []string) objtree.Producer {
	return &dirProducer{path: path, ignore: ignore}
}

// DirWithProgress is Dir with an optional progress bar that is advanced by
// each file's size as its content is read, for long-running walks of large
// trees (grounded on scanner/file_scanner.go's bar.NewProxyReader use).
func DirWithProgress(path string, ignore []string, bar *pb.ProgressBar) objtree.Producer {
	return &dirProducer{path: path, ignore: ignore, bar: bar}
}

type dirProducer struct {
	path   string
	ignore []string
	bar    *pb.ProgressBar
}

func (p *dirProducer) Visit(c objtree.Consumer) error {
	info, err := os.Stat(p.path)
	if err != nil {
		return fmt.Errorf("fsobject: %w", err)
	}
	if info.IsDir() {
		return p.visitDir(c)
	}
	return p.visitFile(c, info)
}

func (p *dirProducer) visitDir(c objtree.Consumer) error {
	entries, err := os.ReadDir(p.path)
	if err != nil {
		return fmt.Errorf("fsobject: %w", err)
	}
	if err := c.EnterDict(); err != nil {
		return err
	}
	for _, ent := range entries {
		fsName := ent.Name()
		skip, err := p.matchesIgnore(fsName)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		name, err := unquoteName(fsName)
		if err != nil {
			return fmt.Errorf("fsobject: decoding name %q: %w", fsName, err)
		}
		fpath := filepath.Join(p.path, fsName)

		if len(name) > 0 && name[0] == 0 {
			fp, err := readLinkFile(fpath)
			if err != nil {
				return err
			}
			if err := c.VisitEntry(name[1:], objtree.KindLink, fp); err != nil {
				return err
			}
			continue
		}

		kind := objtree.KindSubordinate
		if ent.IsDir() {
			kind = objtree.KindTable
		}
		child := &dirProducer{path: fpath, ignore: p.ignore, bar: p.bar}
		if err := c.VisitEntry(name, kind, child); err != nil {
			return err
		}
	}
	return c.LeaveDict()
}

func (p *dirProducer) visitFile(c objtree.Consumer, info os.FileInfo) error {
	sz := info.Size()
	if err := c.EnterFile(sz); err != nil {
		return err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("fsobject: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if p.bar != nil {
		r = p.bar.NewProxyReader(f)
	}

	buf := make([]byte, readChunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if err := c.VisitData(buf[:n]); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("fsobject: reading %s: %w", p.path, rerr)
		}
	}
	return c.LeaveFile()
}

func (p *dirProducer) matchesIgnore(name string) (bool, error) {
	for _, pat := range p.ignore {
		ok, err := filepath.Match(pat, name)
		if err != nil {
			return false, fmt.Errorf("fsobject: bad ignore pattern %q: %w", pat, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func readLinkFile(path string) (fingerprint.Fingerprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fingerprint.Fingerprint{}, fmt.Errorf("fsobject: reading link %s: %w", path, err)
	}
	fp, err := fingerprint.FromBytes(data)
	if err != nil {
		return fingerprint.Fingerprint{}, fmt.Errorf("fsobject: link %s: %w", path, err)
	}
	return fp, nil
}
