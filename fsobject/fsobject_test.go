// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fsobject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/structured-commons/tools/objtree"
)

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	names := []string{"a", "a.txt", ".hidden", "with space", "slash/in-name", "100%"}
	for _, name := range names {
		quoted := quoteName(name)
		got, err := unquoteName(quoted)
		if err != nil {
			t.Fatalf("unquoteName(%q) error = %v", quoted, err)
		}
		if got != name {
			t.Errorf("round trip: quoteName(%q) = %q, unquoteName() = %q", name, quoted, got)
		}
	}
}

func TestQuoteNameEscapesLeadingDot(t *testing.T) {
	if got := quoteName(".git"); got[:1] == "." {
		t.Errorf("quoteName(%q) = %q, leading dot was not rewritten", ".git", got)
	}
	got := quoteName(".git")
	want := "%2Egit"
	if got != want {
		t.Errorf("quoteName(.git) = %q, want %q", got, want)
	}
}

func TestDirFingerprintEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	fp, err := objtree.Compute(Dir(dir, nil))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp != objtree.EmptyDict() {
		t.Errorf("Compute(empty dir) = %v, want EmptyDict() = %v", fp, objtree.EmptyDict())
	}
}

func TestDirFingerprintSingleEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	fp, err := objtree.Compute(Dir(dir, nil))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp == objtree.EmptyDict() {
		t.Errorf("Compute(dir with one entry) should not equal EmptyDict()")
	}
}

func TestDirIgnoresDotfiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	fp, err := objtree.Compute(Dir(dir, []string{".*"}))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp != objtree.EmptyDict() {
		t.Errorf("Compute() with ignore pattern still saw the hidden file")
	}
}

func TestWriteTreeThenReadBackMatches(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.Mkdir(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b"), []byte("world"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fpSrc, err := objtree.Compute(Dir(src, nil))
	if err != nil {
		t.Fatalf("Compute(src) error = %v", err)
	}

	dst := filepath.Join(t.TempDir(), "copy")
	if err := WriteTree(dst, Dir(src, nil), false); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}

	fpDst, err := objtree.Compute(Dir(dst, nil))
	if err != nil {
		t.Fatalf("Compute(dst) error = %v", err)
	}
	if fpSrc != fpDst {
		t.Errorf("WriteTree() round trip changed the fingerprint: %v != %v", fpSrc, fpDst)
	}
}

func TestWriteTreeRefusesExistingDestination(t *testing.T) {
	dst := t.TempDir()
	err := WriteTree(dst, Dir(t.TempDir(), nil), false)
	if err == nil {
		t.Error("WriteTree() error = nil, want ErrExists for an existing destination")
	}
}

func TestFingerprintPathUsesCache(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cache, err := NewStatCache(0)
	if err != nil {
		t.Fatalf("NewStatCache() error = %v", err)
	}

	fp1, err := FingerprintPath(file, nil, cache)
	if err != nil {
		t.Fatalf("FingerprintPath() error = %v", err)
	}
	fp2, err := FingerprintPath(file, nil, cache)
	if err != nil {
		t.Fatalf("FingerprintPath() error = %v", err)
	}
	if fp1 != fp2 {
		t.Errorf("FingerprintPath() with cache = %v then %v, want equal", fp1, fp2)
	}
}
