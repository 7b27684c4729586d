// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package object

import (
	"errors"
	"testing"

	"github.com/structured-commons/tools/fingerprint"
	"github.com/structured-commons/tools/objtree"
)

func TestWrapBuildFileRoundTrip(t *testing.T) {
	p := Wrap(File("hello"))
	v, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	f, ok := v.(File)
	if !ok || string(f) != "hello" {
		t.Errorf("Build() = %#v, want File(\"hello\")", v)
	}
}

func TestWrapBuildDictRoundTrip(t *testing.T) {
	leaf := Wrap(File("leaf"))
	linkFP, err := objtree.Compute(leaf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	input := map[string]interface{}{
		"a.txt": File("alpha"),
		"sub": map[string]interface{}{
			"b.txt": []byte("beta"),
		},
		"ref": linkFP,
	}
	p := Wrap(input)
	v, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	d, ok := v.(*Dict)
	if !ok {
		t.Fatalf("Build() = %#v, want *Dict", v)
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}

	kind, child, ok := d.Get("a.txt")
	if !ok || kind != objtree.KindSubordinate || string(child.(File)) != "alpha" {
		t.Errorf("Get(a.txt) = (%v, %#v, %v)", kind, child, ok)
	}

	kind, child, ok = d.Get("sub")
	if !ok || kind != objtree.KindTable {
		t.Fatalf("Get(sub) = (%v, %#v, %v)", kind, child, ok)
	}
	subDict, ok := child.(*Dict)
	if !ok || subDict.Len() != 1 {
		t.Fatalf("Get(sub) child = %#v, want a one-entry *Dict", child)
	}

	kind, child, ok = d.Get("ref")
	if !ok || kind != objtree.KindLink || child.(fingerprint.Fingerprint) != linkFP {
		t.Errorf("Get(ref) = (%v, %#v, %v)", kind, child, ok)
	}
}

func TestRoundTripPreservesFingerprint(t *testing.T) {
	input := map[string]interface{}{
		"one": File("1"),
		"two": map[string]interface{}{
			"three": File("3"),
		},
	}
	p1 := Wrap(input)
	fp1, err := objtree.Compute(p1)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	built, err := Build(p1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p2 := Wrap(built)
	fp2, err := objtree.Compute(p2)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if fp1 != fp2 {
		t.Errorf("round trip through Build/Wrap changed the fingerprint: %v != %v", fp1, fp2)
	}
}

func TestDictSetOverwritePreservesOrder(t *testing.T) {
	d := NewDict()
	d.Set("a", objtree.KindSubordinate, File("1"))
	d.Set("b", objtree.KindSubordinate, File("2"))
	d.Set("a", objtree.KindSubordinate, File("3"))

	names := d.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
	_, child, _ := d.Get("a")
	if string(child.(File)) != "3" {
		t.Errorf("Get(a) after overwrite = %#v, want File(\"3\")", child)
	}
}

func TestWrapRejectsUnknownType(t *testing.T) {
	p := Wrap(42)
	err := p.Visit(NewBuilder())
	if !errors.Is(err, objtree.ErrWrongKind) {
		t.Errorf("Visit() error = %v, want ErrWrongKind", err)
	}
}

func TestBuilderSizeMismatch(t *testing.T) {
	b := NewBuilder()
	if err := b.EnterFile(5); err != nil {
		t.Fatalf("EnterFile() error = %v", err)
	}
	if err := b.VisitData([]byte("ab")); err != nil {
		t.Fatalf("VisitData() error = %v", err)
	}
	err := b.LeaveFile()
	if !errors.Is(err, objtree.ErrSizeMismatch) {
		t.Errorf("LeaveFile() error = %v, want ErrSizeMismatch", err)
	}
}
