// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package objtree

import (
	"errors"
	"testing"
)

// fileNode is a minimal file Producer used only by this package's tests;
// real adapters live in fsobject/jsonobject/object.
type fileNode []byte

func (f fileNode) Visit(c Consumer) error {
	if err := c.EnterFile(int64(len(f))); err != nil {
		return err
	}
	if len(f) > 0 {
		if err := c.VisitData(f); err != nil {
			return err
		}
	}
	return c.LeaveFile()
}

type entry struct {
	name  string
	kind  Kind
	child interface{}
}

type dictNode []entry

func (d dictNode) Visit(c Consumer) error {
	if err := c.EnterDict(); err != nil {
		return err
	}
	for _, e := range d {
		if err := c.VisitEntry(e.name, e.kind, e.child); err != nil {
			return err
		}
	}
	return c.LeaveDict()
}

func TestEmptyFileMatchesWellKnown(t *testing.T) {
	fp, err := Compute(fileNode(nil))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp != EmptyFile() {
		t.Errorf("Compute(empty file) = %v, want EmptyFile() = %v", fp, EmptyFile())
	}
}

func TestEmptyDictMatchesWellKnown(t *testing.T) {
	fp, err := Compute(dictNode(nil))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp != EmptyDict() {
		t.Errorf("Compute(empty dict) = %v, want EmptyDict() = %v", fp, EmptyDict())
	}
}

func TestDictOrderIndependence(t *testing.T) {
	a := dictNode{
		{name: "a", kind: KindSubordinate, child: fileNode("alpha")},
		{name: "b", kind: KindSubordinate, child: fileNode("beta")},
		{name: "c", kind: KindSubordinate, child: fileNode("gamma")},
	}
	b := dictNode{a[2], a[0], a[1]}

	fpA, err := Compute(a)
	if err != nil {
		t.Fatalf("Compute(a) error = %v", err)
	}
	fpB, err := Compute(b)
	if err != nil {
		t.Fatalf("Compute(b) error = %v", err)
	}
	if fpA != fpB {
		t.Errorf("order of visit_entry changed the fingerprint: %v != %v", fpA, fpB)
	}
}

func TestProtocolDeterminism(t *testing.T) {
	tree := dictNode{
		{name: "x", kind: KindSubordinate, child: fileNode("one")},
		{name: "y", kind: KindTable, child: dictNode{
			{name: "z", kind: KindSubordinate, child: fileNode("two")},
		}},
	}
	fp1, err := Compute(tree)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	fp2, err := Compute(tree)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp1 != fp2 {
		t.Errorf("Compute() is not deterministic: %v != %v", fp1, fp2)
	}
}

func TestDuplicateNameFails(t *testing.T) {
	tree := dictNode{
		{name: "dup", kind: KindSubordinate, child: fileNode("a")},
		{name: "dup", kind: KindSubordinate, child: fileNode("b")},
	}
	_, err := Compute(tree)
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Compute() error = %v, want ErrDuplicateName", err)
	}
}

func TestInvalidNameFails(t *testing.T) {
	tree := dictNode{
		{name: "bad\x01name", kind: KindSubordinate, child: fileNode("a")},
	}
	_, err := Compute(tree)
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Compute() error = %v, want ErrInvalidName", err)
	}
}

func TestEmptyNameFails(t *testing.T) {
	tree := dictNode{
		{name: "", kind: KindSubordinate, child: fileNode("a")},
	}
	_, err := Compute(tree)
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Compute() error = %v, want ErrInvalidName", err)
	}
}

type underDeclaredFile struct {
	declared int64
	data     []byte
}

func (f underDeclaredFile) Visit(c Consumer) error {
	if err := c.EnterFile(f.declared); err != nil {
		return err
	}
	if err := c.VisitData(f.data); err != nil {
		return err
	}
	return c.LeaveFile()
}

func TestSizeMismatchFails(t *testing.T) {
	_, err := Compute(underDeclaredFile{declared: 10, data: []byte("short")})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Compute() error = %v, want ErrSizeMismatch", err)
	}
}

func TestLinkEntryDoesNotRecurse(t *testing.T) {
	leafFP, err := Compute(fileNode("leaf"))
	if err != nil {
		t.Fatalf("Compute(leaf) error = %v", err)
	}
	tree := dictNode{
		{name: "ref", kind: KindLink, child: leafFP},
	}
	fp, err := Compute(tree)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if fp == leafFP {
		t.Errorf("a dict wrapping a link should not equal the link's own fingerprint")
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName(""); !errors.Is(err, ErrInvalidName) {
		t.Errorf("ValidateName(\"\") error = %v, want ErrInvalidName", err)
	}
	if err := ValidateName("x\x1f"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("ValidateName with control byte error = %v, want ErrInvalidName", err)
	}
	if err := ValidateName("ok name"); err != nil {
		t.Errorf("ValidateName(\"ok name\") error = %v, want nil", err)
	}
}
