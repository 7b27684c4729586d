// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package jsonobject

import (
	"reflect"
	"testing"

	"github.com/structured-commons/tools/object"
	"github.com/structured-commons/tools/objtree"
)

func TestEncodeTextMode(t *testing.T) {
	p := object.Wrap(object.File("hello"))
	v, err := Encode(p, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if v != "hello" {
		t.Errorf("Encode() = %#v, want %q", v, "hello")
	}
}

func TestEncodeBase64Mode(t *testing.T) {
	p := object.Wrap(object.File("hello"))
	v, err := Encode(p, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	arr, ok := v.([]string)
	if !ok || len(arr) != 1 {
		t.Fatalf("Encode() = %#v, want one-element []string", v)
	}
}

func TestEncodeDecodeRoundTripText(t *testing.T) {
	dict := map[string]interface{}{
		"a.txt": object.File("alpha"),
		"sub": map[string]interface{}{
			"b.txt": object.File("beta"),
		},
	}
	p := object.Wrap(dict)

	v, err := Encode(p, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	p2, err := Read(v)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	fp1, err := objtree.Compute(p)
	if err != nil {
		t.Fatalf("Compute(original) error = %v", err)
	}
	fp2, err := objtree.Compute(p2)
	if err != nil {
		t.Fatalf("Compute(round-tripped) error = %v", err)
	}
	if fp1 != fp2 {
		t.Errorf("round trip changed the fingerprint: %s != %s", fp1.Hex(), fp2.Hex())
	}
}

func TestEncodeDecodeRoundTripBase64(t *testing.T) {
	dict := map[string]interface{}{
		"bin": object.File([]byte{0x00, 0x01, 0xff, 0x80}),
	}
	p := object.Wrap(dict)

	v, err := Encode(p, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p2, err := Read(v)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	fp1, _ := objtree.Compute(p)
	fp2, _ := objtree.Compute(p2)
	if fp1 != fp2 {
		t.Errorf("round trip changed the fingerprint: %s != %s", fp1.Hex(), fp2.Hex())
	}
}

func TestDecodeLink(t *testing.T) {
	leaf := object.Wrap(object.File("x"))
	fp, err := objtree.Compute(leaf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	dict := map[string]interface{}{
		"ref": fp,
	}
	p := object.Wrap(dict)
	v, err := Encode(p, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	p2, err := Read(v)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	got, err := object.Build(p2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	d, ok := got.(*object.Dict)
	if !ok {
		t.Fatalf("Build() = %#v, want *object.Dict", got)
	}
	kind, child, ok := d.Get("ref")
	if !ok || kind != objtree.KindLink {
		t.Fatalf("Get(ref) = (%v, %v, %v), want a link entry", kind, child, ok)
	}
	gotFP, ok := child.(interface{ Binary() []byte })
	if !ok {
		t.Fatalf("link child does not expose Binary()")
	}
	if !reflect.DeepEqual(gotFP.Binary(), fp.Binary()) {
		t.Errorf("link fingerprint mismatch")
	}
}

func TestDecodeRejectsBadArray(t *testing.T) {
	_, err := Decode([]byte(`{"x": []}`))
	if err == nil {
		t.Fatal("Decode() error = nil, want error for empty array")
	}
}

func TestDecodeRejectsNonByteText(t *testing.T) {
	_, err := Decode([]byte(`"` + string(rune(0x1F600)) + `"`))
	if err == nil {
		t.Fatal("Decode() error = nil, want error for code point above U+00FF")
	}
}
