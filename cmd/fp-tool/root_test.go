// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import (
	"testing"

	"github.com/structured-commons/tools/fingerprint"
)

func TestRunCompareAllEqual(t *testing.T) {
	parsed := []parsedArg{
		{fp: fingerprint.Zero},
		{fp: fingerprint.Zero},
		{fp: fingerprint.Zero},
	}
	if err := runCompare(parsed); err != nil {
		t.Errorf("runCompare() error = %v, want nil", err)
	}
}

func TestRunCompareMismatch(t *testing.T) {
	parsed := []parsedArg{
		{fp: fingerprint.Zero},
		{fp: fingerprint.Ones},
	}
	if err := runCompare(parsed); err == nil {
		t.Error("runCompare() error = nil, want an error for differing fingerprints")
	}
}

func TestSplitArg(t *testing.T) {
	flagSplit = noSplit
	if got := splitArg(); got != nil {
		t.Errorf("splitArg() = %v, want nil when unset", got)
	}
	flagSplit = 0
	if got := splitArg(); len(got) != 1 || got[0] != 0 {
		t.Errorf("splitArg() = %v, want [0]", got)
	}
	flagSplit = noSplit
}
