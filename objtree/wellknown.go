// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package objtree

import (
	"sync"

	"github.com/structured-commons/tools/fingerprint"
)

type emptyFileProducer struct{}

func (emptyFileProducer) Visit(c Consumer) error {
	if err := c.EnterFile(0); err != nil {
		return err
	}
	return c.LeaveFile()
}

type emptyDictProducer struct{}

func (emptyDictProducer) Visit(c Consumer) error {
	if err := c.EnterDict(); err != nil {
		return err
	}
	return c.LeaveDict()
}

var (
	emptyFileOnce sync.Once
	emptyFileFP   fingerprint.Fingerprint

	emptyDictOnce sync.Once
	emptyDictFP   fingerprint.Fingerprint
)

// EmptyFile returns the fingerprint of the zero-length file:
// SHA-256("s0\0").
func EmptyFile() fingerprint.Fingerprint {
	emptyFileOnce.Do(func() {
		fp, err := Compute(emptyFileProducer{})
		if err != nil {
			panic(err) // unreachable: the empty file can never fail to hash
		}
		emptyFileFP = fp
	})
	return emptyFileFP
}

// EmptyDict returns the fingerprint of the empty dictionary:
// SHA-256("t0\0").
func EmptyDict() fingerprint.Fingerprint {
	emptyDictOnce.Do(func() {
		fp, err := Compute(emptyDictProducer{})
		if err != nil {
			panic(err) // unreachable: the empty dictionary can never fail to hash
		}
		emptyDictFP = fp
	})
	return emptyDictFP
}
