// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package objtree

import "errors"

// Data errors raised by the hashing consumer; callers may recover from
// these since they describe malformed input trees, not programmer error.
var (
	ErrInvalidName   = errors.New("objtree: invalid name")
	ErrDuplicateName = errors.New("objtree: duplicate name")
	ErrSizeMismatch  = errors.New("objtree: file size mismatch")
	ErrWrongKind     = errors.New("objtree: wrong entry kind")
)

// ErrProtocol marks a violation of the visitor event shape itself (e.g.
// EnterFile twice on one node, or VisitData outside a file node) -- a
// programming error in a Producer, not a
// property of the data being walked.
var ErrProtocol = errors.New("objtree: visitor protocol violation")
