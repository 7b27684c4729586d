// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package jsonobject

import "errors"

// ErrInvalidDocument is returned when a decoded JSON value does not match
// any of the three shapes the adapter understands: a string (text-mode
// file), an object (dictionary), or a one-element array of a string
// (base64 file or fingerprint link).
var ErrInvalidDocument = errors.New("jsonobject: value does not match any known shape")

// ErrNotByteValue is returned when a JSON string intended as a text-mode
// file contains a code point above 255, which cannot round-trip through
// the adapter's one-byte-per-code-point convention.
var ErrNotByteValue = errors.New("jsonobject: string contains a code point above U+00FF")
