// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fingerprint

import "errors"

// Parser and value-construction errors. The API never silently coerces: a
// string handed to FromString must be exactly one of the recognized forms.
var (
	ErrUnknownFormat = errors.New("fingerprint: unknown format")
	ErrBadPrefix     = errors.New("fingerprint: bad prefix")
	ErrBadLength     = errors.New("fingerprint: bad length")
	ErrBadEncoding   = errors.New("fingerprint: bad encoding")
	ErrBadChecksum   = errors.New("fingerprint: bad checksum")
	ErrBadValue      = errors.New("fingerprint: bad value")
)
