// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package objarchive

import "errors"

// ErrUnknownTag is returned when a decoded node or entry tag byte does not
// match any of the formats this package writes.
var ErrUnknownTag = errors.New("objarchive: unknown tag byte")

// ErrTruncated is returned when the archive ends before a length-prefixed
// field it announced has been fully read.
var ErrTruncated = errors.New("objarchive: truncated archive")
