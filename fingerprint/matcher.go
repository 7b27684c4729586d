// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fingerprint

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Matcher is a partial-match operand for a Fingerprint: either a full
// textual representation, or a bare hex prefix shorter than 64 characters.
// Grounded on the teacher's hash.DigestMatcher / hash.NewDigestMatcher.
type Matcher struct {
	text string
	pre  []byte
}

var matcherPattern = regexp.MustCompile(`^([0-9a-fA-F-]+)$`)

// NewMatcher parses pat as either a full fingerprint string (any recognized
// format) or a bare hex prefix.
func NewMatcher(pat string) (Matcher, error) {
	if f, _, err := FromString(pat); err == nil {
		return Matcher{text: f.Hex(0)}, nil
	}
	stripped := strings.ReplaceAll(pat, "-", "")
	if !matcherPattern.MatchString(pat) || len(stripped) == 0 {
		return Matcher{}, fmt.Errorf("%w: %q is not a fingerprint or hex prefix", ErrUnknownFormat, pat)
	}
	pre, err := hex.DecodeString(evenHexPrefix(stripped))
	if err != nil {
		return Matcher{}, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return Matcher{text: stripped, pre: pre}, nil
}

// evenHexPrefix returns the longest even-length prefix of s, so it can be
// hex-decoded; an odd trailing nibble is matched only via the text prefix.
func evenHexPrefix(s string) string {
	if len(s)%2 == 1 {
		return s[:len(s)-1]
	}
	return s
}

// Match reports whether f starts with the bytes (or hex text) described by m.
func (m Matcher) Match(f Fingerprint) bool {
	if len(m.pre) > 0 && !bytes.HasPrefix(f.Binary(), m.pre) {
		return false
	}
	return strings.HasPrefix(f.Hex(0), strings.ToLower(m.text))
}

func (m Matcher) String() string {
	return m.text
}
