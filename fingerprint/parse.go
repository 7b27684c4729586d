// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fingerprint

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Format identifies which textual representation a parsed string matched.
type Format string

// The recognized textual formats, in the order the parser tests them.
const (
	FormatLong    Format = "long"
	FormatCompact Format = "compact"
	FormatHex     Format = "hex"
)

var (
	longPattern    = regexp.MustCompile(`^[fF][pP]::[A-Za-z2-7-]*$`)
	compactPattern = regexp.MustCompile(`^fp:[A-Za-z0-9_\-]*$`)
	hexPattern     = regexp.MustCompile(`^[0-9a-fA-F-]*$`)
)

// FromString parses any of the recognized textual fingerprint forms
// (long, compact, hex) and returns the decoded Fingerprint along with the
// Format that was recognized. Format tests are applied in the order long,
// compact, hex. The long and compact patterns are disjoint (a compact body
// cannot contain ':'), so a "fp::" string is only ever parsed as long.
func FromString(s string) (Fingerprint, Format, error) {
	switch {
	case longPattern.MatchString(s):
		log.Debugf("parsing %q as long", s)
		f, err := parseLong(s)
		return f, FormatLong, err
	case compactPattern.MatchString(s):
		log.Debugf("parsing %q as compact", s)
		f, err := parseCompact(s)
		return f, FormatCompact, err
	case hexPattern.MatchString(s):
		log.Debugf("parsing %q as hex", s)
		f, err := parseHex(s)
		return f, FormatHex, err
	default:
		return Fingerprint{}, "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func checkFletcher(body []byte) (Fingerprint, error) {
	if len(body) != Size+2 {
		return Fingerprint{}, fmt.Errorf("%w: expected %d checksummed bytes, got %d", ErrBadLength, Size+2, len(body))
	}
	raw, sum := body[:Size], body[Size:]
	a, b := fletcher16(raw)
	if a != sum[0] || b != sum[1] {
		return Fingerprint{}, fmt.Errorf("%w: fp says (%d,%d), computed (%d,%d)", ErrBadChecksum, sum[0], sum[1], a, b)
	}
	return FromBytes(raw)
}

func parseCompact(s string) (Fingerprint, error) {
	if !strings.HasPrefix(s, "fp:") {
		return Fingerprint{}, fmt.Errorf("%w: expected \"fp:\"", ErrBadPrefix)
	}
	body := s[len("fp:"):]
	if len(body) != 46 {
		return Fingerprint{}, fmt.Errorf("%w: expected 46 characters, got %d", ErrBadLength, len(body))
	}
	decoded, err := base64.URLEncoding.DecodeString(base64URLPad(body))
	if err != nil {
		return Fingerprint{}, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return checkFletcher(decoded)
}

func parseLong(s string) (Fingerprint, error) {
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "FP::") {
		return Fingerprint{}, fmt.Errorf("%w: expected \"fp::\"", ErrBadPrefix)
	}
	body := strings.ReplaceAll(upper[len("FP::"):], "-", "")
	if len(body) != 55 {
		return Fingerprint{}, fmt.Errorf("%w: expected 55 characters, got %d", ErrBadLength, len(body))
	}
	decoded, err := base32.StdEncoding.DecodeString(base32Pad(body))
	if err != nil {
		return Fingerprint{}, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return checkFletcher(decoded)
}

func parseHex(s string) (Fingerprint, error) {
	body := strings.ReplaceAll(s, "-", "")
	if len(body) != 64 {
		return Fingerprint{}, fmt.Errorf("%w: expected 64 characters, got %d", ErrBadLength, len(body))
	}
	decoded, err := hex.DecodeString(body)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return FromBytes(decoded)
}
