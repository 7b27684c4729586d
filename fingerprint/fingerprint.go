// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// Package fingerprint implements the Structured Commons fingerprint value
// type: an immutable 32-byte digest with a family of bijective textual
// encodings (hex, compact base64, long base32, decimal, C array) and a
// parser that recovers the canonical 32 bytes from any of them.
package fingerprint

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// Size is the length in bytes of a canonical fingerprint.
const Size = 32

// Fingerprint is an immutable 256-bit content digest. The zero value is the
// all-zero fingerprint and is itself a well-formed value.
type Fingerprint [Size]byte

// Zero is the fingerprint consisting of 32 zero bytes.
var Zero Fingerprint

// Ones is the fingerprint consisting of 32 0xFF bytes.
var Ones Fingerprint

func init() {
	for i := range Ones {
		Ones[i] = 0xff
	}
}

// FromBytes interprets a known 32-byte sequence as a Fingerprint. It fails
// with ErrBadLength if b is not exactly Size bytes long.
func FromBytes(b []byte) (Fingerprint, error) {
	var f Fingerprint
	if len(b) != Size {
		return f, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadLength, Size, len(b))
	}
	copy(f[:], b)
	return f, nil
}

// FromInt interprets n as a big-endian unsigned 256-bit integer. It fails
// with ErrBadValue if n is negative or does not fit in 256 bits.
func FromInt(n *big.Int) (Fingerprint, error) {
	var f Fingerprint
	if n.Sign() < 0 {
		return f, fmt.Errorf("%w: negative value", ErrBadValue)
	}
	b := n.Bytes()
	if len(b) > Size {
		return f, fmt.Errorf("%w: value does not fit in %d bits", ErrBadValue, Size*8)
	}
	copy(f[Size-len(b):], b)
	return f, nil
}

// Binary returns the 32 canonical bytes of the fingerprint.
func (f Fingerprint) Binary() []byte {
	out := make([]byte, Size)
	copy(out, f[:])
	return out
}

// Int returns the big-endian unsigned integer view of the fingerprint.
func (f Fingerprint) Int() *big.Int {
	return new(big.Int).SetBytes(f[:])
}

// IsZero reports whether f is the all-zero fingerprint.
func (f Fingerprint) IsZero() bool {
	return f == Zero
}

// Equal reports byte-wise equality. Provided for parity with the teacher's
// hash.Digest style comparison; == works identically since Fingerprint is
// a comparable array type.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f == other
}

// Less implements byte-wise lexicographic ordering, used when fingerprints
// themselves need to be sorted (e.g. for deterministic test output); the
// canonical hashing protocol orders dictionary entries by name, never by
// fingerprint, so this is not used by objtree.
func (f Fingerprint) Less(other Fingerprint) bool {
	for i := range f {
		if f[i] != other[i] {
			return f[i] < other[i]
		}
	}
	return false
}

func (f Fingerprint) appendFletcher() []byte {
	a, b := fletcher16(f[:])
	return append(f.Binary(), a, b)
}

// Hex returns the lowercase hex encoding of the 32 canonical bytes. With no
// argument, a separator is inserted every 8 characters; pass split=0 for no
// separators, or any other positive value for a different grouping.
func (f Fingerprint) Hex(split ...int) string {
	n := 8
	if len(split) > 0 {
		n = split[0]
	}
	s := hex.EncodeToString(f[:])
	return insertHyphens(s, n)
}

// Compact returns "fp:" followed by the unpadded urlsafe-base64 encoding of
// the 32 canonical bytes plus their Fletcher-16 checksum. The result is
// always exactly 49 characters long.
func (f Fingerprint) Compact() string {
	return "fp:" + base64URLNoPad(f.appendFletcher())
}

// Long returns "fp::" followed by the unpadded uppercase base32 encoding of
// the 32 canonical bytes plus their Fletcher-16 checksum, grouped with
// hyphens every 4 characters by default (split=0 disables grouping).
func (f Fingerprint) Long(split ...int) string {
	n := 4
	if len(split) > 0 {
		n = split[0]
	}
	body := base32NoPad(f.appendFletcher())
	return "fp::" + insertHyphens(body, n)
}

// CArray returns a C source declaration equivalent to the fingerprint:
// bytes in the printable ASCII range (32-126), other than backslash,
// double-quote and question mark (to defeat C89 trigraphs), are emitted
// literally; all others are emitted as \xHH escapes.
func (f Fingerprint) CArray() string {
	var buf []byte
	buf = append(buf, []byte(`char fp[32] = "`)...)
	for _, c := range f {
		switch {
		case c == '\\':
			buf = append(buf, '\\', '\\')
		case c == '"':
			buf = append(buf, '\\', '"')
		case c == '?':
			buf = append(buf, '\\', '?')
		case c >= 32 && c <= 126:
			buf = append(buf, c)
		default:
			buf = append(buf, []byte(fmt.Sprintf(`\x%02x`, c))...)
		}
	}
	buf = append(buf, '"', ';')
	return string(buf)
}

func (f Fingerprint) String() string {
	return f.Compact()
}

// MarshalYAML encodes the fingerprint as its hex form, matching the hex
// encoding the teacher's hash.Digest implementations use for YAML.
func (f Fingerprint) MarshalYAML() (interface{}, error) {
	return f.Hex(0), nil
}

// UnmarshalYAML decodes a fingerprint from a hex, compact or long string.
func (f *Fingerprint) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, _, err := FromString(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalBinary returns the raw 32 canonical bytes.
func (f Fingerprint) MarshalBinary() ([]byte, error) {
	return f.Binary(), nil
}

// UnmarshalBinary decodes a fingerprint from a raw 32-byte slice.
func (f *Fingerprint) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
