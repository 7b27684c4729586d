// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package fsobject

import (
	"fmt"
	"net/url"
	"strings"
)

// quoteName percent-encodes a logical object name into a filesystem-safe
// name, per SPEC_FULL.md §4.5/§6.2: all reserved bytes are quoted
// (equivalent to Python's urllib.parse.quote(n, safe='')), and a leading
// '.' in the result is rewritten to %2E to avoid '.', '..' and hidden
// files.
func quoteName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	s := b.String()
	if strings.HasPrefix(s, ".") {
		s = "%2E" + s[1:]
	}
	return s
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// unquoteName percent-decodes a filesystem name back to its logical form.
// The logical name fed to the visitor is always the unquoted form; only
// the filesystem boundary deals in quoted names.
func unquoteName(fsName string) (string, error) {
	return url.PathUnescape(fsName)
}
