// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// obj-tool converts a Structured Commons object tree between its
// concrete representations: a filesystem directory, a JSON document, raw
// or UTF-8 text, a Snappy-framed archive, or a fingerprint.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
