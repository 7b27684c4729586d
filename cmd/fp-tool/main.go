// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

// fp-tool parses, converts, and compares Structured Commons fingerprints
// given on the command line, in any of their recognized textual forms.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
