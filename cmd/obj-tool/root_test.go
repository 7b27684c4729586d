// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import "testing"

func TestSplitMethodPath(t *testing.T) {
	tests := []struct {
		in      string
		method  string
		path    string
		wantErr bool
	}{
		{"fs:.", "fs", ".", false},
		{"fp:compact", "fp", "compact", false},
		{"raw:-", "raw", "-", false},
		{"json:out/nested:dir.json", "json", "out/nested:dir.json", false},
		{"noColon", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			method, path, err := splitMethodPath(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitMethodPath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if method != tt.method || path != tt.path {
				t.Errorf("splitMethodPath(%q) = (%q, %q), want (%q, %q)", tt.in, method, path, tt.method, tt.path)
			}
		})
	}
}
