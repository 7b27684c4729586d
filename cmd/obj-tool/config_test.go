// Copyright 2018 IBM Corporation
// Licensed under the Apache License, Version 2.0. See LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obj-tool.yaml")
	doc := "ignore:\n  - \"*.tmp\"\n  - \".git\"\nbase64: true\nsplit: 4\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if !cfg.Base64 || cfg.Split != 4 || len(cfg.Ignore) != 2 {
		t.Errorf("loadConfig() = %+v, unexpected contents", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error = %v", err)
	}
	if cfg.Base64 || cfg.Split != 0 || cfg.Ignore != nil {
		t.Errorf("loadConfig(\"\") = %+v, want zero value", cfg)
	}
}
